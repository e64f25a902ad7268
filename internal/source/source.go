// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/staranto/farelens/internal/aws"
	"github.com/staranto/farelens/internal/config"
)

// Ref identifies where a fare document lives: a local file path or an
// s3://bucket/key object.
type Ref struct {
	IsS3   bool
	Bucket string
	Key    string
	Path   string
}

// ParseRef splits a document reference. Anything not carrying the s3 scheme
// is a local path.
func ParseRef(raw string) (Ref, error) {
	if !strings.HasPrefix(raw, "s3://") {
		return Ref{Path: raw}, nil
	}

	rest := strings.TrimPrefix(raw, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return Ref{}, fmt.Errorf("invalid s3 reference: %s", raw)
	}
	return Ref{IsS3: true, Bucket: bucket, Key: key}, nil
}

// Load reads the referenced fare document. The S3 path inherits the shell's
// AWS setup; region and profile may be pinned in the config file.
func Load(ctx context.Context, raw string) ([]byte, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return nil, err
	}

	if !ref.IsS3 {
		data, err := os.ReadFile(ref.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		return data, nil
	}

	svc, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}
	return getObject(ctx, svc, ref, nil)
}

// LoadVersion reads one specific S3 object version of the referenced
// document. Local refs have no versions.
func LoadVersion(ctx context.Context, raw string, versionID string) ([]byte, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return nil, err
	}
	if !ref.IsS3 {
		return nil, fmt.Errorf("document versions require an s3 reference: %s", raw)
	}

	svc, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}
	return getObject(ctx, svc, ref, &versionID)
}

// Version is one stored revision of a versioned S3 document.
type Version struct {
	ID         string
	LastModifd time.Time
}

// Versions lists the surviving object versions of an S3 document, newest
// first. Versions older than the most recent delete marker are dropped, the
// same way a versioned bucket hides them.
func Versions(ctx context.Context, raw string) ([]Version, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return nil, err
	}
	if !ref.IsS3 {
		return nil, fmt.Errorf("document versions require an s3 reference: %s", raw)
	}

	svc, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := svc.ListObjectVersions(ctx, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(ref.Bucket),
		Prefix: awsv2.String(ref.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}

	var mostRecentDelete time.Time
	for _, d := range out.DeleteMarkers {
		// The prefix is literally a prefix, so siblings of the document can
		// come back too. Only exact key matches count.
		if d.Key == nil || *d.Key != ref.Key {
			continue
		}
		if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
			mostRecentDelete = *d.LastModified
		}
	}

	//nolint:prealloc
	var versions []Version
	for _, v := range out.Versions {
		if v.Key == nil || *v.Key != ref.Key {
			log.Debugf("throwing away %v", v.Key)
			continue
		}
		if v.LastModified == nil || v.LastModified.Before(mostRecentDelete) {
			continue
		}
		versions = append(versions, Version{
			ID:         awsv2.ToString(v.VersionId),
			LastModifd: *v.LastModified,
		})
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].LastModifd.After(versions[j].LastModifd)
	})

	return versions, nil
}

// LatestPair loads the two most recent versions of an S3 document, oldest of
// the pair first. This feeds the diff command's default mode.
func LatestPair(ctx context.Context, raw string) ([][]byte, error) {
	versions, err := Versions(ctx, raw)
	if err != nil {
		return nil, err
	}
	if len(versions) < 2 {
		return nil, fmt.Errorf("need at least two stored versions to diff: %s", raw)
	}

	older, err := LoadVersion(ctx, raw, versions[1].ID)
	if err != nil {
		return nil, err
	}
	newer, err := LoadVersion(ctx, raw, versions[0].ID)
	if err != nil {
		return nil, err
	}
	return [][]byte{older, newer}, nil
}

func newS3Client(ctx context.Context) (*s3v2.Client, error) {
	var opts []awsx.Option
	if region, err := config.GetString("source.s3.region", ""); err == nil && region != "" {
		opts = append(opts, awsx.WithRegion(region))
	}
	if profile, err := config.GetString("source.s3.profile", ""); err == nil && profile != "" {
		opts = append(opts, awsx.WithProfile(profile))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsx.NewS3(cfg), nil
}

func getObject(ctx context.Context, svc *s3v2.Client, ref Ref, versionID *string) ([]byte, error) {
	result, err := svc.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket:    awsv2.String(ref.Bucket),
		Key:       awsv2.String(ref.Key),
		VersionId: versionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	return data, nil
}
