// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"reflect"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/farelens/internal/attrs"
	"github.com/staranto/farelens/internal/config"
	"github.com/staranto/farelens/internal/meta"
	"github.com/staranto/farelens/internal/offer"
	"github.com/staranto/farelens/internal/output"
	"github.com/staranto/farelens/internal/pipeline"
	"github.com/staranto/farelens/internal/resultcache"
	"github.com/staranto/farelens/internal/source"
)

var (
	presentations     *resultcache.Cache[*pipeline.Presentation]
	presentationsOnce sync.Once
)

// presentationCache constructs the per-invocation result cache on first use.
// Construction is deferred until a command action runs so the TTL lookup
// sees the command's config namespace.
func presentationCache() *resultcache.Cache[*pipeline.Presentation] {
	presentationsOnce.Do(func() {
		presentations = resultcache.New[*pipeline.Presentation](cacheTTL())
	})
	return presentations
}

// cacheTTL reads the configured cache lifetime in minutes, defaulting to the
// resultcache package default.
func cacheTTL() time.Duration {
	minutes, err := config.GetInt("cache.ttl")
	if err != nil || minutes <= 0 {
		return resultcache.DefaultTTL
	}
	return time.Duration(minutes) * time.Minute
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr farelens <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "farelens", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute schema for the provided type
// when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadDocuments reads and parses every --in ref in order. The raw buffer
// concatenates the source bytes so --output=raw can dump them untouched.
func LoadDocuments(ctx context.Context, refs []string) ([]*offer.Document, bytes.Buffer, error) {
	var raw bytes.Buffer
	var docs []*offer.Document

	for _, ref := range refs {
		data, err := source.Load(ctx, ref)
		if err != nil {
			return nil, raw, err
		}
		raw.Write(data)

		doc, err := offer.ParseDocument(data)
		if err != nil {
			return nil, raw, err
		}
		docs = append(docs, doc)
	}

	return docs, raw, nil
}

// SearchParamsFromDocument lifts the request descriptor embedded in a fare
// document into the canonical cache key type.
func SearchParamsFromDocument(doc *offer.Document) resultcache.SearchParams {
	req := doc.Request

	p := resultcache.SearchParams{
		TripType:    req.Get("tripType").String(),
		Origin:      req.Get("origin").String(),
		Destination: req.Get("destination").String(),
		DepartDate:  req.Get("departDate").String(),
		ReturnDate:  req.Get("returnDate").String(),
		Cabin:       req.Get("cabin").String(),
		Passengers:  int(req.Get("passengers").Int()),
		MaxResults:  int(req.Get("maxResults").Int()),
		Enrich:      req.Get("enrich").Bool(),
	}
	for _, a := range req.Get("airlines").Array() {
		p.Airlines = append(p.Airlines, a.String())
	}
	for _, s := range req.Get("slices").Array() {
		p.Slices = append(p.Slices, resultcache.SliceParams{
			Origin:      s.Get("origin").String(),
			Destination: s.Get("destination").String(),
			Date:        s.Get("date").String(),
			Cabin:       s.Get("cabin").String(),
		})
	}

	return p
}

// BuildPresentation runs the clustering chain for one document, consulting
// the result cache first unless --nocache is set. Pipeline options come from
// the command flags.
func BuildPresentation(cmd *cli.Command, doc *offer.Document) (*pipeline.Presentation, error) {
	params := SearchParamsFromDocument(doc)
	cache := presentationCache()

	if !cmd.Bool("nocache") {
		if p, ok := cache.Get(params, doc.Page); ok {
			log.Debugf("cache hit for page %d", doc.Page)
			return p, nil
		}
	}

	opts := pipeline.Options{
		Cabin:       cmd.String("cabin"),
		PointValue:  cmd.Float("point-value"),
		ActiveStops: -1,
		SkipDedupe:  cmd.Bool("nodedupe"),
	}
	if cmd.IsSet("stops") {
		opts.ActiveStops = int(cmd.Int("stops"))
	}

	p, err := pipeline.Build(doc.Offers, opts)
	if err != nil {
		return nil, err
	}

	if !cmd.Bool("nocache") {
		cache.Set(params, doc.Page, p)
	}
	return p, nil
}
