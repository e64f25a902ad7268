// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resultcache

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// SliceParams are the per-slice parameters of a multi-slice search request.
type SliceParams struct {
	Origin      string
	Destination string
	Date        string
	Cabin       string
}

// SearchParams is the canonicalized search-request descriptor that keys the
// cache. List-valued fields are normalized order-independently by Key(), so
// two requests differing only in list order collide as intended.
type SearchParams struct {
	TripType    string
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	Cabin       string
	Passengers  int
	MaxResults  int
	Enrich      bool
	Airlines    []string
	Slices      []SliceParams
}

// Key renders the clear-text canonical key. Scalar fields are case-folded
// where case carries no meaning; list fields are rendered, sorted, and
// joined so their input order is irrelevant.
func (p SearchParams) Key() string {
	airlines := make([]string, 0, len(p.Airlines))
	for _, a := range p.Airlines {
		if a = strings.TrimSpace(strings.ToLower(a)); a != "" {
			airlines = append(airlines, a)
		}
	}
	sort.Strings(airlines)

	slices := make([]string, 0, len(p.Slices))
	for _, s := range p.Slices {
		slices = append(slices, strings.Join([]string{
			strings.ToUpper(s.Origin),
			strings.ToUpper(s.Destination),
			s.Date,
			strings.ToLower(s.Cabin),
		}, ":"))
	}
	sort.Strings(slices)

	return strings.Join([]string{
		strings.ToLower(p.TripType),
		strings.ToUpper(p.Origin),
		strings.ToUpper(p.Destination),
		p.DepartDate,
		p.ReturnDate,
		strings.ToLower(p.Cabin),
		strconv.Itoa(p.Passengers),
		strconv.Itoa(p.MaxResults),
		strconv.FormatBool(p.Enrich),
		strings.Join(airlines, "+"),
		strings.Join(slices, "+"),
	}, "|")
}

// encodeKey hashes the clear key with MD5 and returns the hex string. The
// hash keeps map keys short and uniform; the clear key never leaves the
// process anyway.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
