// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/farelens/internal/bucket"
	"github.com/staranto/farelens/internal/cluster"
	"github.com/staranto/farelens/internal/offer"
	"github.com/staranto/farelens/internal/rank"
)

// Options tune one pipeline run.
type Options struct {
	// Cabin filters the offer set before clustering. Empty keeps all.
	Cabin string
	// PointValue is the cash value of one mile for the mileage tie-break.
	// Zero falls back to cluster.DefaultPointValue.
	PointValue float64
	// ActiveStops is the previously active section, carried across filter
	// changes. Negative means none.
	ActiveStops int
	// SkipDedupe disables the fingerprint merge pass.
	SkipDedupe bool
}

// Section is one stop bucket of the presentation output.
type Section struct {
	Stops    int
	Cheapest float64
	Clusters []*cluster.Cluster
}

// Presentation is what the presentation collaborator consumes: sections
// ascending by stop count, the tab prices, and the auto-enrichment set.
type Presentation struct {
	Sections    []Section
	ActiveStops int
	Tabs        rank.TabPrices
	AutoEnrich  []string
}

// Build runs the whole chain over a flat offer list. A nil list is a
// caller bug and is rejected with offer.ErrInvalidInput instead of being
// masked as an empty result. An empty (non-nil) list is a legitimate empty
// search and produces zero sections and zero tab prices.
func Build(offers []offer.Offer, opts Options) (*Presentation, error) {
	if offers == nil {
		return nil, fmt.Errorf("%w: nil offer list", offer.ErrInvalidInput)
	}

	filtered := filterCabin(offers, opts.Cabin)
	log.Debugf("pipeline: %d offers, %d after cabin filter %q", len(offers), len(filtered), opts.Cabin)

	clusters := cluster.Build(filtered, opts.PointValue)

	agg := bucket.NewAggregator()
	for _, c := range clusters {
		agg.Add(c)
	}
	if opts.ActiveStops >= 0 {
		agg.Activate(opts.ActiveStops)
	}

	p := &Presentation{
		ActiveStops: -1,
		Tabs:        rank.Tabs(filtered),
		AutoEnrich:  rank.TopFive(filtered),
	}

	for _, b := range agg.Buckets() {
		if !opts.SkipDedupe {
			bucket.Dedupe(b)
		}
		p.Sections = append(p.Sections, Section{
			Stops:    b.Stops,
			Cheapest: b.Cheapest,
			Clusters: b.Clusters,
		})
	}
	if active, ok := agg.Active(); ok {
		p.ActiveStops = active
	}

	return p, nil
}

// filterCabin keeps the offers matching the cabin code and pins member
// identity for the rest of the chain. Downstream stages work on pointers
// into this one slice, so an offer's identity is stable from here on.
func filterCabin(offers []offer.Offer, cabin string) []*offer.Offer {
	filtered := make([]*offer.Offer, 0, len(offers))
	for i := range offers {
		if offers[i].HasCabin(cabin) {
			filtered = append(filtered, &offers[i])
		}
	}
	return filtered
}
