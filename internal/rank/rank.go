// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rank

import (
	"sort"

	"github.com/staranto/farelens/internal/offer"
)

// TopSize is how many distinct offers the auto-enrichment set holds.
const TopSize = 5

// TabPrices are the two headline prices for the result tabs: Best is the
// price of the globally fastest offer, Cheap the price of the globally
// cheapest one. Empty input yields zeros, never an error.
type TabPrices struct {
	Best  float64
	Cheap float64
}

// Tabs computes both tab prices in one linear scan. Ties go to input
// order: only a strictly better duration or price replaces the incumbent.
func Tabs(offers []*offer.Offer) TabPrices {
	var tabs TabPrices
	if len(offers) == 0 {
		return tabs
	}

	fastest := offers[0]
	cheapest := offers[0]
	for _, o := range offers[1:] {
		if o.TotalDuration() < fastest.TotalDuration() {
			fastest = o
		}
		if o.Price() < cheapest.Price() {
			cheapest = o
		}
	}

	tabs.Best = fastest.Price()
	tabs.Cheap = cheapest.Price()
	return tabs
}

// TopFive returns the identities of the first five distinct offers ranked
// by cash price ascending, then duration ascending. The set is consumed by
// an external collaborator that fires enrichment calls; this core neither
// awaits nor depends on them.
func TopFive(offers []*offer.Offer) []string {
	if len(offers) == 0 {
		return nil
	}

	ranked := make([]*offer.Offer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		if a, b := ranked[i].CashPrice(), ranked[j].CashPrice(); a != b {
			return a < b
		}
		return ranked[i].TotalDuration() < ranked[j].TotalDuration()
	})

	seen := make(map[string]struct{}, TopSize)
	var ids []string
	for _, o := range ranked {
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		ids = append(ids, o.ID)
		if len(ids) == TopSize {
			break
		}
	}
	return ids
}
