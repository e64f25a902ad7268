// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"sort"
	"strings"

	"github.com/staranto/farelens/internal/offer"
)

// DefaultPointValue is the cash value assigned to one redeemable mile when
// no configuration overrides it.
const DefaultPointValue = 0.015

// Sort orders cluster members ascending by the tie-break chain. The sort is
// stable: members tied on every key retain their input order. After
// sorting, the first element is the cluster's primary.
//
// The chain, first non-zero result wins:
//  1. length of the primary flight-number string, so a short marketing
//     code sorts before a long code-share number
//  2. that flight number, lexicographic
//  3. total itinerary duration in minutes
//  4. display price
//  5. mileage value (miles x pointValue + copay; no mileage sorts last)
func Sort(members []*offer.Offer, pointValue float64) {
	if pointValue <= 0 {
		pointValue = DefaultPointValue
	}
	sort.SliceStable(members, func(i, j int) bool {
		return compare(members[i], members[j], pointValue) < 0
	})
}

func compare(a, b *offer.Offer, pointValue float64) int {
	fa, fb := a.PrimaryFlightNumber(), b.PrimaryFlightNumber()
	if len(fa) != len(fb) {
		return len(fa) - len(fb)
	}
	if c := strings.Compare(fa, fb); c != 0 {
		return c
	}
	if da, db := a.TotalDuration(), b.TotalDuration(); da != db {
		return da - db
	}
	if pa, pb := a.Price(), b.Price(); pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}
	// +Inf on both sides compares equal here, so two no-mileage offers fall
	// through to stable input order.
	if ma, mb := a.MileageValue(pointValue), b.MileageValue(pointValue); ma != mb {
		if ma < mb {
			return -1
		}
		return 1
	}
	return 0
}
