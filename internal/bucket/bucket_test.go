// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package bucket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/farelens/internal/cluster"
	"github.com/staranto/farelens/internal/offer"
)

func mkOffer(id, carrier, flight string, stops []string, price float64) *offer.Offer {
	return &offer.Offer{
		ID:           id,
		CashTotal:    price,
		DisplayTotal: price,
		Slices: []offer.Slice{{
			Origin:        "JFK",
			Destination:   "CDG",
			Departure:     time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
			StopAirports:  stops,
			FlightNumbers: []string{flight},
			Segments: []offer.Segment{{
				CarrierCode:  carrier,
				FlightNumber: flight,
			}},
		}},
	}
}

func mkCluster(primary *offer.Offer, similar ...*offer.Offer) *cluster.Cluster {
	return &cluster.Cluster{ID: primary.ID, Primary: primary, Similar: similar}
}

func TestAggregator_BucketsByPrimaryStops(t *testing.T) {
	agg := NewAggregator()
	agg.Add(mkCluster(mkOffer("a", "UA", "UA100", nil, 1200)))
	agg.Add(mkCluster(mkOffer("b", "UA", "UA8846", []string{"ORD"}, 900)))
	agg.Add(mkCluster(mkOffer("c", "AF", "AF7", nil, 1500)))

	buckets := agg.Buckets()
	require.Len(t, buckets, 2)
	assert.Equal(t, 0, buckets[0].Stops)
	assert.Equal(t, 2, len(buckets[0].Clusters))
	assert.Equal(t, 1, buckets[1].Stops)
}

func TestAggregator_CheapestCoversAllMembers(t *testing.T) {
	// The similar member is cheaper than any primary; the bucket minimum
	// must reflect it.
	agg := NewAggregator()
	agg.Add(mkCluster(
		mkOffer("a", "UA", "UA100", nil, 1200),
		mkOffer("a2", "LH", "LH9001", nil, 850),
	))
	agg.Add(mkCluster(mkOffer("b", "AF", "AF7", nil, 1500)))

	buckets := agg.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, 850.0, buckets[0].Cheapest)
}

func TestAggregator_CheapestIsMonotonic(t *testing.T) {
	agg := NewAggregator()
	prices := []float64{1200, 900, 1500, 700, 1100}
	min := prices[0]

	for i, p := range prices {
		agg.Add(mkCluster(mkOffer(string(rune('a'+i)), "UA", "UA100", nil, p)))
		if p < min {
			min = p
		}
		buckets := agg.Buckets()
		require.Len(t, buckets, 1)
		assert.Equal(t, min, buckets[0].Cheapest, "after insert %d", i)
		for _, c := range buckets[0].Clusters {
			for _, o := range c.Members() {
				assert.LessOrEqual(t, buckets[0].Cheapest, o.CashPrice())
			}
		}
	}
}

func TestAggregator_ZeroPriceCounts(t *testing.T) {
	agg := NewAggregator()
	agg.Add(mkCluster(mkOffer("a", "UA", "UA100", nil, 300)))
	agg.Add(mkCluster(mkOffer("b", "UA", "UA101", nil, 0)))

	buckets := agg.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, 0.0, buckets[0].Cheapest)
}

func TestAggregator_IgnoresEmptyClusters(t *testing.T) {
	agg := NewAggregator()
	agg.Add(nil)
	agg.Add(&cluster.Cluster{})
	assert.Empty(t, agg.Buckets())
}

func TestAggregator_Active(t *testing.T) {
	agg := NewAggregator()
	_, ok := agg.Active()
	assert.False(t, ok, "no buckets, nothing active")

	agg.Add(mkCluster(mkOffer("a", "UA", "UA8846", []string{"ORD"}, 900)))
	agg.Add(mkCluster(mkOffer("b", "UA", "UA100", nil, 1200)))

	// Nothing activated yet: smallest stop count is the default.
	stops, ok := agg.Active()
	require.True(t, ok)
	assert.Equal(t, 0, stops)

	agg.Activate(1)
	stops, ok = agg.Active()
	require.True(t, ok)
	assert.Equal(t, 1, stops)

	// Activating a vanished section falls back to the smallest key.
	agg.Activate(2)
	stops, ok = agg.Active()
	require.True(t, ok)
	assert.Equal(t, 0, stops)
}
