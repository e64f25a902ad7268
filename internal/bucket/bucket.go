// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"sort"

	"github.com/staranto/farelens/internal/cluster"
)

// StopBucket holds the clusters sharing one stop count and the running
// minimum cash price across every member offer. The first member added
// establishes Cheapest even when its price is zero: an unpriced offer is a
// legitimate minimum, so the priced flag tracks "any member seen", not
// "any nonzero price seen".
type StopBucket struct {
	Stops    int
	Cheapest float64
	Clusters []*cluster.Cluster

	priced bool
}

// Aggregator partitions clusters into stop buckets. The per-bucket minimum
// is maintained on insertion, never by re-scan.
type Aggregator struct {
	buckets map[int]*StopBucket

	active    int
	hasActive bool
}

func NewAggregator() *Aggregator {
	return &Aggregator{buckets: map[int]*StopBucket{}}
}

// Add places a cluster into the bucket for its primary's stop count. A
// round-trip bundle buckets on its outbound slice only; that rule lives on
// the offer accessor.
func (a *Aggregator) Add(c *cluster.Cluster) {
	if c == nil || c.Primary == nil {
		return
	}

	stops := c.Primary.StopCount()
	b, ok := a.buckets[stops]
	if !ok {
		b = &StopBucket{Stops: stops}
		a.buckets[stops] = b
	}
	b.Clusters = append(b.Clusters, c)

	for _, o := range c.Members() {
		if price := o.CashPrice(); !b.priced || price < b.Cheapest {
			b.Cheapest = price
			b.priced = true
		}
	}
}

// Buckets returns the buckets ascending by stop count, nonstop first.
func (a *Aggregator) Buckets() []*StopBucket {
	result := make([]*StopBucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Stops < result[j].Stops
	})
	return result
}

// Activate marks a stop count as the active section.
func (a *Aggregator) Activate(stops int) {
	a.active = stops
	a.hasActive = true
}

// Active resolves the active section. At least one section is always
// active: when the previously active key disappeared (a filter change
// emptied it), the smallest remaining stop count takes over. The second
// return is false only when there are no buckets at all.
func (a *Aggregator) Active() (int, bool) {
	if len(a.buckets) == 0 {
		return 0, false
	}
	if a.hasActive {
		if _, ok := a.buckets[a.active]; ok {
			return a.active, true
		}
	}
	smallest := 0
	first := true
	for stops := range a.buckets {
		if first || stops < smallest {
			smallest = stops
			first = false
		}
	}
	return smallest, true
}
