// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/farelens/internal/offer"
	"github.com/staranto/farelens/internal/signature"
)

// Build groups a flat, cabin-filtered offer sequence into clusters.
//
// Two passes over the input. The first groups offers by segment signature,
// unifying code-shares of the same physical flights. The second groups by
// the coarser time-option signature and unions every initial group touched
// by a multi-member time group, so the same marketed flight at different
// booking classes lands in one cluster. The unions run over an explicit
// union-find rather than rescanning, which keeps ambiguous intersections
// deterministic (first-encountered wins) and avoids quadratic rescans on
// large result sets.
//
// Cluster members are sorted by the tie-break chain and the first member
// becomes the primary. pointValue feeds the mileage-value tie-break key.
func Build(offers []*offer.Offer, pointValue float64) []*Cluster {
	if len(offers) == 0 {
		return nil
	}

	// Pass one: group by segment signature. A zero-slice offer is its own
	// singleton cluster, so it gets a key nothing else can collide with.
	groupOf := make([]int, len(offers))
	var groupKeys []string
	var groupMembers [][]int
	groupIdx := map[string]int{}

	for i, o := range offers {
		key := signature.Segments(o)
		if len(o.Slices) == 0 {
			key = fmt.Sprintf("solo:%d", i)
		}
		g, ok := groupIdx[key]
		if !ok {
			g = len(groupKeys)
			groupIdx[key] = g
			groupKeys = append(groupKeys, key)
			groupMembers = append(groupMembers, nil)
		}
		groupOf[i] = g
		groupMembers[g] = append(groupMembers[g], i)
	}

	// Pass two: union the initial groups through time-option equivalence.
	// Zero-slice offers stay out of this pass; their empty signatures would
	// otherwise glue unrelated singletons together.
	uf := newUnionFind(len(groupKeys))
	timeIdx := map[string]int{}
	var timeMembers [][]int
	var timeOrder []string

	for i, o := range offers {
		if len(o.Slices) == 0 {
			continue
		}
		key := signature.TimeOption(o)
		t, ok := timeIdx[key]
		if !ok {
			t = len(timeOrder)
			timeIdx[key] = t
			timeOrder = append(timeOrder, key)
			timeMembers = append(timeMembers, nil)
		}
		timeMembers[t] = append(timeMembers[t], i)
	}

	for t, members := range timeMembers {
		if len(members) < 2 {
			continue
		}
		log.Debugf("time-option group %q unifies %d offers", timeOrder[t], len(members))
		first := groupOf[members[0]]
		for _, m := range members[1:] {
			uf.union(first, groupOf[m])
		}
	}

	// Collect final membership per union root, deduplicated by identity and
	// in input order, then sort each cluster and pick its primary.
	clusterOf := map[int]*Cluster{}
	var clusters []*Cluster
	seen := make(map[*offer.Offer]struct{}, len(offers))

	for i, o := range offers {
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}

		root := uf.find(groupOf[i])
		c, ok := clusterOf[root]
		if !ok {
			c = newCluster(groupKeys[root])
			clusterOf[root] = c
			clusters = append(clusters, c)
		}
		c.Similar = append(c.Similar, o)
	}

	for _, c := range clusters {
		Sort(c.Similar, pointValue)
		c.Primary = c.Similar[0]
		c.Similar = c.Similar[1:]
	}

	return clusters
}

// unionFind is a plain weighted-by-index union-find: the smaller root wins,
// so the earliest-encountered group survives as the cluster label.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if ra > rb {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
}
