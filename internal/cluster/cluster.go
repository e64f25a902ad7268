// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cluster

import (
	"github.com/google/uuid"

	"github.com/staranto/farelens/internal/offer"
)

// Cluster is a primary offer plus its alternate-price/alternate-cabin
// siblings, in tie-break order.
type Cluster struct {
	ID string
	// Key is the signature label the cluster was built under. Which key
	// survives a merge is not semantically meaningful; only membership is.
	Key     string
	Primary *offer.Offer
	Similar []*offer.Offer
}

func newCluster(key string) *Cluster {
	return &Cluster{ID: uuid.NewString(), Key: key}
}

// Members returns the primary followed by the similar list.
func (c *Cluster) Members() []*offer.Offer {
	members := make([]*offer.Offer, 0, 1+len(c.Similar))
	if c.Primary != nil {
		members = append(members, c.Primary)
	}
	return append(members, c.Similar...)
}

// Size returns the member count including the primary.
func (c *Cluster) Size() int {
	if c.Primary == nil {
		return len(c.Similar)
	}
	return 1 + len(c.Similar)
}

// Absorb merges another cluster into this one. Similar lists concatenate
// and the losing primary is demoted into the merged similar list. The
// receiver is always the survivor.
func (c *Cluster) Absorb(other *Cluster) {
	if other == nil || other == c {
		return
	}
	if other.Primary != nil && other.Primary != c.Primary {
		c.Similar = append(c.Similar, other.Primary)
	}
	c.Similar = append(c.Similar, other.Similar...)
}
