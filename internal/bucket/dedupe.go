// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"github.com/apex/log"

	"github.com/staranto/farelens/internal/cluster"
	"github.com/staranto/farelens/internal/signature"
)

// Dedupe runs the second merge pass inside one stop bucket: every cluster
// is re-keyed by its primary's fingerprint, and clusters sharing one merge.
// The earliest-created cluster always survives, so the pass is
// deterministic and order-preserving. It absorbs near-duplicate clusters
// that differ only by flight-number or time noise on an otherwise
// identical routing.
func Dedupe(b *StopBucket) {
	if b == nil || len(b.Clusters) < 2 {
		return
	}

	survivors := make(map[string]*cluster.Cluster, len(b.Clusters))
	kept := b.Clusters[:0]

	for _, c := range b.Clusters {
		fp := signature.Fingerprint(c.Primary)
		if winner, ok := survivors[fp]; ok {
			log.Debugf("fingerprint %q absorbs cluster %s into %s", fp, c.ID, winner.ID)
			winner.Absorb(c)
			continue
		}
		survivors[fp] = c
		kept = append(kept, c)
	}

	b.Clusters = kept
}
