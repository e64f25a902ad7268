// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package pipeline is the public facade over the offer-presentation chain:
// cabin filter, clustering, tie-break sort, stop bucketing, fingerprint
// dedup, and ranking. Everything is a pure in-memory transformation; the
// whole chain is idempotent and safe to re-run from scratch whenever the
// input set or the active filter changes.
package pipeline
