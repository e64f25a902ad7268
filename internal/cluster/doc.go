// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cluster groups offers into equivalence clusters. A cluster is one
// primary offer plus the siblings that represent the same physical flight
// under a different fare, cabin, or price.
package cluster
