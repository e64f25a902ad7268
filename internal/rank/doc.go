// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package rank computes the best/cheap tab prices and the top-5
// auto-enrichment set over the cabin-filtered offer set.
package rank
