// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package offer defines the flight-offer data model consumed by the
// clustering pipeline, plus best-effort parsing of raw search-result
// documents into that model.
package offer
