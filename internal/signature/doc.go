// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package signature derives normalized string keys from offer content. The
// three keys form equivalence relations of increasing coarseness: Segments
// unifies code-shares of the same physical flight, TimeOption catches the
// same marketed flight at different booking classes, and Fingerprint is the
// aggressive airline+route+stops key used for the final merge pass.
//
// All derivations are pure: they never mutate the offer and never fail.
// Absent fields map to empty-string placeholders.
package signature
