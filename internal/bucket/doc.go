// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package bucket partitions clusters by technical stop count and runs the
// final fingerprint merge pass inside each bucket.
package bucket
