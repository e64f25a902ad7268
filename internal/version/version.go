// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version carries the build version stamped in at link time.
package version

// Version is overridden with -ldflags at release build time.
var Version = "dev"
