// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package resultcache is a process-lifetime TTL cache for search pages,
// keyed by a canonicalized search-request descriptor. It sits in front of
// the search call path so an identical search issued within the TTL never
// goes back out. Entries are evicted lazily on read; there is no
// background sweep.
package resultcache
