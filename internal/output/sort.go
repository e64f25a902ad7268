// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortDataset sorts the result set in place per the --sort spec. The spec is
// a comma list of keys, each optionally prefixed: - for descending and ! for
// a case-sensitive comparison. String comparisons fold case unless told not
// to; numeric values compare numerically. An empty spec leaves the dataset
// in its incoming order.
func SortDataset(dataset []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	type sortKey struct {
		key           string
		descending    bool
		caseSensitive bool
	}

	//nolint:prealloc
	var keys []sortKey
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		sk := sortKey{}
		if strings.HasPrefix(k, "-") {
			sk.descending = true
			k = strings.TrimPrefix(k, "-")
		}
		if strings.HasPrefix(k, "!") {
			sk.caseSensitive = true
			k = strings.TrimPrefix(k, "!")
		}
		if k == "" {
			continue
		}
		sk.key = k
		keys = append(keys, sk)
	}

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, sk := range keys {
			c := compareValues(dataset[i][sk.key], dataset[j][sk.key], sk.caseSensitive)
			if c == 0 {
				continue
			}
			if sk.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues orders two row values. Numbers win over string rendering so
// 9 sorts before 10.
func compareValues(a, b interface{}, caseSensitive bool) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
