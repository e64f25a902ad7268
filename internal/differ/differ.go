// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares two fare documents and renders a unified ascii diff of the
// changes, older to newer. An empty string means the documents are
// semantically identical JSON.
func Diff(older, newer []byte, color bool) (string, error) {
	d, err := gojsondiff.New().Compare(older, newer)
	if err != nil {
		return "", fmt.Errorf("failed to compare documents: %w", err)
	}

	if !d.Modified() {
		return "", nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(older, &left); err != nil {
		return "", fmt.Errorf("failed to parse older document: %w", err)
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})

	out, err := f.Format(d)
	if err != nil {
		return "", fmt.Errorf("failed to format diff: %w", err)
	}
	return out, nil
}

// DeltaReport summarizes a diff as a one-line count of changed top-level
// keys. Used for the terse diff mode.
func DeltaReport(older, newer []byte) (string, error) {
	d, err := gojsondiff.New().Compare(older, newer)
	if err != nil {
		return "", fmt.Errorf("failed to compare documents: %w", err)
	}
	if !d.Modified() {
		return "documents are identical", nil
	}
	return fmt.Sprintf("%d top-level deltas", len(d.Deltas())), nil
}
