// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/staranto/farelens/internal/offer"
)

const (
	minuteLayout = "2006-01-02T15:04"
	dayLayout    = "2006-01-02"
)

// Segments returns the airline-agnostic key: (origin, destination,
// departure-to-the-minute) over every segment in every slice. Slices
// without segment detail contribute a single part built from slice-level
// fields. Two offers share this key when they are the same physical
// flights, regardless of which carrier is marketing them.
func Segments(o *offer.Offer) string {
	var parts []string

	for _, s := range o.Slices {
		if len(s.Segments) == 0 {
			parts = append(parts, segmentPart(s.Origin, s.Destination, s.Departure))
			continue
		}
		for _, seg := range s.Segments {
			origin, destination, departure := seg.Origin, seg.Destination, seg.Departure
			// Thin payloads omit segment-level detail; the slice stands in.
			if origin == "" {
				origin = s.Origin
			}
			if destination == "" {
				destination = s.Destination
			}
			if departure.IsZero() {
				departure = s.Departure
			}
			parts = append(parts, segmentPart(origin, destination, departure))
		}
	}

	return strings.Join(parts, ";")
}

// TimeOption returns the coarser marketed-flight key: airline, first-slice
// route, departure day, and the sorted cabin list.
func TimeOption(o *offer.Offer) string {
	origin, destination := "", ""
	var departure time.Time
	if len(o.Slices) > 0 {
		origin = o.Slices[0].Origin
		destination = o.Slices[0].Destination
		departure = o.Slices[0].Departure
	}

	return strings.Join([]string{
		o.AirlineCode(),
		origin,
		destination,
		day(departure),
		sortedCabins(o),
	}, "|")
}

// Fingerprint returns the coarsest key: airline, first-slice route, and the
// per-slice stop counts. For example "UA|JFK|CDG|1".
func Fingerprint(o *offer.Offer) string {
	origin, destination := "", ""
	if len(o.Slices) > 0 {
		origin = o.Slices[0].Origin
		destination = o.Slices[0].Destination
	}

	stops := make([]string, 0, len(o.Slices))
	for _, s := range o.Slices {
		stops = append(stops, strconv.Itoa(s.StopCount()))
	}

	return strings.Join([]string{
		o.AirlineCode(),
		origin,
		destination,
		strings.Join(stops, "-"),
	}, "|")
}

func segmentPart(origin, destination string, departure time.Time) string {
	return origin + "|" + destination + "|" + minute(departure)
}

func minute(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(minuteLayout)
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dayLayout)
}

// sortedCabins collects the cabin codes across all slices, lowercased,
// deduplicated, and sorted so that cabin order on the wire doesn't split
// otherwise-identical offers.
func sortedCabins(o *offer.Offer) string {
	seen := map[string]struct{}{}
	var cabins []string
	for _, s := range o.Slices {
		for _, c := range s.Cabins {
			c = strings.ToLower(c)
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			cabins = append(cabins, c)
		}
	}
	sort.Strings(cabins)
	return strings.Join(cabins, "+")
}
