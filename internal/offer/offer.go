// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package offer

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode"
)

// ErrInvalidInput is the one hard failure of this layer. It is returned when
// a caller hands the pipeline something that isn't an offer list at all
// (nil input, non-object document, missing offers array). Everything else
// degrades to defaults instead of failing.
var ErrInvalidInput = errors.New("offer: invalid input")

// Kind discriminates the two offer variants. The source systems tell them
// apart by shape-sniffing; here the discriminant is explicit.
type Kind int

const (
	// SingleItinerary is one or more ordered slices priced as a unit.
	SingleItinerary Kind = iota
	// RoundTripBundle is one outbound slice plus a list of alternate
	// return-slice options, each carrying its own price.
	RoundTripBundle
)

// Redemption is one mileage-redemption candidate on a segment.
type Redemption struct {
	Program  string
	Miles    float64
	Copay    float64
	Currency string
}

// Segment is one scheduled flight number within a slice. Origin,
// Destination and Departure may be absent on thin payloads; the
// canonicalizer falls back to slice-level fields when they are.
type Segment struct {
	CarrierCode  string
	CarrierName  string
	FlightNumber string
	BookingClass string
	Origin       string
	Destination  string
	Departure    time.Time
	Breakdown    []Redemption
}

// Slice is one directional portion of a journey.
type Slice struct {
	Origin          string
	Destination     string
	Departure       time.Time
	Arrival         time.Time
	DurationMinutes int
	StopAirports    []string
	FlightNumbers   []string
	Cabins          []string
	Segments        []Segment
}

// StopCount returns the number of technical stops on the slice. This is the
// stop-airport list length, not the segment count.
func (s Slice) StopCount() int {
	return len(s.StopAirports)
}

// ReturnOption is one alternate return slice of a RoundTripBundle, priced
// independently of its siblings.
type ReturnOption struct {
	Slice        Slice
	CashTotal    float64
	DisplayTotal float64
}

// Offer is one priced, bookable flight result from a search.
type Offer struct {
	ID            string
	Kind          Kind
	Currency      string
	CashTotal     float64
	DisplayTotal  float64
	TotalMileage  float64
	MileageCopay  float64
	Slices        []Slice
	ReturnOptions []ReturnOption
}

// Price returns the display total used for presentation and tie-breaking.
// A round-trip bundle is priced by its first return option.
func (o *Offer) Price() float64 {
	if o.Kind == RoundTripBundle && len(o.ReturnOptions) > 0 {
		return o.ReturnOptions[0].DisplayTotal
	}
	return o.DisplayTotal
}

// CashPrice returns the cash total used for bucket minimums and the cheap
// tab. The bundle rule mirrors Price().
func (o *Offer) CashPrice() float64 {
	if o.Kind == RoundTripBundle && len(o.ReturnOptions) > 0 {
		return o.ReturnOptions[0].CashTotal
	}
	return o.CashTotal
}

// TotalDuration returns the itinerary duration in minutes. For a bundle the
// itinerary is the outbound slice plus the default (first) return option.
func (o *Offer) TotalDuration() int {
	total := 0
	for _, s := range o.Slices {
		total += s.DurationMinutes
	}
	if o.Kind == RoundTripBundle && len(o.ReturnOptions) > 0 {
		total += o.ReturnOptions[0].Slice.DurationMinutes
	}
	return total
}

// PrimaryFlightNumber returns the first flight number of the first slice,
// falling back to segment detail. Empty string when the offer has no
// flights at all.
func (o *Offer) PrimaryFlightNumber() string {
	if len(o.Slices) == 0 {
		return ""
	}
	first := o.Slices[0]
	if len(first.FlightNumbers) > 0 && first.FlightNumbers[0] != "" {
		return first.FlightNumbers[0]
	}
	if len(first.Segments) > 0 {
		return first.Segments[0].FlightNumber
	}
	return ""
}

// AirlineCode returns the marketing carrier of the first segment, falling
// back to the alphabetic prefix of the primary flight number.
func (o *Offer) AirlineCode() string {
	if len(o.Slices) > 0 && len(o.Slices[0].Segments) > 0 {
		if code := o.Slices[0].Segments[0].CarrierCode; code != "" {
			return code
		}
	}
	fn := o.PrimaryFlightNumber()
	for i, r := range fn {
		if !unicode.IsLetter(r) {
			return fn[:i]
		}
	}
	return fn
}

// StopCount returns the stop count used for bucketing. A single itinerary
// takes the max across its slices. A round-trip bundle takes only the
// outbound slice; return-leg stops are ignored.
func (o *Offer) StopCount() int {
	if len(o.Slices) == 0 {
		return 0
	}
	if o.Kind == RoundTripBundle {
		return o.Slices[0].StopCount()
	}
	stops := 0
	for _, s := range o.Slices {
		if s.StopCount() > stops {
			stops = s.StopCount()
		}
	}
	return stops
}

// MileageValue converts the offer's mileage into a comparable cash-like
// value: miles times the per-mile point value, plus the cash copay. Offers
// with no mileage get +Inf so they always sort after offers with a real
// mileage value.
func (o *Offer) MileageValue(pointValue float64) float64 {
	if o.TotalMileage <= 0 {
		return math.Inf(1)
	}
	return o.TotalMileage*pointValue + o.MileageCopay
}

// HasCabin reports whether any slice of the offer carries the given cabin
// code. An empty cabin matches everything.
func (o *Offer) HasCabin(cabin string) bool {
	if cabin == "" {
		return true
	}
	for _, s := range o.Slices {
		for _, c := range s.Cabins {
			if strings.EqualFold(c, cabin) {
				return true
			}
		}
	}
	return false
}
