// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package offer

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// Document is one parsed search-result document: the request descriptor the
// search collaborator ran, the page number, and the offers on that page.
type Document struct {
	Request gjson.Result
	Page    int
	Offers  []Offer
}

// ParseDocument decodes a raw search-result document. Offer-level problems
// (absent segments, unparseable timestamps, missing prices) degrade to zero
// values; only a structurally broken document is an error.
func ParseDocument(raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: document is not a JSON object", ErrInvalidInput)
	}

	offers := root.Get("offers")
	if !offers.Exists() || !offers.IsArray() {
		return nil, fmt.Errorf("%w: document has no offers array", ErrInvalidInput)
	}

	// Offers starts non-nil so an empty result page stays distinguishable
	// from the nil slice the pipeline rejects as a caller bug.
	doc := &Document{
		Request: root.Get("request"),
		Page:    int(root.Get("request.page").Int()),
		Offers:  []Offer{},
	}
	if doc.Page == 0 {
		doc.Page = 1
	}

	for _, o := range offers.Array() {
		doc.Offers = append(doc.Offers, parseOffer(o))
	}
	log.Debugf("parsed %d offers (page %d)", len(doc.Offers), doc.Page)

	return doc, nil
}

func parseOffer(o gjson.Result) Offer {
	result := Offer{
		ID:           o.Get("id").String(),
		Currency:     o.Get("currency").String(),
		CashTotal:    o.Get("cashTotal").Float(),
		DisplayTotal: o.Get("displayTotal").Float(),
		TotalMileage: o.Get("totalMileage").Float(),
		MileageCopay: o.Get("mileageCopay").Float(),
	}

	for _, s := range o.Get("slices").Array() {
		result.Slices = append(result.Slices, parseSlice(s))
	}

	// The wire format distinguishes the two variants by shape. The parsed
	// model carries an explicit discriminant instead.
	if opts := o.Get("returnOptions"); opts.Exists() && opts.IsArray() {
		result.Kind = RoundTripBundle
		for _, ro := range opts.Array() {
			result.ReturnOptions = append(result.ReturnOptions, ReturnOption{
				Slice:        parseSlice(ro.Get("slice")),
				CashTotal:    ro.Get("cashTotal").Float(),
				DisplayTotal: ro.Get("displayTotal").Float(),
			})
		}
	}

	return result
}

func parseSlice(s gjson.Result) Slice {
	result := Slice{
		Origin:          s.Get("origin").String(),
		Destination:     s.Get("destination").String(),
		Departure:       parseTime(s.Get("departure").String()),
		Arrival:         parseTime(s.Get("arrival").String()),
		DurationMinutes: int(s.Get("durationMinutes").Int()),
	}

	for _, v := range s.Get("stopAirports").Array() {
		result.StopAirports = append(result.StopAirports, v.String())
	}
	for _, v := range s.Get("flightNumbers").Array() {
		result.FlightNumbers = append(result.FlightNumbers, v.String())
	}
	for _, v := range s.Get("cabins").Array() {
		result.Cabins = append(result.Cabins, v.String())
	}
	for _, seg := range s.Get("segments").Array() {
		result.Segments = append(result.Segments, parseSegment(seg))
	}

	return result
}

func parseSegment(seg gjson.Result) Segment {
	result := Segment{
		CarrierCode:  seg.Get("carrierCode").String(),
		CarrierName:  seg.Get("carrierName").String(),
		FlightNumber: seg.Get("flightNumber").String(),
		BookingClass: seg.Get("bookingClass").String(),
		Origin:       seg.Get("origin").String(),
		Destination:  seg.Get("destination").String(),
		Departure:    parseTime(seg.Get("departure").String()),
	}

	for _, r := range seg.Get("breakdown").Array() {
		result.Breakdown = append(result.Breakdown, Redemption{
			Program:  r.Get("program").String(),
			Miles:    r.Get("miles").Float(),
			Copay:    r.Get("copay").Float(),
			Currency: r.Get("currency").String(),
		})
	}

	return result
}

// parseTime accepts ISO-8601 with offset. Anything else becomes the zero
// time, which the canonicalizer maps to an empty-string placeholder.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Debugf("unparseable timestamp %q, treating as absent", value)
		return time.Time{}
	}
	return t
}
