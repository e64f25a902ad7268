// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/farelens/internal/cluster"
	"github.com/staranto/farelens/internal/offer"
	"github.com/staranto/farelens/internal/pipeline"
)

func mkOffer(id, carrier, flight string, minutes int, price float64) *offer.Offer {
	return &offer.Offer{
		ID:           id,
		Currency:     "USD",
		CashTotal:    price,
		DisplayTotal: price,
		Slices: []offer.Slice{{
			Origin:          "JFK",
			Destination:     "CDG",
			Departure:       time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
			DurationMinutes: minutes,
			FlightNumbers:   []string{flight},
			Segments: []offer.Segment{{
				CarrierCode:  carrier,
				FlightNumber: flight,
			}},
		}},
	}
}

func TestSplitRefs(t *testing.T) {
	assert.Nil(t, splitRefs(""))
	assert.Equal(t, []string{"a.json"}, splitRefs("a.json"))
	assert.Equal(t, []string{"a.json", "s3://b/k"}, splitRefs(" a.json , s3://b/k ,"))
}

func TestSectionRows(t *testing.T) {
	primary := mkOffer("o1", "UA", "UA100", 435, 1200)
	alt := mkOffer("o2", "LH", "LH9001", 435, 1300)

	p := &pipeline.Presentation{
		Sections: []pipeline.Section{{
			Stops:    0,
			Cheapest: 1200,
			Clusters: []*cluster.Cluster{{
				Primary: primary,
				Similar: []*offer.Offer{alt},
			}},
		}},
	}

	rows := sectionRows(p)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 0, row["stops"])
	assert.Equal(t, 1200.0, row["bucketmin"])
	assert.Equal(t, 2, row["size"])
	assert.Equal(t, "o1", row["offer"])
	assert.Equal(t, "UA", row["airline"])
	assert.Equal(t, "UA100", row["flight"])
	assert.Equal(t, "JFK-CDG", row["route"])
	assert.Equal(t, "2026-09-01T10:30:00Z", row["depart"])
	assert.Equal(t, 435, row["duration"])
	assert.Equal(t, 1200.0, row["price"])
	assert.Equal(t, "1,200", row["fare"])
	assert.Equal(t, "USD", row["currency"])
	assert.Equal(t, "LH9001", row["alts"])
}

func TestSectionRows_NoSlices(t *testing.T) {
	p := &pipeline.Presentation{
		Sections: []pipeline.Section{{
			Clusters: []*cluster.Cluster{{
				Primary: &offer.Offer{ID: "bare"},
			}},
		}},
	}

	rows := sectionRows(p)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["route"])
	assert.Equal(t, "", rows[0]["depart"])
}

func TestTabRows(t *testing.T) {
	p := &pipeline.Presentation{}
	p.Tabs.Best = 1200
	p.Tabs.Cheap = 650

	rows := tabRows(p)
	require.Len(t, rows, 2)
	assert.Equal(t, "best", rows[0]["tab"])
	assert.Equal(t, 1200.0, rows[0]["price"])
	assert.Equal(t, "cheapest", rows[1]["tab"])
	assert.Equal(t, "650", rows[1]["fare"])
}

func TestTopRows_ResolvesOffers(t *testing.T) {
	offers := []offer.Offer{
		*mkOffer("a", "UA", "UA100", 435, 1200),
		*mkOffer("b", "AF", "AF7", 540, 650),
	}

	p := &pipeline.Presentation{AutoEnrich: []string{"b", "a", "ghost"}}

	rows := topRows(p, offers)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0]["rank"])
	assert.Equal(t, "b", rows[0]["offer"])
	assert.Equal(t, 650.0, rows[0]["price"])
	assert.Equal(t, 2, rows[1]["rank"])
	assert.Equal(t, "a", rows[1]["offer"])
}

func TestSearchParamsFromDocument(t *testing.T) {
	doc, err := offer.ParseDocument([]byte(`{
		"request": {
			"tripType": "oneway",
			"origin": "JFK",
			"destination": "CDG",
			"departDate": "2026-09-01",
			"cabin": "economy",
			"passengers": 2,
			"maxResults": 50,
			"enrich": true,
			"airlines": ["UA", "LH"],
			"slices": [
				{"origin": "JFK", "destination": "CDG", "date": "2026-09-01", "cabin": "economy"}
			]
		},
		"offers": []
	}`))
	require.NoError(t, err)

	p := SearchParamsFromDocument(doc)
	assert.Equal(t, "oneway", p.TripType)
	assert.Equal(t, "JFK", p.Origin)
	assert.Equal(t, "CDG", p.Destination)
	assert.Equal(t, "2026-09-01", p.DepartDate)
	assert.Equal(t, "economy", p.Cabin)
	assert.Equal(t, 2, p.Passengers)
	assert.Equal(t, 50, p.MaxResults)
	assert.True(t, p.Enrich)
	assert.Equal(t, []string{"UA", "LH"}, p.Airlines)
	require.Len(t, p.Slices, 1)
	assert.Equal(t, "JFK", p.Slices[0].Origin)
}
