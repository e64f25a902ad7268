// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/farelens/internal/config"
	"github.com/staranto/farelens/internal/meta"
	"github.com/staranto/farelens/internal/offer"
	"github.com/staranto/farelens/internal/output"
	"github.com/staranto/farelens/internal/pipeline"
)

// tabRow describes the attributes emitted per result tab.
type tabRow struct {
	Tab   string  `schema:"attr,tab"`
	Price float64 `schema:"attr,price"`
	Fare  string  `schema:"attr,fare"`
}

// topRow describes the attributes emitted per auto-enrichment candidate
// when --top is set.
type topRow struct {
	Rank     int     `schema:"attr,rank"`
	Offer    string  `schema:"attr,offer"`
	Price    float64 `schema:"attr,price"`
	Fare     string  `schema:"attr,fare"`
	Duration int     `schema:"attr,duration"`
}

// TqCommandAction is the action handler for the "tq" subcommand. It emits
// the headline tab prices for a fare document, or the auto-enrichment set
// when --top is given.
func TqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "tq") {
		return nil
	}

	schemaType := reflect.TypeOf(tabRow{})
	if cmd.Bool("top") {
		schemaType = reflect.TypeOf(topRow{})
	}
	if DumpSchemaIfRequested(cmd, schemaType) {
		return nil
	}

	config.Config.Namespace = "tq"

	refs := append(splitRefs(cmd.String("in")), cmd.Args().Slice()...)
	if len(refs) == 0 {
		return errors.New("no fare document specified. Use --in")
	}

	defaults := []string{"tab", "fare"}
	if cmd.Bool("top") {
		defaults = []string{"rank", "offer", "fare", "duration"}
	}
	attrs := BuildAttrs(cmd, defaults...)
	log.Debugf("attrs: %v", attrs)

	docs, raw, err := LoadDocuments(ctx, refs)
	if err != nil {
		return err
	}

	var rows []map[string]interface{}
	for _, doc := range docs {
		p, buildErr := BuildPresentation(cmd, doc)
		if buildErr != nil {
			return buildErr
		}
		if cmd.Bool("top") {
			rows = append(rows, topRows(p, doc.Offers)...)
		} else {
			rows = append(rows, tabRows(p)...)
		}
	}

	output.SliceDiceSpit(raw, rows, attrs, cmd, os.Stdout)

	return nil
}

// TqCommandBuilder constructs the cli.Command for "tq", wiring metadata,
// flags, and action/validator handlers.
func TqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "tq",
		Usage:     "tab price query",
		UsageText: `farelens tq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "top",
				Usage:       "show the auto-enrichment candidates instead of tab prices",
				HideDefault: true,
			},
			NewInFlag("tq"),
			NewCabinFlag("tq"),
			NewPointValueFlag("tq"),
			nocacheFlag,
			schemaFlag,
			tldrFlag,
		}, NewGlobalFlags("tq")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := TqCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return TqCommandAction(ctx, cmd)
		},
	}
}

// TqCommandValidator performs validation for "tq" and delegates to
// GlobalFlagsValidator.
func TqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}

func tabRows(p *pipeline.Presentation) []map[string]interface{} {
	return []map[string]interface{}{
		{
			"tab":   "best",
			"price": p.Tabs.Best,
			"fare":  humanize.CommafWithDigits(p.Tabs.Best, 2),
		},
		{
			"tab":   "cheapest",
			"price": p.Tabs.Cheap,
			"fare":  humanize.CommafWithDigits(p.Tabs.Cheap, 2),
		},
	}
}

// topRows resolves the auto-enrichment identities back to their offers so
// each row can show the price and duration behind the ranking.
func topRows(p *pipeline.Presentation, offers []offer.Offer) (rows []map[string]interface{}) {
	byID := make(map[string]*offer.Offer, len(offers))
	for i := range offers {
		byID[offers[i].ID] = &offers[i]
	}

	for i, id := range p.AutoEnrich {
		o, ok := byID[id]
		if !ok {
			continue
		}
		rows = append(rows, map[string]interface{}{
			"rank":     i + 1,
			"offer":    id,
			"price":    o.CashPrice(),
			"fare":     humanize.CommafWithDigits(o.CashPrice(), 2),
			"duration": o.TotalDuration(),
		})
	}
	return
}
