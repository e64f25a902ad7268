// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/farelens/internal/cluster"
	"github.com/staranto/farelens/internal/config"
	"github.com/staranto/farelens/internal/meta"
	"github.com/staranto/farelens/internal/output"
	"github.com/staranto/farelens/internal/pipeline"
)

// clusterRow describes the attributes emitted per cluster. The schema tags
// drive --schema output.
type clusterRow struct {
	Stops     int     `schema:"attr,stops"`
	BucketMin float64 `schema:"attr,bucketmin"`
	Size      int     `schema:"attr,size"`
	Offer     string  `schema:"attr,offer"`
	Airline   string  `schema:"attr,airline"`
	Flight    string  `schema:"attr,flight"`
	Route     string  `schema:"attr,route"`
	Depart    string  `schema:"attr,depart"`
	Duration  int     `schema:"attr,duration"`
	Price     float64 `schema:"attr,price"`
	Fare      string  `schema:"attr,fare"`
	Currency  string  `schema:"attr,currency"`
	Alts      string  `schema:"attr,alts"`
}

// CqCommandAction is the action handler for the "cq" subcommand. It loads
// one or more fare documents, runs the clustering chain over each, and emits
// one row per cluster per common flags.
func CqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "cq") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(clusterRow{})) {
		return nil
	}

	config.Config.Namespace = "cq"

	refs := append(splitRefs(cmd.String("in")), cmd.Args().Slice()...)
	if len(refs) == 0 {
		return errors.New("no fare document specified. Use --in")
	}

	attrs := BuildAttrs(cmd, "stops", "airline", "flight", "route", "depart", "duration", "fare", "alts")
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
		rows = append(rows, sectionRows(p)...)
	}

	output.SliceDiceSpit(raw, rows, attrs, cmd, os.Stdout)

	return nil
}

// CqCommandBuilder constructs the cli.Command for "cq", wiring metadata,
// flags, and action/validator handlers.
func CqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cq",
		Usage:     "cluster query",
		UsageText: `farelens cq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "nodedupe",
				Usage: "keep clusters with identical flight signatures separate",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("cq.nodedupe", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
			&cli.IntFlag{
				Name:        "stops",
				Usage:       "stop section to activate. Defaults to the fewest stops",
				HideDefault: true,
			},
			NewInFlag("cq"),
			NewCabinFlag("cq"),
			NewPointValueFlag("cq"),
			nocacheFlag,
			schemaFlag,
			tldrFlag,
		}, NewGlobalFlags("cq")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := CqCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return CqCommandAction(ctx, cmd)
		},
	}
}

// CqCommandValidator performs validation for "cq" and delegates to
// GlobalFlagsValidator.
func CqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}

// splitRefs breaks a comma-separated ref list, dropping empties.
func splitRefs(spec string) (refs []string) {
	for _, r := range strings.Split(spec, ",") {
		if r = strings.TrimSpace(r); r != "" {
			refs = append(refs, r)
		}
	}
	return
}

// sectionRows flattens a presentation into one row per cluster, section by
// section in ascending stop order.
func sectionRows(p *pipeline.Presentation) (rows []map[string]interface{}) {
	for _, s := range p.Sections {
		for _, c := range s.Clusters {
			rows = append(rows, clusterToRow(s.Stops, s.Cheapest, c))
		}
	}
	return
}

func clusterToRow(stops int, bucketMin float64, c *cluster.Cluster) map[string]interface{} {
	primary := c.Primary

	route := ""
	depart := ""
	if len(primary.Slices) > 0 {
		route = fmt.Sprintf("%s-%s", primary.Slices[0].Origin, primary.Slices[0].Destination)
		if !primary.Slices[0].Departure.IsZero() {
			depart = primary.Slices[0].Departure.Format(time.RFC3339)
		}
	}

	var alts []string
	for _, s := range c.Similar {
		alts = append(alts, s.PrimaryFlightNumber())
	}

	return map[string]interface{}{
		"stops":     stops,
		"bucketmin": bucketMin,
		"size":      c.Size(),
		"offer":     primary.ID,
		"airline":   primary.AirlineCode(),
		"flight":    primary.PrimaryFlightNumber(),
		"route":     route,
		"depart":    depart,
		"duration":  primary.TotalDuration(),
		"price":     primary.Price(),
		"fare":      humanize.CommafWithDigits(primary.Price(), 2),
		"currency":  primary.Currency,
		"alts":      strings.Join(alts, " "),
	}
}
