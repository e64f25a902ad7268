// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/farelens/internal/config"
	"github.com/staranto/farelens/internal/differ"
	"github.com/staranto/farelens/internal/meta"
	"github.com/staranto/farelens/internal/source"
)

// DqCommandAction is the action handler for the "dq" subcommand. It compares
// two fare documents, either explicit --older/--newer refs or the two most
// recent versions of a single versioned s3 object, and prints the delta.
func DqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "dq") {
		return nil
	}

	config.Config.Namespace = "dq"

	older, newer, err := diffPair(ctx, cmd)
	if err != nil {
		return err
	}

	var report string
	if cmd.Bool("terse") {
		report, err = differ.DeltaReport(older, newer)
	} else {
		report, err = differ.Diff(older, newer, cmd.Bool("color"))
	}
	if err != nil {
		return err
	}

	if report == "" {
		fmt.Fprintln(os.Stdout, "No differences.")
		return nil
	}
	fmt.Fprint(os.Stdout, report)

	return nil
}

// diffPair resolves the two documents to compare. Explicit refs win; a lone
// --in ref must be a versioned s3 object and yields its latest two versions.
func diffPair(ctx context.Context, cmd *cli.Command) (older []byte, newer []byte, err error) {
	olderRef := cmd.String("older")
	newerRef := cmd.String("newer")

	if (olderRef == "") != (newerRef == "") {
		return nil, nil, errors.New("--older and --newer must be used together")
	}

	if olderRef != "" {
		if older, err = source.Load(ctx, olderRef); err != nil {
			return nil, nil, err
		}
		if newer, err = source.Load(ctx, newerRef); err != nil {
			return nil, nil, err
		}
		return older, newer, nil
	}

	// Two positional refs work like --older/--newer; one works like --in.
	if args := cmd.Args().Slice(); len(args) == 2 {
		if older, err = source.Load(ctx, args[0]); err != nil {
			return nil, nil, err
		}
		if newer, err = source.Load(ctx, args[1]); err != nil {
			return nil, nil, err
		}
		return older, newer, nil
	}

	ref := cmd.String("in")
	if ref == "" {
		if args := cmd.Args().Slice(); len(args) == 1 {
			ref = args[0]
		}
	}
	if ref == "" {
		return nil, nil, errors.New("no fare document specified. Use --in or --older/--newer")
	}

	pair, err := source.LatestPair(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	return pair[0], pair[1], nil
}

// DqCommandBuilder constructs the cli.Command for "dq", wiring metadata,
// flags, and action/validator handlers.
func DqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "dq",
		Usage:     "fare document diff",
		UsageText: `farelens dq [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "older",
				Usage: "older fare document. Local path or s3://bucket/key",
			},
			&cli.StringFlag{
				Name:  "newer",
				Usage: "newer fare document. Local path or s3://bucket/key",
			},
			&cli.BoolFlag{
				Name:  "terse",
				Usage: "only report the number of changes",
				Value: false,
			},
			NewInFlag("dq"),
			tldrFlag,
		}, NewGlobalFlags("dq")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := DqCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return DqCommandAction(ctx, cmd)
		},
	}
}

// DqCommandValidator performs validation for "dq" and delegates to
// GlobalFlagsValidator.
func DqCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
