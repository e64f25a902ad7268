// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/farelens/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	nocacheFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "nocache",
		Usage:       "bypass the result cache",
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:  "local",
			Usage: "render timestamps in the local timezone",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"local", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("local", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewInFlag constructs the "in" flag naming the fare document to read. It
// accepts a local path or an s3:// object ref and falls back to the
// FARELENS_IN environment variable or the config file.
func NewInFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "in",
		Aliases: []string{"i"},
		Usage:   "fare document to read. Local path or s3://bucket/key",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FARELENS_IN"),
		),
	}
	return NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, flag)
}

// NewCabinFlag constructs the "cabin" flag used to narrow offers before
// clustering. An empty value keeps every cabin.
func NewCabinFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "cabin",
		Usage: "only include offers selling this cabin",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FARELENS_CABIN"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, CabinValidator)
		},
	}
	return NameSpacedValueChainFlagFromConfigFile(params[0], cfg.Source, flag)
}

// NewPointValueFlag constructs the "point-value" flag, the cash value of one
// mile used when ranking mileage offers against cash offers.
func NewPointValueFlag(params ...string) (flag *cli.FloatFlag) {
	flag = &cli.FloatFlag{
		Name:  "point-value",
		Usage: "cash value of one mile for mileage comparisons",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("FARELENS_POINT_VALUE"),
			yaml.YAML(params[0]+"."+"point-value", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("point-value", altsrc.StringSourcer(cfg.Source)),
		),
		Value: 0,
	}
	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
