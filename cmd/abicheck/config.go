// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/ethereum/go-abicheck/abi"
	"github.com/ethereum/go-abicheck/internal/flags"
	"github.com/ethereum/go-abicheck/log"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Flags:       flags.Merge(validatorFlags, []cli.Flag{formatFlag}),
	Description: `Export configuration values in TOML format (to stdout by default).`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// outputFormat selects how normalized documents are printed.
type outputFormat string

const (
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatTable outputFormat = "table"
)

func (f outputFormat) MarshalText() ([]byte, error) {
	if f == "" {
		return []byte(formatJSON), nil
	}
	return []byte(f), nil
}

func (f *outputFormat) UnmarshalText(text []byte) error {
	switch s := outputFormat(text); s {
	case formatJSON, formatYAML, formatTable:
		*f = s
		return nil
	default:
		return fmt.Errorf("unknown output format %q, want json, yaml or table", s)
	}
}

type outputConfig struct {
	Format outputFormat
	Color  bool   // color verdicts when printing to a terminal
	Indent string // indentation of JSON and YAML output
}

type abicheckConfig struct {
	Validator abi.Config
	Output    outputConfig
}

var defaultConfig = abicheckConfig{
	Validator: abi.DefaultConfig,
	Output: outputConfig{
		Format: formatJSON,
		Color:  true,
		Indent: "  ",
	},
}

func loadConfig(file string, cfg *abicheckConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	var lineErr *toml.LineError
	if errors.As(err, &lineErr) {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig assembles the effective configuration: defaults, then the
// config file, then command line flags.
func makeConfig(ctx *cli.Context) (abicheckConfig, error) {
	cfg := defaultConfig
	if file := flags.GlobalPath(ctx, configFileFlag.Name); ctx.IsSet(configFileFlag.Name) && file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		log.Debug("Loaded configuration", "file", file)
	}
	if ctx.IsSet(strictFlag.Name) {
		cfg.Validator.StrictMutability = ctx.Bool(strictFlag.Name)
	}
	if ctx.IsSet(maxDepthFlag.Name) {
		cfg.Validator.MaxDepth = ctx.Int(maxDepthFlag.Name)
	}
	if ctx.IsSet(noLegacyFlag.Name) {
		cfg.Validator.AllowLegacyFunctions = !ctx.Bool(noLegacyFlag.Name)
	}
	if ctx.IsSet(formatFlag.Name) {
		cfg.Output.Format = *flags.GlobalTextMarshaler(ctx, formatFlag.Name).(*outputFormat)
	}
	if ctx.Bool(noColorFlag.Name) {
		cfg.Output.Color = false
	}
	if cfg.Validator.MaxDepth <= 0 {
		return cfg, fmt.Errorf("invalid MaxDepth %d, must be positive", cfg.Validator.MaxDepth)
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
