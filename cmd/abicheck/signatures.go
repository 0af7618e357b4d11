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
	"encoding/hex"
	"errors"

	"github.com/ethereum/go-abicheck/abi"
	"github.com/ethereum/go-abicheck/internal/flags"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
)

var signaturesCommand = &cli.Command{
	Action:    listSignatures,
	Name:      "signatures",
	Usage:     "List the canonical signatures, selectors and event topics of ABI documents",
	ArgsUsage: "<file> [<file>...]",
	Flags:     flags.Merge(validatorFlags, []cli.Flag{formatFlag}),
	Description: `
The signatures command prints the canonical signature of every item together
with its 4 byte selector (functions and errors) or its topic (events). Items
that fail validation are reported and left out.`,
}

// signature describes the identifiers of one ABI item.
type signature struct {
	File      string `json:"file" yaml:"file"`
	Kind      string `json:"kind" yaml:"kind"`
	Signature string `json:"signature" yaml:"signature"`
	Selector  string `json:"selector,omitempty" yaml:"selector,omitempty"`
	Topic     string `json:"topic,omitempty" yaml:"topic,omitempty"`
}

func signaturesOf(name string, items abi.ABI) []signature {
	sigs := make([]signature, 0, len(items))
	for _, item := range items {
		sig := signature{File: name, Kind: item.Kind.String(), Signature: item.Signature()}
		if id, ok := item.Selector(); ok {
			sig.Selector = "0x" + hex.EncodeToString(id[:])
		}
		if topic, ok := item.Topic(); ok {
			sig.Topic = "0x" + hex.EncodeToString(topic[:])
		}
		sigs = append(sigs, sig)
	}
	return sigs
}

// sortSignatures orders a listing by file, then kind, then signature.
func sortSignatures(sigs []signature) {
	slices.SortStableFunc(sigs, func(a, b signature) int {
		switch {
		case a.File != b.File:
			return compareStrings(a.File, b.File)
		case a.Kind != b.Kind:
			return compareStrings(a.Kind, b.Kind)
		default:
			return compareStrings(a.Signature, b.Signature)
		}
	})
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func listSignatures(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no input files given")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	var (
		results = validateDocuments(ctx.Args().Slice(), abi.NewValidator(cfg.Validator), ctx.App.Reader)
		p       = newPrinter(ctx.App.Writer, ctx.App.ErrWriter, cfg.Output)
		sigs    []signature
		failed  bool
	)
	for _, res := range results {
		if !res.ok() {
			p.verdict(res)
			failed = true
		}
		sigs = append(sigs, signaturesOf(res.name, res.items)...)
	}
	if failed {
		if err := p.errors(results); err != nil {
			return err
		}
	}
	sortSignatures(sigs)

	switch cfg.Output.Format {
	case formatJSON:
		if sigs == nil {
			sigs = []signature{}
		}
		err = writeJSON(ctx.App.Writer, sigs, cfg.Output.Indent)
	case formatYAML:
		err = writeYAML(ctx.App.Writer, sigs, cfg.Output.Indent)
	default:
		table := newTable(ctx.App.Writer)
		table.SetHeader([]string{"File", "Kind", "Signature", "Id"})
		for _, sig := range sigs {
			id := sig.Selector
			if id == "" {
				id = sig.Topic
			}
			if id == "" {
				id = "-"
			}
			table.Append([]string{sig.File, sig.Kind, sig.Signature, id})
		}
		table.Render()
	}
	if err != nil {
		return err
	}
	if failed {
		return errValidationFailed
	}
	return nil
}
