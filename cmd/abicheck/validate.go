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
	"errors"
	"io"
	"os"

	"github.com/ethereum/go-abicheck/abi"
	"github.com/ethereum/go-abicheck/internal/flags"
	"github.com/ethereum/go-abicheck/log"
	"github.com/urfave/cli/v2"
)

var (
	outFlag = &flags.PathFlag{
		Name:     "out",
		Usage:    "Write the normalized output to this file instead of stdout",
		Category: flags.OutputCategory,
	}
	quietFlag = &cli.BoolFlag{
		Name:     "quiet",
		Aliases:  []string{"q"},
		Usage:    "Only report defects, print no normalized output",
		Category: flags.OutputCategory,
	}
	partialFlag = &cli.BoolFlag{
		Name:     "partial",
		Usage:    "Print the items that validated even if others did not",
		Category: flags.OutputCategory,
	}
)

var validateCommand = &cli.Command{
	Action:    validateFiles,
	Name:      "validate",
	Usage:     "Validate ABI documents and print them normalized",
	ArgsUsage: "<file> [<file>...]",
	Flags:     flags.Merge(validatorFlags, []cli.Flag{formatFlag, outFlag, quietFlag, partialFlag}),
	Description: `
The validate command checks the given ABI documents and prints them in
normalized form: deprecated constant and payable flags are resolved into
stateMutability, legacy untyped items become functions and unknown keys are
dropped.

An input file may hold an ABI array, a single ABI item or a compiler artifact
carrying the ABI under "abi". Use - to read from standard input. Every defect
of every document is reported and the command exits with status 1 if there
were any.`,
}

// validateDocuments loads and validates each named file. Load failures are
// recorded in the result rather than aborting the run.
func validateDocuments(names []string, v *abi.Validator, stdin io.Reader) []*result {
	results := make([]*result, 0, len(names))
	for _, name := range names {
		doc, err := readDocument(name, stdin)
		if err != nil {
			log.Warn("Failed to load document", "file", name, "err", err)
			results = append(results, &result{name: name, err: err})
			continue
		}
		res := doc.validate(v)
		log.Info("Validated document", "file", name, "shape", doc.shape, "items", len(res.items), "errors", len(res.errors))
		for _, err := range res.errors {
			log.Debug("Validation error", "file", name, "path", err.Path, "kind", err.Kind, "msg", err.Message)
		}
		results = append(results, res)
	}
	return results
}

func validateFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no input files given")
	}
	if err := flags.CheckExclusive(ctx, quietFlag, outFlag); err != nil {
		return err
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	var (
		results = validateDocuments(ctx.Args().Slice(), abi.NewValidator(cfg.Validator), ctx.App.Reader)
		p       = newPrinter(ctx.App.Writer, ctx.App.ErrWriter, cfg.Output)
		failed  bool
	)
	for _, res := range results {
		p.verdict(res)
		failed = failed || !res.ok()
	}
	if failed {
		if err := p.errors(results); err != nil {
			return err
		}
	}
	if ctx.Bool(quietFlag.Name) || (failed && !ctx.Bool(partialFlag.Name)) {
		if failed {
			return errValidationFailed
		}
		return nil
	}
	out := ctx.App.Writer
	if ctx.IsSet(outFlag.Name) {
		f, err := os.Create(flags.GlobalPath(ctx, outFlag.Name))
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := p.normalized(out, results); err != nil {
		return err
	}
	if failed {
		return errValidationFailed
	}
	return nil
}
