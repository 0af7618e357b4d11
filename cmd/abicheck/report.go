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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-abicheck/abi"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// printer renders validation results. Normalized documents go to out,
// verdicts and error reports to errOut.
type printer struct {
	out, errOut io.Writer
	cfg         outputConfig
	pass, fail  *color.Color
}

func newPrinter(out, errOut io.Writer, cfg outputConfig) *printer {
	p := &printer{
		out:    out,
		errOut: errOut,
		cfg:    cfg,
		pass:   color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
	}
	if cfg.Color && isTerminal(errOut) {
		p.errOut = colorWriter(errOut)
		p.pass.EnableColor()
		p.fail.EnableColor()
	} else {
		p.pass.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

// verdict prints the one line summary of a result.
func (p *printer) verdict(res *result) {
	switch {
	case res.err != nil:
		fmt.Fprintf(p.errOut, "%s %s: %v\n", p.fail.Sprint("FAIL"), res.name, res.err)
	case res.ok():
		fmt.Fprintf(p.errOut, "%s %s: %s\n", p.pass.Sprint("OK  "), res.name, plural(len(res.items), "item"))
	default:
		fmt.Fprintf(p.errOut, "%s %s: %s, %s valid\n", p.fail.Sprint("FAIL"), res.name, plural(len(res.errors), "error"), plural(len(res.items), "item"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// fileErrors is the machine readable error report of one document.
type fileErrors struct {
	File   string     `json:"file"`
	Error  string     `json:"error,omitempty"`
	Errors abi.Errors `json:"errors,omitempty"`
}

// errors prints the defects of all failed results.
func (p *printer) errors(results []*result) error {
	if p.cfg.Format == formatJSON {
		report := []fileErrors{}
		for _, res := range results {
			switch {
			case res.err != nil:
				report = append(report, fileErrors{File: res.name, Error: res.err.Error()})
			case len(res.errors) > 0:
				report = append(report, fileErrors{File: res.name, Errors: res.errors})
			}
		}
		return writeJSON(p.errOut, report, p.cfg.Indent)
	}
	table := newTable(p.errOut)
	table.SetHeader([]string{"File", "Path", "Kind", "Message", "Value"})
	for _, res := range results {
		for _, err := range res.errors {
			table.Append([]string{res.name, err.Path.String(), err.Kind.String(), err.Message, formatValue(err.Value)})
		}
	}
	if table.NumLines() > 0 {
		table.Render()
	}
	return nil
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		return strconv.Quote(v)
	default:
		blob, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(blob)
	}
}

// newTable creates a borderless table in the style of kubectl listings.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// fileOutput pairs a normalized ABI with its source when several documents
// are printed together.
type fileOutput struct {
	File string  `json:"file" yaml:"file"`
	ABI  abi.ABI `json:"abi" yaml:"abi"`
}

// normalized prints the normalized form of the given results. A single
// document is printed as is: an item stays an item, arrays and artifacts
// become an ABI array.
func (p *printer) normalized(w io.Writer, results []*result) error {
	if p.cfg.Format == formatTable {
		table := newTable(w)
		table.SetHeader([]string{"File", "Index", "Kind", "Signature", "Mutability"})
		for _, res := range results {
			for i, item := range res.items {
				mutability := string(item.StateMutability)
				if mutability == "" {
					mutability = "-"
				}
				table.Append([]string{res.name, strconv.Itoa(res.index[i]), item.Kind.String(), item.Signature(), mutability})
			}
		}
		table.Render()
		return nil
	}
	var v interface{}
	switch {
	case len(results) == 1 && results[0].doc != nil && results[0].doc.shape == shapeItem && len(results[0].items) == 1:
		v = results[0].items[0]
	case len(results) == 1:
		v = results[0].items
	default:
		list := make([]fileOutput, 0, len(results))
		for _, res := range results {
			if res.err == nil {
				list = append(list, fileOutput{res.name, res.items})
			}
		}
		v = list
	}
	if p.cfg.Format == formatYAML {
		return writeYAML(w, v, p.cfg.Indent)
	}
	return writeJSON(w, v, p.cfg.Indent)
}

func writeJSON(w io.Writer, v interface{}, indent string) error {
	blob, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return err
	}
	_, err = w.Write(append(blob, '\n'))
	return err
}

func writeYAML(w io.Writer, v interface{}, indent string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(len(strings.ReplaceAll(indent, "\t", "  ")))
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
