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
)

// docShape tells how an ABI was embedded in its input file.
type docShape int

const (
	shapeArray    docShape = iota // plain ABI array
	shapeItem                     // a single ABI item
	shapeArtifact                 // compiler artifact with an "abi" key
)

func (s docShape) String() string {
	switch s {
	case shapeItem:
		return "item"
	case shapeArtifact:
		return "artifact"
	default:
		return "abi"
	}
}

// document is a decoded input file.
type document struct {
	name  string
	shape docShape
	raw   interface{} // the ABI array, or the item for shapeItem
}

// readDocument loads and decodes the named file. The name "-" reads standard
// input.
func readDocument(name string, stdin io.Reader) (*document, error) {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	raw, err := abi.Decode(r)
	if err != nil {
		return nil, err
	}
	return newDocument(name, raw)
}

func newDocument(name string, raw interface{}) (*document, error) {
	switch v := raw.(type) {
	case []interface{}:
		return &document{name: name, shape: shapeArray, raw: v}, nil
	case map[string]interface{}:
		// Hardhat, Foundry and truffle artifacts carry the ABI under "abi".
		if inner, ok := v["abi"]; ok {
			if _, isList := inner.([]interface{}); !isList {
				return nil, errors.New(`artifact "abi" field is not an array`)
			}
			return &document{name: name, shape: shapeArtifact, raw: inner}, nil
		}
		return &document{name: name, shape: shapeItem, raw: v}, nil
	default:
		return nil, errors.New("expected an ABI array, item or artifact object")
	}
}

// result is the outcome of validating one document.
type result struct {
	name   string
	doc    *document // nil if the file could not be loaded
	err    error     // load failure
	items  abi.ABI
	index  []int // source position of each entry in items
	errors abi.Errors
}

func (r *result) ok() bool { return r.err == nil && len(r.errors) == 0 }

// validate runs the document through v in success-collecting mode.
func (d *document) validate(v *abi.Validator) *result {
	res := &result{name: d.name, doc: d}
	if d.shape == shapeItem {
		item, err := v.ValidateItem(d.raw)
		if err != nil {
			res.errors = abi.AsErrors(err)
			return res
		}
		res.items, res.index = abi.ABI{item}, []int{0}
		return res
	}
	report := v.Partition(d.raw)
	res.items, res.index, res.errors = report.Items, report.Index, report.Errors
	return res
}
