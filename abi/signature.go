// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.


package abi

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// canonicalType returns the canonical type of a parameter as used in
// signatures: tuples given by keyword are expanded from their components,
// aliases like uint become uint256.
func canonicalType(p Parameter) (string, error) {
	if IsTupleType(p.Type) {
		m := tupleRegex.FindStringSubmatch(p.Type)
		if m == nil {
			return "", invalidType(p.Type)
		}
		elems := make([]string, len(p.Components))
		for i, comp := range p.Components {
			typ, err := canonicalType(comp)
			if err != nil {
				return "", err
			}
			elems[i] = typ
		}
		return "(" + strings.Join(elems, ",") + ")" + m[1], nil
	}
	desc, err := ParseType(p.Type)
	if err != nil {
		return "", err
	}
	return desc.Canonical(), nil
}

// CanonicalType returns the canonical signature type of the parameter.
func (p Parameter) CanonicalType() (string, error) {
	return canonicalType(p)
}

// Signature returns the canonical signature of the item, e.g.
//
//	function foo(uint32 a, int b, (bool,string) c)  =  "foo(uint32,int256,(bool,string))"
//
// Constructor, fallback and receive items use their kind as name.
func (item Item) Signature() string {
	name := item.Name
	switch item.Kind {
	case Constructor, Fallback, Receive:
		name = item.Kind.String()
	}
	types := make([]string, len(item.Inputs))
	for i, input := range item.Inputs {
		typ, err := canonicalType(input)
		if err != nil {
			typ = input.Type
		}
		types[i] = typ
	}
	return fmt.Sprintf("%v(%v)", name, strings.Join(types, ","))
}

// Selector returns the 4 byte identifier of a function or custom error, the
// first bytes of the Keccak256 hash of its signature.
func (item Item) Selector() ([4]byte, bool) {
	var id [4]byte
	if item.Kind != Function && item.Kind != CustomError {
		return id, false
	}
	copy(id[:], keccak256([]byte(item.Signature())))
	return id, true
}

// Topic returns the topic under which a non-anonymous event is logged.
func (item Item) Topic() ([32]byte, bool) {
	var topic [32]byte
	if item.Kind != Event || (item.Anonymous != nil && *item.Anonymous) {
		return topic, false
	}
	copy(topic[:], keccak256([]byte(item.Signature())))
	return topic, true
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// String renders the item in human readable Solidity-like form, e.g.
//
//	function balanceOf(address owner) view returns (uint256)
func (item Item) String() string {
	var b strings.Builder
	switch item.Kind {
	case Constructor, Fallback, Receive:
		b.WriteString(item.Kind.String())
	default:
		b.WriteString(item.Kind.String() + " " + item.Name)
	}
	b.WriteString("(" + formatParams(item.Inputs) + ")")

	switch item.Kind {
	case Function:
		if item.StateMutability != NonPayable {
			b.WriteString(" " + string(item.StateMutability))
		}
		if len(item.Outputs) > 0 {
			b.WriteString(" returns (" + formatParams(item.Outputs) + ")")
		}
	case Constructor, Fallback, Receive:
		if item.StateMutability == Payable {
			b.WriteString(" payable")
		}
	case Event:
		if item.Anonymous != nil && *item.Anonymous {
			b.WriteString(" anonymous")
		}
	}
	return b.String()
}

func formatParams(params []Parameter) string {
	out := make([]string, len(params))
	for i, p := range params {
		typ, err := canonicalType(p)
		if err != nil {
			typ = p.Type
		}
		if p.IsIndexed() {
			typ += " indexed"
		}
		if p.Name != nil && *p.Name != "" {
			typ += " " + *p.Name
		}
		out[i] = typ
	}
	return strings.Join(out, ", ")
}
