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
)

// Kind is the discriminant of an ABI item, taken from its "type" field.
type Kind int

const (
	Function Kind = iota
	Constructor
	Fallback
	Receive
	Event
	CustomError
)

var kindNames = [...]string{
	Function:    "function",
	Constructor: "constructor",
	Fallback:    "fallback",
	Receive:     "receive",
	Event:       "event",
	CustomError: "error",
}

// String returns the name of the kind as written in ABI JSON.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps an ABI "type" value onto its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Parameter is a single entry of an inputs, outputs or components list.
//
// Optional fields are pointers so that a normalized parameter reproduces
// exactly the fields its source document carried; {"name":"","type":"bool"}
// and {"type":"bool"} stay distinct.
type Parameter struct {
	Name         *string
	Type         string
	InternalType *string
	Components   []Parameter // non-nil only for tuple types that carried components
	Indexed      *bool       // event inputs only
}

// IsIndexed reports whether the parameter is an indexed event argument.
func (p Parameter) IsIndexed() bool {
	return p.Indexed != nil && *p.Indexed
}

// Item is a single normalized entry of a contract ABI. Which fields are
// meaningful depends on Kind:
//
//	function:    Name, Inputs, Outputs, StateMutability, Constant, Payable, Gas
//	constructor: Inputs, StateMutability, Payable
//	fallback:    StateMutability, Payable, Inputs (always empty when present)
//	receive:     StateMutability (always payable)
//	event:       Name, Inputs, Anonymous
//	error:       Name, Inputs
type Item struct {
	Kind            Kind
	Name            string
	Inputs          []Parameter
	Outputs         []Parameter
	StateMutability StateMutability

	// Deprecated flags, preserved verbatim when present in the source.
	Constant *bool
	Payable  *bool

	Anonymous *bool
	Gas       *uint64
}

// ABI is an ordered list of items. Order follows the source document and
// names may repeat (overloads).
type ABI []Item

// Filter returns the items of the given kind, in document order.
func (abi ABI) Filter(kind Kind) []Item {
	var out []Item
	for _, item := range abi {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

// Lookup returns all items with the given kind and name. Several items are
// returned for overloaded functions and events.
func (abi ABI) Lookup(kind Kind, name string) []Item {
	var out []Item
	for _, item := range abi {
		if item.Kind == kind && item.Name == name {
			out = append(out, item)
		}
	}
	return out
}
