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
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies a validation failure.
type ErrorKind int

const (
	InvalidTypeString ErrorKind = iota
	MissingComponents
	UnknownItemKind
	MissingRequiredField
	ConflictingStateMutability
	InvalidField
	DepthExceeded
)

var errorKindNames = [...]string{
	InvalidTypeString:          "InvalidTypeString",
	MissingComponents:          "MissingComponents",
	UnknownItemKind:            "UnknownItemKind",
	MissingRequiredField:       "MissingRequiredField",
	ConflictingStateMutability: "ConflictingStateMutability",
	InvalidField:               "InvalidField",
	DepthExceeded:              "DepthExceeded",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return errorKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Sentinel errors usable with errors.Is against a *ValidationError or Errors.
var (
	ErrInvalidTypeString          = &kindError{InvalidTypeString}
	ErrMissingComponents          = &kindError{MissingComponents}
	ErrUnknownItemKind            = &kindError{UnknownItemKind}
	ErrMissingRequiredField       = &kindError{MissingRequiredField}
	ErrConflictingStateMutability = &kindError{ConflictingStateMutability}
	ErrInvalidField               = &kindError{InvalidField}
	ErrDepthExceeded              = &kindError{DepthExceeded}
)

type kindError struct{ kind ErrorKind }

func (e *kindError) Error() string { return "abi: " + e.kind.String() }

// Path locates a value inside a JSON document. Elements are either int
// (array index) or string (object key).
type Path []interface{}

// String renders the path in accessor form, e.g. [0].inputs[1].type.
func (p Path) String() string {
	var b strings.Builder
	for _, elem := range p {
		switch v := elem.(type) {
		case int:
			b.WriteString("[" + strconv.Itoa(v) + "]")
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(v)
		default:
			fmt.Fprintf(&b, "<%v>", v)
		}
	}
	if b.Len() == 0 {
		return "<root>"
	}
	return b.String()
}

// child returns a copy of p extended with elem. Paths are shared between
// sibling errors, so they must never be appended to in place.
func (p Path) child(elem interface{}) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, elem)
}

// ValidationError describes a single defect found in an ABI document.
type ValidationError struct {
	Kind    ErrorKind   `json:"kind"`
	Path    Path        `json:"path"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%v: %s (%v): %s", e.Path, e.Message, e.Kind, formatValue(e.Value))
	}
	return fmt.Sprintf("%v: %s (%v)", e.Path, e.Message, e.Kind)
}

// Is reports whether target is the sentinel matching the error kind.
func (e *ValidationError) Is(target error) bool {
	if k, ok := target.(*kindError); ok {
		return k.kind == e.Kind
	}
	return false
}

// prefixed returns a copy of e whose path is rooted at prefix.
func (e *ValidationError) prefixed(prefix ...interface{}) *ValidationError {
	path := make(Path, 0, len(prefix)+len(e.Path))
	path = append(path, prefix...)
	path = append(path, e.Path...)
	cpy := *e
	cpy.Path = path
	return &cpy
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	default:
		blob, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(blob)
	}
}

// Errors is the ordered list of defects found during a validation call.
type Errors []*ValidationError

func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "abi: no errors"
	case 1:
		return "abi: " + errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("abi: %d validation errors:\n\t%s", len(errs), strings.Join(msgs, "\n\t"))
}

// Is reports whether any contained error matches target.
func (errs Errors) Is(target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Kinds returns the kind of every contained error, in order.
func (errs Errors) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, len(errs))
	for i, err := range errs {
		kinds[i] = err.Kind
	}
	return kinds
}

// asErrors converts the error returned by a validation call into Errors.
// Errors of other types are wrapped into a single InvalidField entry.
func asErrors(err error) Errors {
	if err == nil {
		return nil
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return Errors{verr}
	}
	return Errors{{Kind: InvalidField, Path: Path{}, Message: err.Error()}}
}

// AsErrors extracts the validation errors carried by err, or nil.
func AsErrors(err error) Errors {
	return asErrors(err)
}
