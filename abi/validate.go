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
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Config tunes a Validator.
type Config struct {
	// MaxDepth caps tuple nesting, counting both components and inline
	// tuple parentheses. Deeper documents fail with DepthExceeded.
	MaxDepth int

	// StrictMutability reports an explicit stateMutability that contradicts
	// the deprecated constant/payable flags as ConflictingStateMutability.
	// When unset the explicit value silently wins.
	StrictMutability bool

	// AllowLegacyFunctions accepts items without a "type" field as functions
	// when they otherwise look like one, as emitted by early toolchains.
	AllowLegacyFunctions bool
}

// DefaultConfig is used by the package level validation functions.
var DefaultConfig = Config{
	MaxDepth:             32,
	AllowLegacyFunctions: true,
}

// Validator checks raw ABI JSON values and normalizes them. A Validator
// holds no state besides its configuration and is safe for concurrent use.
type Validator struct {
	cfg Config
}

// NewValidator creates a validator. A non-positive MaxDepth selects the
// default depth.
func NewValidator(cfg Config) *Validator {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig.MaxDepth
	}
	return &Validator{cfg: cfg}
}

// Config returns the configuration the validator runs with.
func (v *Validator) Config() Config { return v.cfg }

var defaultValidator = NewValidator(DefaultConfig)

// ValidateItem validates and normalizes a single decoded ABI item using
// DefaultConfig. On failure the error is of type Errors, with paths relative
// to the item.
func ValidateItem(raw interface{}) (Item, error) {
	return defaultValidator.ValidateItem(raw)
}

// ValidateABI validates every item of a decoded ABI array using
// DefaultConfig. It never stops at the first bad item: the returned Errors
// holds the defects of all items, each path starting with the item index.
func ValidateABI(raw interface{}) (ABI, error) {
	return defaultValidator.ValidateABI(raw)
}

// ValidateItem validates and normalizes a single decoded ABI item.
func (v *Validator) ValidateItem(raw interface{}) (Item, error) {
	c := &checker{cfg: v.cfg}
	item := c.item(raw, Path{})
	if len(c.errs) > 0 {
		return Item{}, c.errs
	}
	return item, nil
}

// ValidateABI validates a decoded ABI array. Either all items validate and
// the normalized ABI is returned, or only the errors are.
func (v *Validator) ValidateABI(raw interface{}) (ABI, error) {
	report := v.Partition(raw)
	if len(report.Errors) > 0 {
		return nil, report.Errors
	}
	return report.Items, nil
}

// Report is the outcome of validating an ABI in success-collecting mode.
type Report struct {
	Items  ABI    // items that validated, normalized, in document order
	Index  []int  // Index[i] is the position of Items[i] in the source array
	Errors Errors // defects of all other items
}

// OK reports whether every item validated.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Partition validates every item of a decoded ABI array and reports both the
// items that validated and the errors of those that did not.
func (v *Validator) Partition(raw interface{}) *Report {
	report := new(Report)
	list, ok := raw.([]interface{})
	if !ok {
		report.Errors = Errors{{Kind: InvalidField, Path: Path{}, Message: "ABI must be an array of items", Value: jsonKind(raw)}}
		return report
	}
	for i, elem := range list {
		item, err := v.ValidateItem(elem)
		if err != nil {
			for _, e := range asErrors(err) {
				report.Errors = append(report.Errors, e.prefixed(i))
			}
			continue
		}
		report.Items = append(report.Items, item)
		report.Index = append(report.Index, i)
	}
	return report
}

// checker accumulates the errors of a single item.
type checker struct {
	cfg  Config
	errs Errors
}

func (c *checker) fail(kind ErrorKind, path Path, value interface{}, format string, args ...interface{}) {
	c.errs = append(c.errs, &ValidationError{
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	})
}

func (c *checker) item(raw interface{}, path Path) Item {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		c.fail(InvalidField, path, jsonKind(raw), "ABI item must be an object")
		return Item{}
	}
	kind, legacy, ok := c.kind(obj, path)
	if !ok {
		return Item{}
	}
	item := Item{Kind: kind}
	switch kind {
	case Function:
		item.Name = c.name(obj, path)
		item.Inputs = c.params(obj, "inputs", path, true, false)
		if _, present := obj["outputs"]; legacy && !present {
			item.Outputs = []Parameter{}
		} else {
			item.Outputs = c.params(obj, "outputs", path, true, false)
		}
		item.Constant = c.optionalBool(obj, "constant", path)
		item.Payable = c.optionalBool(obj, "payable", path)
		item.Gas = c.optionalUint(obj, "gas", path)
		item.StateMutability = c.mutability(obj, path, kind, item.Constant, item.Payable)

	case Constructor:
		item.Inputs = c.params(obj, "inputs", path, true, false)
		item.Payable = c.optionalBool(obj, "payable", path)
		item.StateMutability = c.mutability(obj, path, kind, nil, item.Payable)

	case Fallback:
		if _, present := obj["inputs"]; present {
			item.Inputs = c.params(obj, "inputs", path, true, false)
			if len(item.Inputs) > 0 {
				c.fail(InvalidField, path.child("inputs"), nil, "fallback takes no inputs")
			}
		}
		item.Payable = c.optionalBool(obj, "payable", path)
		item.StateMutability = c.mutability(obj, path, kind, nil, item.Payable)

	case Receive:
		item.StateMutability = Payable

	case Event:
		item.Name = c.name(obj, path)
		item.Inputs = c.params(obj, "inputs", path, true, true)
		item.Anonymous = c.optionalBool(obj, "anonymous", path)

	case CustomError:
		item.Name = c.name(obj, path)
		item.Inputs = c.params(obj, "inputs", path, true, false)
	}
	return item
}

// kind resolves the item discriminant. Items without a "type" field are
// treated as legacy functions when nothing about them suggests otherwise.
func (c *checker) kind(obj map[string]interface{}, path Path) (kind Kind, legacy bool, ok bool) {
	raw, present := obj["type"]
	if !present {
		if c.cfg.AllowLegacyFunctions && isLegacyFunction(obj) {
			return Function, true, true
		}
		c.fail(UnknownItemKind, path.child("type"), nil, "missing item type")
		return 0, false, false
	}
	s, isString := raw.(string)
	if isString {
		if kind, ok = ParseKind(s); ok {
			return kind, false, true
		}
	}
	c.fail(UnknownItemKind, path.child("type"), raw, "unrecognized item type")
	return 0, false, false
}

// isLegacyFunction reports whether an untyped item is unambiguously a
// function in the pre-discriminant format: it has a name and an inputs
// array, and carries none of the event markers.
func isLegacyFunction(obj map[string]interface{}) bool {
	if _, ok := obj["name"].(string); !ok {
		return false
	}
	inputs, ok := obj["inputs"].([]interface{})
	if !ok {
		return false
	}
	if _, ok := obj["anonymous"]; ok {
		return false
	}
	for _, input := range inputs {
		if m, ok := input.(map[string]interface{}); ok {
			if _, ok := m["indexed"]; ok {
				return false
			}
		}
	}
	return true
}

func (c *checker) name(obj map[string]interface{}, path Path) string {
	raw, present := obj["name"]
	if !present {
		c.fail(MissingRequiredField, path.child("name"), nil, "missing required field %q", "name")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		c.fail(InvalidField, path.child("name"), raw, "name must be a string")
	}
	return s
}

// mutability runs the legacy normalization pre-pass and checks the result
// against what the item kind may declare.
func (c *checker) mutability(obj map[string]interface{}, path Path, kind Kind, constant, payable *bool) StateMutability {
	allowed := allowedMutabilities(kind)
	raw, present := obj["stateMutability"]
	if !present {
		return DeriveStateMutability("", constant, payable)
	}
	s, ok := raw.(string)
	if !ok || !slices.Contains(allowed, StateMutability(s)) {
		c.fail(InvalidField, path.child("stateMutability"), raw, "%v stateMutability must be one of %s", kind, joinMutabilities(allowed))
		return ""
	}
	m := StateMutability(s)
	if c.cfg.StrictMutability && LegacyConflict(m, constant, payable) {
		c.fail(ConflictingStateMutability, path.child("stateMutability"), s, "stateMutability contradicts deprecated %s", legacyFlags(constant, payable))
	}
	return m
}

func joinMutabilities(ms []StateMutability) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = strconv.Quote(string(m))
	}
	return strings.Join(names, ", ")
}

func legacyFlags(constant, payable *bool) string {
	var flags []string
	if constant != nil {
		flags = append(flags, fmt.Sprintf("constant=%t", *constant))
	}
	if payable != nil {
		flags = append(flags, fmt.Sprintf("payable=%t", *payable))
	}
	return strings.Join(flags, " ")
}

// params validates the parameter list stored under key.
func (c *checker) params(obj map[string]interface{}, key string, path Path, required, event bool) []Parameter {
	raw, present := obj[key]
	if !present {
		if required {
			c.fail(MissingRequiredField, path.child(key), nil, "missing required field %q", key)
		}
		return nil
	}
	return c.paramList(raw, path.child(key), 1, event)
}

func (c *checker) paramList(raw interface{}, path Path, depth int, event bool) []Parameter {
	list, ok := raw.([]interface{})
	if !ok {
		c.fail(InvalidField, path, jsonKind(raw), "expected an array of parameters")
		return nil
	}
	out := make([]Parameter, 0, len(list))
	for i, elem := range list {
		out = append(out, c.param(elem, path.child(i), depth, event))
	}
	return out
}

// param is the single recursive point of the validator: tuple components
// are validated through it again with depth+1.
func (c *checker) param(raw interface{}, path Path, depth int, event bool) Parameter {
	var p Parameter
	if depth > c.cfg.MaxDepth {
		c.fail(DepthExceeded, path, nil, "tuple nesting exceeds %d levels", c.cfg.MaxDepth)
		return p
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		c.fail(InvalidField, path, jsonKind(raw), "parameter must be an object")
		return p
	}
	p.Name = c.optionalString(obj, "name", path)
	p.InternalType = c.optionalString(obj, "internalType", path)
	if event {
		p.Indexed = c.optionalBool(obj, "indexed", path)
	}
	rawType, present := obj["type"]
	if !present {
		c.fail(MissingRequiredField, path.child("type"), nil, "missing required field %q", "type")
		return p
	}
	typ, ok := rawType.(string)
	if !ok {
		c.fail(InvalidField, path.child("type"), rawType, "type must be a string")
		return p
	}
	p.Type = typ

	switch {
	case IsTupleType(typ):
		if !tupleRegex.MatchString(typ) {
			c.errs = append(c.errs, invalidType(typ).prefixed(path.child("type")...))
			return p
		}
		comps, present := obj["components"]
		if !present || comps == nil {
			c.fail(MissingComponents, path.child("components"), typ, "tuple type requires components")
			return p
		}
		p.Components = c.paramList(comps, path.child("components"), depth+1, false)

	case strings.HasPrefix(typ, "("):
		desc, err := parseTypeAt(typ, depth, c.cfg.MaxDepth)
		if err != nil {
			c.errs = append(c.errs, err.prefixed(path.child("type")...))
			return p
		}
		if comps, present := obj["components"]; present && comps != nil {
			p.Components = c.paramList(comps, path.child("components"), depth+1, false)
			c.matchInline(desc, p.Components, path)
		}

	default:
		if _, err := parseElementary(typ); err != nil {
			c.errs = append(c.errs, err.prefixed(path.child("type")...))
		}
	}
	return p
}

// matchInline cross-checks the components given next to an inline tuple
// type against the members spelled out in the type string.
func (c *checker) matchInline(desc *TypeDescriptor, comps []Parameter, path Path) {
	if len(comps) != len(desc.Elems) {
		c.fail(InvalidField, path.child("components"), len(comps), "inline tuple %s has %d members", desc, len(desc.Elems))
		return
	}
	for i, comp := range comps {
		have, err := canonicalType(comp)
		if err != nil {
			continue // already reported by param
		}
		if want := desc.Elems[i].Canonical(); have != want {
			c.fail(InvalidField, path.child("components").child(i), have, "component does not match inline tuple member %s", want)
		}
	}
}

func (c *checker) optionalString(obj map[string]interface{}, key string, path Path) *string {
	raw, present := obj[key]
	if !present {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		c.fail(InvalidField, path.child(key), raw, "%s must be a string", key)
		return nil
	}
	return &s
}

func (c *checker) optionalBool(obj map[string]interface{}, key string, path Path) *bool {
	raw, present := obj[key]
	if !present {
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		c.fail(InvalidField, path.child(key), raw, "%s must be a boolean", key)
		return nil
	}
	return &b
}

func (c *checker) optionalUint(obj map[string]interface{}, key string, path Path) *uint64 {
	raw, present := obj[key]
	if !present {
		return nil
	}
	var (
		n   uint64
		err error
	)
	switch v := raw.(type) {
	case json.Number:
		n, err = strconv.ParseUint(v.String(), 10, 64)
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
			err = fmt.Errorf("not an unsigned integer")
		}
		n = uint64(v)
	default:
		err = fmt.Errorf("not a number")
	}
	if err != nil {
		c.fail(InvalidField, path.child(key), raw, "%s must be an unsigned integer", key)
		return nil
	}
	return &n
}

// jsonKind names the JSON type of a decoded value for error reports.
func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
