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
	"regexp"
	"strconv"
	"strings"
)

const (
	// widths accepted for int<M>, uint<M>, fixed<M>x<N> and ufixed<M>x<N>.
	bitWidths = `(?:8|16|24|32|40|48|56|64|72|80|88|96|104|112|120|128|136|144|152|160|168|176|184|192|200|208|216|224|232|240|248|256)`
	// sizes accepted for bytes<N>.
	byteSizes = `(?:[1-9]|[12][0-9]|3[0-2])`
	// decimal places accepted for fixed<M>x<N>.
	precisions = `(?:[0-9]|[1-7][0-9]|80)`
	// one or more array suffixes, fixed size or dynamic.
	arraySuffixes = `((?:\[(?:0|[1-9][0-9]*)?\])*)`
)

var (
	// elementaryRegex matches every non-tuple Solidity type, including array
	// suffixes. Submatches: 1 base+size, 2 bytes size, 3 int width,
	// 4 fixed width, 5 fixed precision, 6 array suffixes.
	elementaryRegex = regexp.MustCompile(`^(address|bool|string|function|bytes(` + byteSizes + `)?|u?int(` + bitWidths + `)?|u?fixed(?:(` + bitWidths + `)x(` + precisions + `))?)` + arraySuffixes + `$`)

	// tupleRegex matches the `tuple` keyword form whose shape lives in the
	// accompanying components.
	tupleRegex = regexp.MustCompile(`^tuple` + arraySuffixes + `$`)

	// dimensionRegex extracts individual dimensions from an array suffix run.
	dimensionRegex = regexp.MustCompile(`\[([0-9]*)\]`)
)

const (
	defaultIntWidth       = 256
	defaultFixedWidth     = 128
	defaultFixedPrecision = 18

	// DynamicSize marks a dynamically sized array dimension.
	DynamicSize = -1
)

// TypeDescriptor is the decomposition of a Solidity type string.
type TypeDescriptor struct {
	Base      string // address, bool, string, function, bytes, int, uint, fixed, ufixed or tuple
	Size      int    // bit width for (u)int and (u)fixed, byte count for bytes<N>
	Precision int    // decimal places for (u)fixed
	Sized     bool   // whether the size was spelled out in the source string

	// Elems holds the element types of an inline tuple such as (uint256,bool).
	// It is nil for the `tuple` keyword, whose elements live in components.
	Elems  []*TypeDescriptor
	Inline bool

	// Dimensions lists array suffixes in written order; DynamicSize for [].
	Dimensions []int
}

// IsTuple reports whether the type (ignoring array suffixes) is a tuple.
func (t *TypeDescriptor) IsTuple() bool { return t.Base == "tuple" }

// IsArray reports whether the type carries at least one array suffix.
func (t *TypeDescriptor) IsArray() bool { return len(t.Dimensions) > 0 }

// String re-serialises the descriptor. For any string accepted by ParseType,
// ParseType(s).String() == s.
func (t *TypeDescriptor) String() string {
	return t.format(false)
}

// Canonical returns the canonical spelling used in signatures: int and uint
// become int256/uint256, fixed and ufixed become fixed128x18/ufixed128x18.
// Tuples given by keyword stay `tuple`, since their shape is not known here.
func (t *TypeDescriptor) Canonical() string {
	return t.format(true)
}

func (t *TypeDescriptor) format(canonical bool) string {
	var b strings.Builder
	switch {
	case t.Inline:
		b.WriteByte('(')
		for i, elem := range t.Elems {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(elem.format(canonical))
		}
		b.WriteByte(')')
	default:
		b.WriteString(t.Base)
		if t.Sized || canonical {
			switch t.Base {
			case "int", "uint":
				b.WriteString(strconv.Itoa(t.Size))
			case "fixed", "ufixed":
				fmt.Fprintf(&b, "%dx%d", t.Size, t.Precision)
			case "bytes":
				if t.Sized {
					b.WriteString(strconv.Itoa(t.Size))
				}
			}
		}
	}
	writeDimensions(&b, t.Dimensions)
	return b.String()
}

func writeDimensions(b *strings.Builder, dims []int) {
	for _, dim := range dims {
		if dim == DynamicSize {
			b.WriteString("[]")
		} else {
			b.WriteString("[" + strconv.Itoa(dim) + "]")
		}
	}
}

// IsSolidityType reports whether s is a well-formed Solidity type reference
// on its own. The `tuple` keyword forms are accepted; whether they are
// complete depends on the components that accompany them.
func IsSolidityType(s string) bool {
	_, err := ParseType(s)
	return err == nil
}

// IsTupleType reports whether s names a tuple by keyword: either bare
// `tuple` or `tuple` followed by an array suffix.
func IsTupleType(s string) bool {
	return s == "tuple" || strings.HasPrefix(s, "tuple[")
}

// ParseType decomposes a Solidity type string.
func ParseType(s string) (*TypeDescriptor, error) {
	t, err := parseTypeAt(s, 1, DefaultConfig.MaxDepth)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// parseTypeAt parses s as if it was found at the given tuple nesting depth.
func parseTypeAt(s string, depth, maxDepth int) (*TypeDescriptor, *ValidationError) {
	switch {
	case IsTupleType(s):
		m := tupleRegex.FindStringSubmatch(s)
		if m == nil {
			return nil, invalidType(s)
		}
		dims, ok := parseDimensions(m[1])
		if !ok {
			return nil, invalidType(s)
		}
		return &TypeDescriptor{Base: "tuple", Dimensions: dims}, nil
	case strings.HasPrefix(s, "("):
		p := &inlineParser{input: s, maxDepth: maxDepth}
		t, err := p.parse(depth)
		if err != nil {
			return nil, err
		}
		if p.pos != len(s) {
			return nil, invalidType(s)
		}
		return t, nil
	}
	return parseElementary(s)
}

// parseElementary decomposes a non-tuple type string using the compiled
// grammar. Matching is anchored and linear in the length of s.
func parseElementary(s string) (*TypeDescriptor, *ValidationError) {
	m := elementaryRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, invalidType(s)
	}
	dims, ok := parseDimensions(m[6])
	if !ok {
		return nil, invalidType(s)
	}
	t := &TypeDescriptor{
		Base:       strings.TrimRight(m[1], "0123456789x"),
		Dimensions: dims,
	}
	switch {
	case m[2] != "":
		t.Size, t.Sized = atoi(m[2]), true
	case m[3] != "":
		t.Size, t.Sized = atoi(m[3]), true
	case m[4] != "":
		t.Size, t.Precision, t.Sized = atoi(m[4]), atoi(m[5]), true
	case t.Base == "int" || t.Base == "uint":
		t.Size = defaultIntWidth
	case t.Base == "fixed" || t.Base == "ufixed":
		t.Size, t.Precision = defaultFixedWidth, defaultFixedPrecision
	}
	return t, nil
}

// parseDimensions splits a run of array suffixes already vetted by the
// grammar. It fails only if a length does not fit an int.
func parseDimensions(suffix string) ([]int, bool) {
	if suffix == "" {
		return nil, true
	}
	matches := dimensionRegex.FindAllStringSubmatch(suffix, -1)
	dims := make([]int, len(matches))
	for i, m := range matches {
		if m[1] == "" {
			dims[i] = DynamicSize
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false
		}
		dims[i] = n
	}
	return dims, true
}

// atoi converts the short digit runs of sizes vetted by the grammar.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func invalidType(s string) *ValidationError {
	return &ValidationError{Kind: InvalidTypeString, Message: "invalid Solidity type", Value: s}
}

// inlineParser is a recursive-descent parser for inline tuple types like
// (uint256,(bool,address)[])[3]. Elementary members are delegated to the
// compiled grammar.
type inlineParser struct {
	input    string
	pos      int
	maxDepth int
}

func (p *inlineParser) parse(depth int) (*TypeDescriptor, *ValidationError) {
	if depth > p.maxDepth {
		return nil, &ValidationError{Kind: DepthExceeded, Message: fmt.Sprintf("tuple nesting exceeds %d levels", p.maxDepth), Value: p.input}
	}
	if !p.consume('(') {
		return nil, invalidType(p.input)
	}
	t := &TypeDescriptor{Base: "tuple", Inline: true, Elems: []*TypeDescriptor{}}
	if !p.consume(')') {
		for {
			elem, err := p.member(depth)
			if err != nil {
				return nil, err
			}
			t.Elems = append(t.Elems, elem)
			if p.consume(')') {
				break
			}
			if !p.consume(',') {
				return nil, invalidType(p.input)
			}
		}
	}
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] == '[' || p.input[p.pos] == ']' || isDigit(p.input[p.pos])) {
		p.pos++
	}
	suffix := p.input[start:p.pos]
	if suffix != "" && !tupleRegex.MatchString("tuple"+suffix) {
		return nil, invalidType(p.input)
	}
	dims, ok := parseDimensions(suffix)
	if !ok {
		return nil, invalidType(p.input)
	}
	t.Dimensions = dims
	return t, nil
}

func (p *inlineParser) member(depth int) (*TypeDescriptor, *ValidationError) {
	if p.pos < len(p.input) && p.input[p.pos] == '(' {
		return p.parse(depth + 1)
	}
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != ',' && p.input[p.pos] != ')' {
		p.pos++
	}
	// The tuple keyword has no components inside an inline tuple.
	token := p.input[start:p.pos]
	if IsTupleType(token) {
		return nil, invalidType(p.input)
	}
	elem, err := parseElementary(token)
	if err != nil {
		return nil, invalidType(p.input)
	}
	return elem, nil
}

func (p *inlineParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
