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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSON reads an ABI document from reader, validating and normalizing it.
func JSON(reader io.Reader) (ABI, error) {
	raw, err := decode(reader)
	if err != nil {
		return nil, err
	}
	return ValidateABI(raw)
}

// ParseABI validates and normalizes an ABI JSON array.
func ParseABI(data []byte) (ABI, error) {
	return JSON(bytes.NewReader(data))
}

// ParseItem validates and normalizes a single ABI item given as JSON.
func ParseItem(data []byte) (Item, error) {
	raw, err := decode(bytes.NewReader(data))
	if err != nil {
		return Item{}, err
	}
	return ValidateItem(raw)
}

// Decode reads a single JSON value the way the validator expects it:
// objects as map[string]interface{}, arrays as []interface{} and numbers
// as json.Number so that no precision is lost.
func Decode(reader io.Reader) (interface{}, error) {
	return decode(reader)
}

func decode(reader io.Reader) (interface{}, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("abi: invalid JSON: %w", err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, errors.New("abi: invalid JSON: trailing data after document")
	}
	return raw, nil
}

// UnmarshalJSON implements json.Unmarshaler, validating the document.
func (abi *ABI) UnmarshalJSON(data []byte) error {
	parsed, err := ParseABI(data)
	if err != nil {
		return err
	}
	*abi = parsed
	return nil
}

// UnmarshalJSON implements json.Unmarshaler, validating the item.
func (item *Item) UnmarshalJSON(data []byte) error {
	parsed, err := ParseItem(data)
	if err != nil {
		return err
	}
	*item = parsed
	return nil
}

// jsonParameter is the wire layout of a normalized parameter.
type jsonParameter struct {
	Name         *string      `json:"name,omitempty" yaml:"name,omitempty"`
	Type         string       `json:"type" yaml:"type"`
	InternalType *string      `json:"internalType,omitempty" yaml:"internalType,omitempty"`
	Components   *[]Parameter `json:"components,omitempty" yaml:"components,omitempty"`
	Indexed      *bool        `json:"indexed,omitempty" yaml:"indexed,omitempty"`
}

func (p Parameter) wire() jsonParameter {
	enc := jsonParameter{
		Name:         p.Name,
		Type:         p.Type,
		InternalType: p.InternalType,
		Indexed:      p.Indexed,
	}
	if p.Components != nil {
		enc.Components = &p.Components
	}
	return enc
}

// MarshalJSON implements json.Marshaler.
func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (p Parameter) MarshalYAML() (interface{}, error) {
	return p.wire(), nil
}

// jsonItem is the wire layout of a normalized item. Which fields are set
// depends on the kind, see Item.
type jsonItem struct {
	Type            string          `json:"type" yaml:"type"`
	Name            *string         `json:"name,omitempty" yaml:"name,omitempty"`
	Inputs          *[]Parameter    `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs         *[]Parameter    `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	StateMutability StateMutability `json:"stateMutability,omitempty" yaml:"stateMutability,omitempty"`
	Constant        *bool           `json:"constant,omitempty" yaml:"constant,omitempty"`
	Payable         *bool           `json:"payable,omitempty" yaml:"payable,omitempty"`
	Anonymous       *bool           `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Gas             *uint64         `json:"gas,omitempty" yaml:"gas,omitempty"`
}

func (item Item) wire() jsonItem {
	enc := jsonItem{Type: item.Kind.String()}
	switch item.Kind {
	case Function:
		enc.Name = &item.Name
		enc.Inputs = nonNil(item.Inputs)
		enc.Outputs = nonNil(item.Outputs)
		enc.StateMutability = item.StateMutability
		enc.Constant = item.Constant
		enc.Payable = item.Payable
		enc.Gas = item.Gas
	case Constructor:
		enc.Inputs = nonNil(item.Inputs)
		enc.StateMutability = item.StateMutability
		enc.Payable = item.Payable
	case Fallback:
		if item.Inputs != nil {
			enc.Inputs = &item.Inputs
		}
		enc.StateMutability = item.StateMutability
		enc.Payable = item.Payable
	case Receive:
		enc.StateMutability = Payable
	case Event:
		enc.Name = &item.Name
		enc.Inputs = nonNil(item.Inputs)
		enc.Anonymous = item.Anonymous
	case CustomError:
		enc.Name = &item.Name
		enc.Inputs = nonNil(item.Inputs)
	}
	return enc
}

func nonNil(params []Parameter) *[]Parameter {
	if params == nil {
		params = []Parameter{}
	}
	return &params
}

// MarshalJSON implements json.Marshaler.
func (item Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(item.wire())
}

// MarshalYAML implements yaml.Marshaler.
func (item Item) MarshalYAML() (interface{}, error) {
	return item.wire(), nil
}

// MarshalJSON implements json.Marshaler. A nil ABI encodes as [].
func (abi ABI) MarshalJSON() ([]byte, error) {
	if abi == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Item(abi))
}
