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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Tests that the YAML rendering carries the same document as the JSON one.
func TestMarshalYAML(t *testing.T) {
	for _, name := range []string{"weth.json", "ens_registry.json", "nested_tuple_array.json"} {
		blob, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		abi, err := ParseABI(blob)
		require.NoError(t, err)

		enc, err := json.Marshal(abi)
		require.NoError(t, err)
		var fromJSON interface{}
		require.NoError(t, json.Unmarshal(enc, &fromJSON))

		out, err := yaml.Marshal(abi)
		require.NoError(t, err)
		var fromYAML interface{}
		require.NoError(t, yaml.Unmarshal(out, &fromYAML))

		require.Equal(t, fromJSON, fromYAML, name)
	}
}

func TestMarshalYAMLFieldOrder(t *testing.T) {
	item := mustParseItem(t, `{"outputs":[],"stateMutability":"view","inputs":[{"type":"bool","name":"ok"}],"name":"f","type":"function"}`)
	out, err := yaml.Marshal(item)
	require.NoError(t, err)

	var keys []string
	for _, line := range strings.Split(string(out), "\n") {
		if line != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "-") {
			keys = append(keys, strings.SplitN(line, ":", 2)[0])
		}
	}
	require.Equal(t, []string{"type", "name", "inputs", "outputs", "stateMutability"}, keys)
}

func TestMarshalNilLists(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Item{Kind: Function, Name: "f", StateMutability: NonPayable}, `{"type":"function","name":"f","inputs":[],"outputs":[],"stateMutability":"nonpayable"}`},
		{Item{Kind: Event, Name: "E"}, `{"type":"event","name":"E","inputs":[]}`},
		{Item{Kind: Fallback, StateMutability: Payable}, `{"type":"fallback","stateMutability":"payable"}`},
		{Item{Kind: Receive}, `{"type":"receive","stateMutability":"payable"}`},
	}
	for _, tt := range tests {
		if have := marshalJSON(t, tt.item); have != tt.want {
			t.Errorf("encoding mismatch:\nhave %s\nwant %s", have, tt.want)
		}
	}
	var abi ABI
	if have := marshalJSON(t, abi); have != "[]" {
		t.Errorf("nil ABI encoded as %s", have)
	}
}

func TestDecodePreservesNumbers(t *testing.T) {
	raw, err := Decode(strings.NewReader(`{"gas":18446744073709551615}`))
	require.NoError(t, err)
	require.Equal(t, json.Number("18446744073709551615"), raw.(map[string]interface{})["gas"])

	item := mustParseItem(t, `{"type":"function","name":"f","inputs":[],"outputs":[],"gas":18446744073709551615}`)
	require.NotNil(t, item.Gas)
	require.Equal(t, uint64(18446744073709551615), *item.Gas)
}
