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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-abicheck/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidateGolden(t *testing.T) {
	run := runAbicheck(t, "", "validate", "testdata/erc20.json")
	run.expectSuccess(t)
	expectGolden(t, "testdata/erc20.golden.json", run.stdout)
	assert.Equal(t, "OK   testdata/erc20.json: 5 items\n", run.stderr)
}

func TestValidateStdin(t *testing.T) {
	input, err := os.ReadFile("testdata/erc20.json")
	require.NoError(t, err)

	run := runAbicheck(t, string(input), "validate", "-")
	run.expectSuccess(t)
	expectGolden(t, "testdata/erc20.golden.json", run.stdout)
	assert.Equal(t, "OK   -: 5 items\n", run.stderr)
}

func TestValidateErrorReport(t *testing.T) {
	run := runAbicheck(t, "", "validate", "testdata/broken.json")
	run.expectFailure(t)
	assert.Empty(t, run.stdout, "normalized output printed for failed document")

	verdict := "FAIL testdata/broken.json: 2 errors, 1 item valid\n"
	require.True(t, strings.HasPrefix(run.stderr, verdict), "stderr: %s", run.stderr)
	expectGolden(t, "testdata/broken.golden.json", strings.TrimPrefix(run.stderr, verdict))
}

func TestValidateErrorTable(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--format", "table", "testdata/broken.json")
	run.expectFailure(t)

	lines := strings.Split(strings.TrimSpace(run.stderr), "\n")
	require.Len(t, lines, 4, "stderr: %s", run.stderr)
	assert.Equal(t, []string{"FILE", "PATH", "KIND", "MESSAGE", "VALUE"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[2], "[1].inputs[0].type")
	assert.Contains(t, lines[2], "InvalidTypeString")
	assert.Contains(t, lines[2], `"uint7"`)
	assert.Contains(t, lines[3], "[2].name")
	assert.Contains(t, lines[3], "MissingRequiredField")
}

func TestValidatePartial(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--partial", "testdata/broken.json")
	run.expectFailure(t)

	items, err := abi.ParseABI([]byte(run.stdout))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ok()", items[0].Signature())
	assert.Equal(t, abi.View, items[0].StateMutability)
}

func TestValidateQuiet(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--quiet", "testdata/erc20.json")
	run.expectSuccess(t)
	assert.Empty(t, run.stdout)

	run = runAbicheck(t, "", "validate", "--quiet", "--out", filepath.Join(t.TempDir(), "x.json"), "testdata/erc20.json")
	require.Error(t, run.err)
	assert.Contains(t, run.err.Error(), "--quiet")
}

func TestValidateOutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "erc20.json")
	run := runAbicheck(t, "", "validate", "--out", out, "testdata/erc20.json")
	run.expectSuccess(t)
	assert.Empty(t, run.stdout)

	blob, err := os.ReadFile(out)
	require.NoError(t, err)
	expectGolden(t, "testdata/erc20.golden.json", string(blob))
}

func TestValidateArtifact(t *testing.T) {
	run := runAbicheck(t, "", "validate", "testdata/artifact.json")
	run.expectSuccess(t)

	items, err := abi.ParseABI([]byte(run.stdout))
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, abi.Constructor, items[0].Kind)
	assert.Equal(t, "OwnableUnauthorizedAccount(address)", items[4].Signature())
}

func TestValidateSingleItem(t *testing.T) {
	run := runAbicheck(t, "", "validate", "testdata/receive.json")
	run.expectSuccess(t)
	assert.JSONEq(t, `{"type":"receive","stateMutability":"payable"}`, run.stdout)
	assert.Equal(t, "OK   testdata/receive.json: 1 item\n", run.stderr)
}

func TestValidateMultipleFiles(t *testing.T) {
	run := runAbicheck(t, "", "validate", "testdata/erc20.json", "testdata/receive.json")
	run.expectSuccess(t)

	var out []struct {
		File string          `json:"file"`
		ABI  json.RawMessage `json:"abi"`
	}
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "testdata/erc20.json", out[0].File)
	assert.Equal(t, "testdata/receive.json", out[1].File)

	items, err := abi.ParseABI(out[1].ABI)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, abi.Receive, items[0].Kind)
}

func TestValidateMissingFile(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--partial", "testdata/erc20.json", "testdata/missing.json")
	run.expectFailure(t)
	assert.Contains(t, run.stderr, "FAIL testdata/missing.json: ")
	assert.Contains(t, run.stderr, `"file": "testdata/missing.json"`)
	assert.Contains(t, run.stderr, "Failed to load document")

	// The loadable document is still printed.
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "testdata/erc20.json", out[0]["file"])
}

func TestValidateNotAnABI(t *testing.T) {
	run := runAbicheck(t, "", "validate", "-")
	run.expectFailure(t)
	assert.Contains(t, run.stderr, "FAIL -: ")

	run = runAbicheck(t, `{"abi": 5}`, "validate", "-")
	run.expectFailure(t)
	assert.Contains(t, run.stderr, "FAIL -: ")
}

func TestValidateStrict(t *testing.T) {
	run := runAbicheck(t, "", "validate", "testdata/conflict.json")
	run.expectSuccess(t)
	items, err := abi.ParseABI([]byte(run.stdout))
	require.NoError(t, err)
	assert.Equal(t, abi.Payable, items[0].StateMutability)

	run = runAbicheck(t, "", "validate", "--strict", "testdata/conflict.json")
	run.expectFailure(t)
	assert.Contains(t, run.stderr, "ConflictingStateMutability")
}

func TestValidateNoLegacy(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--nolegacy", "testdata/erc20.json")
	run.expectFailure(t)
	assert.Contains(t, run.stderr, "UnknownItemKind")
	assert.Contains(t, run.stderr, "FAIL testdata/erc20.json: 1 error, 4 items valid")
}

func TestValidateMaxDepth(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--maxdepth", "1", "testdata/artifact.json")
	run.expectSuccess(t)

	run = runAbicheck(t, "", "validate", "--maxdepth", "0", "testdata/artifact.json")
	require.Error(t, run.err)
	assert.Contains(t, run.err.Error(), "MaxDepth")
}

func TestValidateTable(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--format", "table", "testdata/erc20.json")
	run.expectSuccess(t)

	lines := strings.Split(strings.TrimSpace(run.stdout), "\n")
	require.Len(t, lines, 6, "stdout: %s", run.stdout)
	assert.Equal(t, []string{"FILE", "INDEX", "KIND", "SIGNATURE", "MUTABILITY"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"testdata/erc20.json", "1", "function", "transfer(address,uint256)", "nonpayable"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"testdata/erc20.json", "3", "event", "Transfer(address,address,uint256)", "-"}, strings.Fields(lines[4]))
}

func TestValidateYAML(t *testing.T) {
	run := runAbicheck(t, "", "validate", "--format", "yaml", "testdata/erc20.json")
	run.expectSuccess(t)

	var items []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(run.stdout), &items))
	require.Len(t, items, 5)
	assert.Equal(t, "function", items[0]["type"])
	assert.Equal(t, "view", items[0]["stateMutability"])
	assert.Equal(t, "fallback", items[4]["type"])
}

func TestValidateNoArgs(t *testing.T) {
	run := runAbicheck(t, "", "validate")
	require.Error(t, run.err)
	assert.NotErrorIs(t, run.err, errValidationFailed)
}
