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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-abicheck/abi"
	"github.com/ethereum/go-abicheck/internal/testlog"
	"github.com/ethereum/go-abicheck/log"
	"github.com/stretchr/testify/require"
)

const watchTimeout = 5 * time.Second

func copyFixture(t *testing.T, src, dst string) {
	t.Helper()
	blob, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, blob, 0644))
}

// nextRound waits for the watcher to finish a validation round.
func nextRound(t *testing.T, rounds <-chan []*result) []*result {
	t.Helper()
	select {
	case res := <-rounds:
		return res
	case <-time.After(watchTimeout):
		t.Fatal("timeout waiting for validation round")
		return nil
	}
}

// waitRound skips rounds until one satisfies cond.
func waitRound(t *testing.T, rounds <-chan []*result, cond func(*result) bool) *result {
	t.Helper()
	for {
		if res := nextRound(t, rounds); cond(res[0]) {
			return res[0]
		}
	}
}

// settle drains rounds until the watcher has been idle for a while.
func settle(rounds <-chan []*result) {
	for {
		select {
		case <-rounds:
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}

func TestWatchRevalidates(t *testing.T) {
	rec := testlog.Capture(t, log.LvlTrace)

	var (
		dir    = t.TempDir()
		file   = filepath.Join(dir, "token.json")
		out    strings.Builder
		rounds = make(chan []*result, 16)
	)
	copyFixture(t, "testdata/erc20.json", file)

	p := newPrinter(&out, &out, defaultConfig.Output)
	w, err := newFileWatcher([]string{file}, abi.NewValidator(abi.DefaultConfig), p, 10*time.Millisecond)
	require.NoError(t, err)
	w.checked = func(res []*result) { rounds <- res }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	res := nextRound(t, rounds)
	require.Len(t, res, 1)
	require.True(t, res[0].ok(), "initial round failed: %v", res[0].errors)

	// Break the file, wait until the watcher notices.
	copyFixture(t, "testdata/broken.json", file)
	broken := waitRound(t, rounds, func(r *result) bool { return len(r.errors) > 0 })
	require.Len(t, broken.errors, 2)
	settle(rounds)

	// Unrelated files in the same directory are ignored.
	copyFixture(t, "testdata/erc20.json", filepath.Join(dir, "other.json"))
	select {
	case <-rounds:
		t.Fatal("unrelated file triggered a round")
	case <-time.After(100 * time.Millisecond):
	}

	// Fix it again by replacing the file through a rename.
	tmp := filepath.Join(dir, "token.json.tmp")
	copyFixture(t, "testdata/erc20.json", tmp)
	require.NoError(t, os.Rename(tmp, file))
	fixed := waitRound(t, rounds, func(r *result) bool { return r.ok() })
	require.Len(t, fixed.items, 5)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(watchTimeout):
		t.Fatal("watcher did not stop")
	}
	require.Contains(t, out.String(), "FAIL "+file+": 2 errors, 1 item valid")
	require.Contains(t, out.String(), "OK   "+file+": 5 items")
	require.NotNil(t, rec.Find("File changed"))
}

func TestWatchArgs(t *testing.T) {
	_, err := newFileWatcher([]string{"-"}, abi.NewValidator(abi.DefaultConfig), nil, time.Second)
	require.Error(t, err)

	w, err := newFileWatcher([]string{"testdata/erc20.json", "testdata/broken.json"}, abi.NewValidator(abi.DefaultConfig), nil, time.Second)
	require.NoError(t, err)
	require.Len(t, w.files, 2)
	require.Len(t, w.dirs, 1)

	run := runAbicheck(t, "", "watch")
	require.Error(t, run.err)
	run = runAbicheck(t, "", "watch", "-")
	require.ErrorContains(t, run.err, "standard input")
}
