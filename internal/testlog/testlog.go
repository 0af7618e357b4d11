// Copyright 2019 The go-ethereum Authors
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

// Package testlog provides log handlers for unit tests.
package testlog

import (
	"sync"
	"testing"

	"github.com/ethereum/go-abicheck/log"
)

// Handler returns a log handler which logs to the unit test log of t.
func Handler(t testing.TB, level log.Lvl) log.Handler {
	return log.LvlFilterHandler(level, &handler{t, log.TerminalFormat(false)})
}

type handler struct {
	t   testing.TB
	fmt log.Format
}

func (h *handler) Log(r *log.Record) error {
	h.t.Logf("%s", h.fmt.Format(r))
	return nil
}

// Recorder keeps the records written through a captured logger so that
// tests can assert on what was logged.
type Recorder struct {
	mu      sync.Mutex
	records []*log.Record
}

func (r *Recorder) Log(rec *log.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// Records returns a copy of everything logged so far.
func (r *Recorder) Records() []*log.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*log.Record(nil), r.records...)
}

// Messages returns the messages of all recorded entries, in order.
func (r *Recorder) Messages() []string {
	records := r.Records()
	msgs := make([]string, len(records))
	for i, rec := range records {
		msgs[i] = rec.Msg
	}
	return msgs
}

// Find returns the first record with the given message, or nil.
func (r *Recorder) Find(msg string) *log.Record {
	for _, rec := range r.Records() {
		if rec.Msg == msg {
			return rec
		}
	}
	return nil
}

// Value returns the context value stored under key in rec.
func Value(rec *log.Record, key string) (interface{}, bool) {
	for i := 0; i+1 < len(rec.Ctx); i += 2 {
		if k, ok := rec.Ctx[i].(string); ok && k == key {
			return rec.Ctx[i+1], true
		}
	}
	return nil, false
}

// Capture redirects the root logger into the unit test log of t and into the
// returned recorder. The previous handler is restored when the test ends.
func Capture(t testing.TB, level log.Lvl) *Recorder {
	rec := new(Recorder)
	prev := log.Root().GetHandler()
	log.Root().SetHandler(log.LvlFilterHandler(level, log.MultiHandler(&handler{t, log.TerminalFormat(false)}, rec)))
	t.Cleanup(func() { log.Root().SetHandler(prev) })
	return rec
}
