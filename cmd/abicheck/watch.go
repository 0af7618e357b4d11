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
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ethereum/go-abicheck/abi"
	"github.com/ethereum/go-abicheck/internal/flags"
	"github.com/ethereum/go-abicheck/log"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
)

var delayFlag = &cli.DurationFlag{
	Name:     "delay",
	Usage:    "Quiet period after a change before the files are checked again",
	Value:    100 * time.Millisecond,
	Category: flags.MiscCategory,
}

var watchCommand = &cli.Command{
	Action:    watchFiles,
	Name:      "watch",
	Usage:     "Re-validate ABI documents whenever they change",
	ArgsUsage: "<file> [<file>...]",
	Flags:     flags.Merge(validatorFlags, []cli.Flag{formatFlag, delayFlag}),
	Description: `
The watch command validates the given files once and then again every time
one of them is written, created or replaced. Editors that save by renaming a
temporary file over the original are handled by watching the parent
directories. Interrupt to stop.`,
}

// fileWatcher re-validates a fixed set of files on change.
type fileWatcher struct {
	names []string            // as given on the command line
	files map[string]struct{} // cleaned absolute paths of names
	dirs  []string            // directories to subscribe to

	validator *abi.Validator
	printer   *printer
	delay     time.Duration

	checked func([]*result) // called after every round, may be nil
}

func newFileWatcher(names []string, v *abi.Validator, p *printer, delay time.Duration) (*fileWatcher, error) {
	w := &fileWatcher{
		names:     names,
		files:     make(map[string]struct{}),
		validator: v,
		printer:   p,
		delay:     delay,
	}
	seen := make(map[string]bool)
	for _, name := range names {
		if name == "-" {
			return nil, errors.New("cannot watch standard input")
		}
		path, err := filepath.Abs(name)
		if err != nil {
			return nil, err
		}
		w.files[path] = struct{}{}
		if dir := filepath.Dir(path); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// check validates all files once and prints the outcome.
func (w *fileWatcher) check() {
	results := validateDocuments(w.names, w.validator, nil)
	failed := false
	for _, res := range results {
		w.printer.verdict(res)
		failed = failed || !res.ok()
	}
	if failed {
		if err := w.printer.errors(results); err != nil {
			log.Warn("Failed to print report", "err", err)
		}
	}
	if w.checked != nil {
		w.checked(results)
	}
}

// relevant reports whether the event touches one of the watched files.
func (w *fileWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	path, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[path]
	return ok
}

// run checks the files and keeps checking them on change until ctx is
// cancelled.
func (w *fileWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		log.Debug("Watching directory", "dir", dir)
	}
	w.check()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New("fs watcher closed")
			}
			if w.relevant(ev) {
				log.Trace("File changed", "file", ev.Name, "op", ev.Op)
				pending = time.After(w.delay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("fs watcher closed")
			}
			log.Warn("Fs watcher error", "err", err)

		case <-pending:
			pending = nil
			w.check()
		}
	}
}

func watchFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no input files given")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	p := newPrinter(ctx.App.Writer, ctx.App.ErrWriter, cfg.Output)
	w, err := newFileWatcher(ctx.Args().Slice(), abi.NewValidator(cfg.Validator), p, ctx.Duration(delayFlag.Name))
	if err != nil {
		return err
	}
	sigctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Watching ABI documents", "files", len(w.names), "delay", w.delay)
	return w.run(sigctx)
}
