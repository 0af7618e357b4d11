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

// abicheck validates Solidity contract ABI documents and prints them in
// normalized form.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/ethereum/go-abicheck/internal/flags"
	"github.com/ethereum/go-abicheck/internal/version"
	"github.com/ethereum/go-abicheck/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

// errValidationFailed is returned by commands that found defects in their
// input. The process exits with status 1 without printing it again.
var errValidationFailed = errors.New("validation failed")

var (
	configFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    int(log.LvlWarn),
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &flags.TextMarshalerFlag{
		Name:     "log.format",
		Usage:    "Log format to use (terminal|logfmt|json)",
		Value:    new(logFormat),
		Category: flags.LoggingCategory,
	}
	noColorFlag = &cli.BoolFlag{
		Name:     "nocolor",
		Usage:    "Disable colored output and logs",
		Category: flags.OutputCategory,
	}
)

// Flags shared by the commands that validate documents.
var (
	strictFlag = &cli.BoolFlag{
		Name:     "strict",
		Usage:    "Reject stateMutability values contradicting the deprecated constant/payable flags",
		Category: flags.ValidatorCategory,
	}
	maxDepthFlag = &cli.IntFlag{
		Name:     "maxdepth",
		Usage:    "Maximum tuple nesting depth",
		Category: flags.ValidatorCategory,
	}
	noLegacyFlag = &cli.BoolFlag{
		Name:     "nolegacy",
		Usage:    "Reject items without a type field instead of reading them as functions",
		Category: flags.ValidatorCategory,
	}
	formatFlag = &flags.TextMarshalerFlag{
		Name:     "format",
		Usage:    "Output format (json|yaml|table)",
		Value:    new(outputFormat),
		Category: flags.OutputCategory,
	}

	validatorFlags = []cli.Flag{strictFlag, maxDepthFlag, noLegacyFlag}
)

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp("Solidity contract ABI validator")
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		logFormatFlag,
		noColorFlag,
	}
	app.Commands = []*cli.Command{
		validateCommand,
		signaturesCommand,
		watchCommand,
		dumpConfigCommand,
		versionCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		return setupLogging(ctx, ctx.App.ErrWriter)
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		if errors.Is(err, errValidationFailed) {
			os.Exit(1)
		}
		fatalf("%v", err)
	}
}

// fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// logFormat selects the format of log records.
type logFormat string

func (f logFormat) MarshalText() ([]byte, error) {
	if f == "" {
		return []byte("terminal"), nil
	}
	return []byte(f), nil
}

func (f *logFormat) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "terminal", "logfmt", "json":
		*f = logFormat(s)
		return nil
	default:
		return fmt.Errorf("unknown log format %q", s)
	}
}

// isTerminal reports whether w is an interactive terminal that can render
// escape sequences.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
}

// colorWriter wraps w so that escape sequences render on Windows consoles.
func colorWriter(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok {
		return colorable.NewColorable(f)
	}
	return w
}

// setupLogging configures the root logger from the global flags.
func setupLogging(ctx *cli.Context, output io.Writer) error {
	if output == nil {
		output = os.Stderr
	}
	usecolor := !ctx.Bool(noColorFlag.Name) && isTerminal(output)
	if usecolor {
		output = colorWriter(output)
	}
	kind := logFormat("terminal")
	if ctx.IsSet(logFormatFlag.Name) {
		kind = *flags.GlobalTextMarshaler(ctx, logFormatFlag.Name).(*logFormat)
	}
	var format log.Format
	switch kind {
	case "logfmt":
		format = log.LogfmtFormat()
	case "json":
		format = log.JSONFormat()
	default:
		format = log.TerminalFormat(usecolor)
	}
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < int(log.LvlCrit) || verbosity > int(log.LvlTrace) {
		return fmt.Errorf("invalid verbosity %d, want 0-5", verbosity)
	}
	log.PrintOrigins(verbosity >= int(log.LvlDebug))
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(verbosity), log.StreamHandler(output, format)))
	return nil
}

var versionCommand = &cli.Command{
	Action:    printVersion,
	Name:      "version",
	Usage:     "Print version numbers",
	ArgsUsage: " ",
	Description: `
The output of this command is supposed to be machine-readable.
`,
}

func printVersion(ctx *cli.Context) error {
	w := ctx.App.Writer
	git, _ := version.VCS()
	build, vcs := version.Info()
	log.Debug("Resolved build information", "build", build, "vcs", vcs)

	fmt.Fprintln(w, "Abicheck")
	fmt.Fprintln(w, "Version:", version.WithMeta)
	if git.Commit != "" {
		fmt.Fprintln(w, "Git Commit:", git.Commit)
	}
	if git.Date != "" {
		fmt.Fprintln(w, "Git Commit Date:", git.Date)
	}
	fmt.Fprintln(w, "Architecture:", runtime.GOARCH)
	fmt.Fprintln(w, "Go Version:", runtime.Version())
	fmt.Fprintln(w, "Operating System:", runtime.GOOS)
	return nil
}
