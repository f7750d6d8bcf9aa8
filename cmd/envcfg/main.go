// envcfg resolves a schema file against the process environment and prints
// the resulting configuration. It is useful for checking a deployment's
// environment before starting a service, and for exporting defaults into a
// shell:
//
//	eval "$(envcfg --format export schema.yaml)"
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/containeroo/envcfg"
	"github.com/containeroo/envcfg/schemafile"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var format string
	var strictBool, verbose bool

	flagSet := pflag.NewFlagSet("envcfg", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&format, "format", "f", formatEnv, "output format: env, export, json or yaml")
	flagSet.BoolVar(&strictBool, "strict-bool", false, "reject boolean values other than t/true/1/on and f/false/0/off")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log resolution details to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("expected exactly one schema file, got %d arguments", flagSet.NArg())
	}
	write, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown format %q", format)
	}

	logger := newLogger(stderr, verbose)
	defer logger.Sync() // nolint:errcheck

	path := flagSet.Arg(0)
	spec, err := schemafile.Load(path)
	if err != nil {
		return err
	}

	opts := []envcfg.Option{envcfg.WithLogger(zapr.NewLogger(logger))}
	if strictBool {
		opts = append(opts, envcfg.WithStrictBool())
	}
	snap, err := envcfg.Load(spec, opts...)
	if err != nil {
		return err
	}
	logger.Debug("resolved schema", zap.String("schema", path), zap.Int("variables", snap.Len()))

	return write(stdout, snap)
}

// newLogger writes human-readable logs to w. Debug output, which carries the
// resolution details, is only enabled with verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `envcfg resolves a configuration schema against the environment.

Each variable is read from its environment key, falls back to its default,
or is composed from its template. Missing variables and values that do not
convert to the declared type are reported and the command exits with 1.

Usage:
  envcfg [flags] SCHEMA

SCHEMA is a .yaml, .yml, .toml, .json, .jsonc or .ini file.

Examples:
  # Check that the environment satisfies a schema
  envcfg config/schema.yaml

  # Export defaults and composed values into the current shell
  eval "$(envcfg --format export config/schema.yaml)"

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
