package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/csvtojs"
	"github.com/aretw0/csvtojs/pkg/core"
)

const emptyWarning = "Warning: no records parsed from CSV. Output will still be created as an empty array."

func newService(cfg csvtojs.Config) *core.Service {
	return csvtojs.New(append(cfg.Options(), csvtojs.WithLogger(slog.Default()))...)
}

// runConvert converts one file and reports the outcome the way every command does.
func runConvert(ctx context.Context, input string, cfg csvtojs.Config, stdout, stderr io.Writer) error {
	res, err := newService(cfg).Convert(ctx, input, cfg.Out)
	if err != nil {
		return reportFailure(stderr, input, err)
	}
	reportSuccess(stdout, stderr, res)
	return nil
}

func reportSuccess(stdout, stderr io.Writer, res core.Result) {
	if res.Records == 0 {
		fmt.Fprintln(stderr, emptyWarning)
	}
	fmt.Fprintf(stdout, "Wrote %s with %d records.\n", res.Output, res.Records)
}

// reportFailure prints err and maps it to an exit code.
func reportFailure(stderr io.Writer, input string, err error) error {
	switch {
	case errors.Is(err, core.ErrNotFound):
		fmt.Fprintf(stderr, "Error: file not found: %s\n", input)
		return &exitError{code: exitInput, err: err}
	case errors.Is(err, core.ErrRead):
		fmt.Fprintf(stderr, "Error reading CSV: %v\n", err)
		return &exitError{code: exitInput, err: err}
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return &exitError{code: exitFailure, err: err}
	}
}
