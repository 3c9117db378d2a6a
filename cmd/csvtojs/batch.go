package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/csvtojs"
)

var (
	batchOutDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch <pattern>",
	Short: "Convert every CSV matching a glob pattern",
	Long: `Convert every file matching a doublestar pattern such as "data/**/*.csv".
Each input gets a sibling <name>.js, or <out-dir>/<name>.js with --out-dir.
Failures are reported and the remaining files are still converted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return configError(cmd, err)
		}
		return runBatch(cmd.Context(), args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runBatch(ctx context.Context, pattern string, cfg csvtojs.Config, stdout, stderr io.Writer) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid pattern %q: %v\n", pattern, err)
		return &exitError{code: exitInput, err: err}
	}
	if len(matches) == 0 {
		err := fmt.Errorf("no files match %s", pattern)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return &exitError{code: exitInput, err: err}
	}
	sort.Strings(matches)

	if cfg.Batch.OutDir != "" {
		if err := os.MkdirAll(cfg.Batch.OutDir, 0755); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return &exitError{code: exitFailure, err: err}
		}
	}

	svc := newService(cfg)
	failed := 0
	var lastErr error
	for _, input := range matches {
		res, err := svc.Convert(ctx, input, batchOutput(input, cfg.Batch.OutDir))
		if err != nil {
			lastErr = reportFailure(stderr, input, err)
			failed++
			continue
		}
		if res.Records == 0 {
			fmt.Fprintf(stderr, "Warning: no records parsed from %s. Output will still be created as an empty array.\n", input)
		}
		fmt.Fprintf(stdout, "Wrote %s with %d records.\n", res.Output, res.Records)
	}

	if failed > 0 {
		return &exitError{code: exitInput, err: fmt.Errorf("%d of %d files failed: %w", failed, len(matches), lastErr)}
	}
	return nil
}

// batchOutput maps data/oak.csv to data/oak.js, or to <outDir>/oak.js.
func batchOutput(input, outDir string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".js"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outDir, name)
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory for the generated files (default: next to each input)")
}
