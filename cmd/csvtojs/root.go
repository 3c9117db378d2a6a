package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/csvtojs"
	"github.com/aretw0/csvtojs/pkg/adapters/jsemit"
)

const (
	exitFailure = 1
	// exitInput matches the usage-error code of most CLIs and covers unreadable input.
	exitInput = 2
)

var (
	verbose    bool
	configPath string
	outPath    string
	varName    string
	compact    bool
	encoding   string
)

// rootCmd converts one CSV file when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "csvtojs <input.csv>",
	Short: "Convert a species CSV into a JS file that assigns the rows to a global variable",
	Long: `csvtojs reads a CSV of species records (Key, Common Name, Scientific Name)
and writes a script such as

  window.__speciesRecords = [ ... ];

that a page can load with <script src="species-data.js"></script>, even from file://.
Titled columns are matched by name; files without usable titles use the first three columns.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return configError(cmd, err)
		}
		return runConvert(cmd.Context(), args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// exitError carries the process exit code of a failure whose message was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode prints err when it has not been reported yet and returns the matching code.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitInput
}

func configError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return &exitError{code: exitFailure, err: err}
}

// resolveConfig layers explicitly set flags over the config file over the defaults.
func resolveConfig(cmd *cobra.Command) (csvtojs.Config, error) {
	cfg := csvtojs.DefaultConfig()
	if configPath != "" {
		loaded, err := csvtojs.LoadConfig(configPath)
		if err != nil {
			return csvtojs.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Out = outPath
	}
	if flags.Changed("var-name") {
		cfg.VarName = varName
	}
	if flags.Changed("compact") {
		cfg.Compact = compact
	}
	if flags.Changed("encoding") {
		cfg.Encoding = encoding
	}
	if flags.Changed("out-dir") {
		cfg.Batch.OutDir = batchOutDir
	}
	if flags.Changed("debounce") {
		cfg.Watch.Debounce = watchDebounce
	}

	if err := cfg.Validate(); err != nil {
		return csvtojs.Config{}, err
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (flags override it)")
	rootCmd.PersistentFlags().StringVar(&varName, "var-name", jsemit.DefaultVarName, "Global variable assignment")
	rootCmd.PersistentFlags().BoolVar(&compact, "compact", false, "Emit compact JSON (no pretty indent)")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "utf-8", "Input encoding: utf-8, auto, windows-1251, windows-1252, iso-8859-1")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", jsemit.DefaultOutput, "Output JS filename")
}
