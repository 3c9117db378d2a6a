package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/csvtojs"
	"github.com/aretw0/csvtojs/pkg/adapters/jsemit"
	"github.com/aretw0/csvtojs/pkg/core"
	"github.com/aretw0/csvtojs/pkg/watch"
)

var (
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <input.csv>",
	Short: "Convert a CSV and convert it again whenever it changes",
	Long: `Convert the input once, then watch it and regenerate the output after every save.
Conversion errors are printed and watching continues. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return configError(cmd, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runWatch(ctx, args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return &exitError{code: exitFailure, err: err}
		}
		return nil
	},
}

func runWatch(ctx context.Context, input string, cfg csvtojs.Config, stdout, stderr io.Writer) error {
	svc := newService(cfg)
	w, err := watch.New(watch.Config{
		Input:    input,
		Debounce: cfg.Watch.Debounce,
		Logger:   slog.Default(),
		Convert: func(ctx context.Context) (core.Result, error) {
			return svc.Convert(ctx, input, cfg.Out)
		},
		OnResult: func(res core.Result, err error) {
			if err != nil {
				_ = reportFailure(stderr, input, err)
				return
			}
			reportSuccess(stdout, stderr, res)
		},
	})
	if err != nil {
		return err
	}

	slog.Info("watching for changes", "input", input, "out", cfg.Out)
	if err := w.Run(ctx); err != nil {
		return err
	}
	slog.Debug("watch stopped", "state", w.State())
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&outPath, "out", "o", jsemit.DefaultOutput, "Output JS filename")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period after a change before converting")
}
