// Package watch re-runs a conversion whenever its input file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/csvtojs/pkg/core"
)

// DefaultDebounce is the quiet period after the last event before converting.
const DefaultDebounce = 100 * time.Millisecond

// ErrLoopStopped is returned by Run when the event loop exits while the watch is still active.
var ErrLoopStopped = errors.New("watch event loop stopped unexpectedly")

// shutdownGrace bounds how long Run waits for the event loop after cancellation.
const shutdownGrace = 2 * time.Second

// ConvertFunc performs one conversion.
type ConvertFunc func(ctx context.Context) (core.Result, error)

// Config holds the watcher settings.
type Config struct {
	// Input is the file to watch. Its directory must exist.
	Input string
	// Convert runs once at start and again after every debounced change.
	Convert  ConvertFunc
	Debounce time.Duration
	// OnResult, when set, is called after every conversion.
	OnResult func(core.Result, error)
	Logger   *slog.Logger
}

// Watcher watches one input file.
type Watcher struct {
	config Config
	input  string

	mu          sync.RWMutex
	running     bool
	conversions int
	failures    int
	lastError   string
	lastRun     *time.Time
}

// New creates a Watcher for cfg.Input.
func New(cfg Config) (*Watcher, error) {
	if cfg.Input == "" {
		return nil, errors.New("watch input cannot be empty")
	}
	if cfg.Convert == nil {
		return nil, errors.New("watch convert function cannot be nil")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	abs, err := filepath.Abs(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cfg.Input, err)
	}

	return &Watcher{
		config: cfg,
		input:  abs,
	}, nil
}

// Run converts once, then converts again after each change to the input until ctx is done.
// Conversion failures are reported through OnResult and the logger; they do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(w.input)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.setRunning(true)
	defer w.setRunning(false)

	w.config.Logger.Debug("watching", "input", w.input, "debounce", w.config.Debounce)
	w.convert(ctx)

	triggers := make(chan struct{}, 1)
	loopErr := make(chan error, 1)
	loopDone := make(chan struct{})

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(loopDone)
		if err := w.eventLoop(ctx, fw, triggers); err != nil {
			loopErr <- err
			return err
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		w.config.Logger.Error("watch loop failed", "error", err)
	}))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
		_ = fw.Close()
		select {
		case <-loopDone:
		case <-time.After(shutdownGrace):
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return nil

		case <-loopDone:
			stop()
			select {
			case err := <-loopErr:
				return err
			default:
			}
			if ctx.Err() != nil {
				return nil
			}
			return ErrLoopStopped

		case <-triggers:
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				timer.Reset(w.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.convert(ctx)
		}
	}
}

// eventLoop forwards relevant filesystem events to triggers without blocking.
func (w *Watcher) eventLoop(ctx context.Context, fw *fsnotify.Watcher, triggers chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if !w.matches(event) {
				continue
			}
			w.config.Logger.Debug("input changed", "name", event.Name, "op", event.Op.String())
			select {
			case triggers <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.config.Logger.Error("fsnotify error", "error", err)
		}
	}
}

// matches reports whether event changed the content of the watched input.
func (w *Watcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	return err == nil && name == w.input
}

func (w *Watcher) convert(ctx context.Context) {
	res, err := w.config.Convert(ctx)

	w.mu.Lock()
	now := time.Now()
	w.conversions++
	w.lastRun = &now
	if err != nil {
		w.failures++
		w.lastError = err.Error()
	} else {
		w.lastError = ""
	}
	w.mu.Unlock()

	if err != nil {
		w.config.Logger.Warn("conversion failed", "input", w.input, "error", err)
	}
	if w.config.OnResult != nil {
		w.config.OnResult(res, err)
	}
}

func (w *Watcher) setRunning(running bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = running
}
