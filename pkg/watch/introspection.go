package watch

import (
	"time"

	"github.com/aretw0/introspection"
)

// WatcherState exposes internal state for observability.
type WatcherState struct {
	Input       string     `json:"input"`
	Debounce    string     `json:"debounce"`
	Running     bool       `json:"running"`
	Conversions int        `json:"conversions"`
	Failures    int        `json:"failures"`
	LastError   string     `json:"last_error,omitempty"`
	LastRun     *time.Time `json:"last_run,omitempty"`
}

// State implements introspection.Introspectable.
func (w *Watcher) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return WatcherState{
		Input:       w.input,
		Debounce:    w.config.Debounce.String(),
		Running:     w.running,
		Conversions: w.conversions,
		Failures:    w.failures,
		LastError:   w.lastError,
		LastRun:     w.lastRun,
	}
}

// ComponentType implements introspection.Component.
func (w *Watcher) ComponentType() string {
	return "watcher"
}

var _ introspection.Introspectable = (*Watcher)(nil)
var _ introspection.Component = (*Watcher)(nil)
