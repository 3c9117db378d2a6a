package csvsource

import "github.com/aretw0/introspection"

// ReaderState exposes internal state for observability.
type ReaderState struct {
	SampleSize   int    `json:"sample_size"`
	Encoding     string `json:"encoding"`
	Loads        int    `json:"loads"`
	LastPath     string `json:"last_path,omitempty"`
	LastMode     Mode   `json:"last_mode,omitempty"`
	LastEncoding string `json:"last_encoding,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Reader) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return ReaderState{
		SampleSize:   r.config.SampleSize,
		Encoding:     r.config.Encoding,
		Loads:        r.loads,
		LastPath:     r.lastPath,
		LastMode:     r.lastMode,
		LastEncoding: r.lastEnc,
	}
}

// ComponentType implements introspection.Component.
func (r *Reader) ComponentType() string {
	return "csv-reader"
}

var _ introspection.Introspectable = (*Reader)(nil)
var _ introspection.Component = (*Reader)(nil)
