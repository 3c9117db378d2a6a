package jsemit

import "github.com/aretw0/introspection"

// EmitterState exposes internal state for observability.
type EmitterState struct {
	VarName   string `json:"var_name"`
	Compact   bool   `json:"compact"`
	Writes    int    `json:"writes"`
	LastPath  string `json:"last_path,omitempty"`
	LastBytes int    `json:"last_bytes,omitempty"`
}

// State implements introspection.Introspectable.
func (e *Emitter) State() any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return EmitterState{
		VarName:   e.config.VarName,
		Compact:   e.config.Compact,
		Writes:    e.writes,
		LastPath:  e.lastPath,
		LastBytes: e.lastBytes,
	}
}

// ComponentType implements introspection.Component.
func (e *Emitter) ComponentType() string {
	return "js-emitter"
}

var _ introspection.Introspectable = (*Emitter)(nil)
var _ introspection.Component = (*Emitter)(nil)
