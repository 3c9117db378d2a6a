package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	SourceType  string     `json:"source_type"`
	SinkType    string     `json:"sink_type"`
	Conversions int        `json:"conversions"`
	LastResult  *Result    `json:"last_result,omitempty"`
	LastRun     *time.Time `json:"last_run,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ServiceState{
		SourceType:  componentType(s.source, "source"),
		SinkType:    componentType(s.sink, "sink"),
		Conversions: s.conversions,
		LastResult:  s.lastResult,
		LastRun:     s.lastRun,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

func componentType(v any, fallback string) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return fallback
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
