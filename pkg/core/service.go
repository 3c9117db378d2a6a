package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Service connects a RecordSource to a RecordSink.
type Service struct {
	source RecordSource
	sink   RecordSink
	logger *slog.Logger

	mu          sync.RWMutex
	conversions int
	lastResult  *Result
	lastRun     *time.Time
}

// NewService creates a new Service.
func NewService(source RecordSource, sink RecordSink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, sink: sink, logger: logger}
}

// Convert loads the records of input and writes them to output.
// The output is only touched once the input parsed successfully.
func (s *Service) Convert(ctx context.Context, input, output string) (Result, error) {
	if input == "" {
		return Result{}, errors.New("input path cannot be empty")
	}
	if output == "" {
		return Result{}, errors.New("output path cannot be empty")
	}

	records, err := s.source.Load(ctx, input)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("records loaded", "input", input, "count", len(records))

	written, err := s.sink.Write(ctx, records, output)
	if err != nil {
		return Result{Input: input, Records: len(records)}, fmt.Errorf("failed to write %s: %w", output, err)
	}

	res := Result{Input: input, Output: written, Records: len(records)}
	s.record(res)
	return res, nil
}

func (s *Service) record(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.conversions++
	s.lastResult = &res
	s.lastRun = &now
}
