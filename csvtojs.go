package csvtojs

import (
	"context"
	"log/slog"

	"github.com/aretw0/csvtojs/pkg/adapters/csvsource"
	"github.com/aretw0/csvtojs/pkg/adapters/jsemit"
	"github.com/aretw0/csvtojs/pkg/core"
)

// --- Types ---

// Record is a public alias for the domain record.
type Record = core.Record

// Result is a public alias for the conversion summary.
type Result = core.Result

// --- Factory ---

// New creates a conversion service backed by the CSV reader and the JS emitter.
func New(opts ...Option) *core.Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	reader := csvsource.NewReader(csvsource.Config{
		SampleSize: o.sampleSize,
		Encoding:   o.encoding,
		Logger:     logger,
	})
	emitter := jsemit.NewEmitter(jsemit.Config{
		VarName: o.varName,
		Compact: o.compact,
		Logger:  logger,
	})
	return core.NewService(reader, emitter, logger)
}

// Convert reads input and writes the JS assignment to output in one call.
func Convert(ctx context.Context, input, output string, opts ...Option) (Result, error) {
	return New(opts...).Convert(ctx, input, output)
}
