package csvtojs

import (
	"log/slog"

	"github.com/aretw0/csvtojs/pkg/adapters/csvsource"
	"github.com/aretw0/csvtojs/pkg/adapters/jsemit"
)

// options holds the internal configuration for the conversion service.
type options struct {
	logger     *slog.Logger
	varName    string
	compact    bool
	encoding   string
	sampleSize int
}

// Option defines a functional option for configuring csvtojs.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:     nil, // slog.Default() at construction time
		varName:    jsemit.DefaultVarName,
		compact:    false,
		encoding:   csvsource.EncodingUTF8,
		sampleSize: csvsource.DefaultSampleSize,
	}
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithVarName sets the left-hand side of the emitted assignment.
func WithVarName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.varName = name
		}
	}
}

// WithCompact emits JSON without insignificant whitespace.
func WithCompact(compact bool) Option {
	return func(o *options) {
		o.compact = compact
	}
}

// WithEncoding sets the input encoding ("utf-8", "auto", "windows-1251", ...).
func WithEncoding(encoding string) Option {
	return func(o *options) {
		if encoding != "" {
			o.encoding = encoding
		}
	}
}

// WithSampleSize sets how many leading bytes the header sniffer inspects.
func WithSampleSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.sampleSize = size
		}
	}
}
