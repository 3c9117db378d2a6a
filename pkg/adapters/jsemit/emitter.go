// Package jsemit writes records as a JavaScript assignment statement that a
// page can load with a plain <script src> tag, including from file:// URLs.
package jsemit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/csvtojs/pkg/core"
)

const (
	// DefaultVarName is the assignment target used when none is configured.
	DefaultVarName = "window.__speciesRecords"
	// DefaultOutput is the output file name used when none is configured.
	DefaultOutput = "species-data.js"
	// DefaultPerm is the mode of newly created output files.
	DefaultPerm os.FileMode = 0644
)

// Config holds the emitter settings.
type Config struct {
	VarName string
	Compact bool
	Perm    os.FileMode
	Logger  *slog.Logger
}

// Emitter renders records to JavaScript files. It implements core.RecordSink.
type Emitter struct {
	config Config

	mu        sync.RWMutex
	writes    int
	lastPath  string
	lastBytes int
}

// NewEmitter creates an Emitter, filling unset config fields with defaults.
func NewEmitter(cfg Config) *Emitter {
	if cfg.VarName == "" {
		cfg.VarName = DefaultVarName
	}
	if cfg.Perm == 0 {
		cfg.Perm = DefaultPerm
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Emitter{config: cfg}
}

// Render returns the statement "<varName> = <json>;\n", or "<varName>=<json>;\n"
// when compact. The JSON keeps non-ASCII and HTML characters literal.
// Pretty output is indented by two spaces.
func Render(records []core.Record, varName string, compact bool) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}

	assign := " = "
	if compact {
		assign = "="
	}

	var buf bytes.Buffer
	buf.Grow(len(varName) + len(assign) + body.Len() + 2)
	buf.WriteString(varName)
	buf.WriteString(assign)
	buf.Write(bytes.TrimSuffix(body.Bytes(), []byte("\n")))
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// Write renders records and replaces the file at path with the result.
func (e *Emitter) Write(ctx context.Context, records []core.Record, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := Render(records, e.config.VarName, e.config.Compact)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data, e.config.Perm); err != nil {
		return "", err
	}

	e.mu.Lock()
	e.writes++
	e.lastPath = path
	e.lastBytes = len(data)
	e.mu.Unlock()

	e.config.Logger.Debug("js written", "path", path, "bytes", len(data), "compact", e.config.Compact)
	return path, nil
}
