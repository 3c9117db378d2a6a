package csvsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/csvtojs/pkg/core"
)

// Config holds the reader settings.
type Config struct {
	// SampleSize is the number of leading bytes handed to the header sniffer.
	SampleSize int
	// Encoding is the input encoding, EncodingUTF8 when empty.
	Encoding string
	Logger   *slog.Logger
}

// Reader loads species records from CSV files. It implements core.RecordSource.
type Reader struct {
	config Config

	mu       sync.RWMutex
	loads    int
	lastPath string
	lastMode Mode
	lastEnc  string
}

// NewReader creates a Reader, filling unset config fields with defaults.
func NewReader(cfg Config) *Reader {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultSampleSize
	}
	if cfg.Encoding == "" {
		cfg.Encoding = EncodingUTF8
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Reader{config: cfg}
}

// Load reads the whole file at path and returns its records in file order.
func (r *Reader) Load(ctx context.Context, path string) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrNotFound, path)
		}
		return nil, &core.ReadError{Path: path, Err: err}
	}

	text, enc, err := decode(data, r.config.Encoding)
	if err != nil {
		return nil, &core.ReadError{Path: path, Err: err}
	}

	records, mode, err := r.Parse(text)
	if err != nil {
		return nil, &core.ReadError{Path: path, Err: err}
	}

	r.mu.Lock()
	r.loads++
	r.lastPath = path
	r.lastMode = mode
	r.lastEnc = enc
	r.mu.Unlock()

	r.config.Logger.Debug("csv parsed", "path", path, "mode", mode, "encoding", enc, "records", len(records))
	return records, nil
}

// Parse maps UTF-8 CSV content onto records and reports the mode that produced them.
//
// When the sniffer sees a header the rows are read by column title. If that
// yields nothing, the content is read again positionally, which recovers from
// a first data row mistaken for titles.
func (r *Reader) Parse(data []byte) ([]core.Record, Mode, error) {
	sample, truncated := data, false
	if len(sample) > r.config.SampleSize {
		sample, truncated = sample[:r.config.SampleSize], true
	}

	hasHeader, err := HasHeader(sample, truncated)
	if err != nil {
		r.config.Logger.Debug("header sniffing failed, assuming a header row", "error", err)
		hasHeader = true
	}

	if hasHeader {
		records, err := parseHeaderRows(data)
		if err != nil {
			return nil, ModeHeader, err
		}
		if len(records) > 0 {
			return records, ModeHeader, nil
		}
		r.config.Logger.Debug("header mode produced no records, re-reading positionally")
	}

	records, err := parsePositionalRows(data)
	if err != nil {
		return nil, ModePositional, err
	}
	return records, ModePositional, nil
}

func newCSVReader(data []byte) *csv.Reader {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func parseHeaderRows(data []byte) ([]core.Record, error) {
	records := make([]core.Record, 0)

	cr := newCSVReader(data)
	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		rec := FromHeaderRow(headers, row)
		if rec.Empty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parsePositionalRows(data []byte) ([]core.Record, error) {
	records := make([]core.Record, 0)

	cr := newCSVReader(data)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		blank := true
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		rec := FromColumns(row)
		if rec.Empty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
