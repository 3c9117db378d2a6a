package csvsource

import (
	"strings"

	"github.com/aretw0/csvtojs/pkg/core"
)

// Mode describes how the rows of a file are mapped onto records.
type Mode string

const (
	// ModeHeader reads the first row as column titles and maps each row by name.
	ModeHeader Mode = "header"
	// ModePositional reads columns 0, 1 and 2 as key, common and scientific.
	ModePositional Mode = "positional"
)

const (
	fieldKey            = "key"
	fieldCommonName     = "common name"
	fieldCommon         = "common"
	fieldScientificName = "scientific name"
	fieldScientific     = "scientific"
)

const utf8BOM = "\ufeff"

// normalizeHeader lower-cases and trims a column title.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))
}

// InferFields reports ModeHeader when the titles contain both "key" and
// "common name" (case-insensitive), and ModePositional otherwise.
func InferFields(headers []string) Mode {
	var hasKey, hasCommon bool
	for _, h := range headers {
		switch normalizeHeader(h) {
		case fieldKey:
			hasKey = true
		case fieldCommonName:
			hasCommon = true
		}
	}
	if hasKey && hasCommon {
		return ModeHeader
	}
	return ModePositional
}

// headerLookup resolves field names against one row, keeping the column order
// of the file so that substring matches are deterministic.
type headerLookup struct {
	names  []string
	values map[string]string
}

func newHeaderLookup(headers, values []string) headerLookup {
	l := headerLookup{
		names:  make([]string, 0, len(headers)),
		values: make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		name := normalizeHeader(h)
		if _, seen := l.values[name]; !seen {
			l.names = append(l.names, name)
		}
		var v string
		if i < len(values) {
			v = values[i]
		}
		// Duplicate titles: the rightmost value wins.
		l.values[name] = v
	}
	return l
}

// get returns the trimmed value of the column titled exactly name, or else of
// the first column whose title contains name.
func (l headerLookup) get(name string) string {
	if v, ok := l.values[name]; ok {
		return strings.TrimSpace(v)
	}
	for _, n := range l.names {
		if strings.Contains(n, name) {
			return strings.TrimSpace(l.values[n])
		}
	}
	return ""
}

// FromHeaderRow builds a record from a row read in header mode.
// Cells beyond the header width are ignored; missing cells read as empty.
func FromHeaderRow(headers, values []string) core.Record {
	l := newHeaderLookup(headers, values)
	return core.NewRecord(
		l.get(fieldKey),
		firstNonEmpty(l.get(fieldCommonName), l.get(fieldCommon)),
		firstNonEmpty(l.get(fieldScientificName), l.get(fieldScientific)),
	)
}

// FromColumns builds a record from the first three cells of a row.
func FromColumns(cols []string) core.Record {
	return core.NewRecord(column(cols, 0), column(cols, 1), column(cols, 2))
}

func column(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
