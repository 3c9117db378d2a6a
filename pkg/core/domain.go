// Record is the central entity of the domain.
package core

import "strings"

// Record is one normalized species row.
// Values are trimmed at construction and never mutated afterwards.
type Record struct {
	Key        string `json:"key"`
	Common     string `json:"common"`
	Scientific string `json:"scientific"`
}

// NewRecord builds a Record from raw cell values, trimming surrounding whitespace.
func NewRecord(key, common, scientific string) Record {
	return Record{
		Key:        strings.TrimSpace(key),
		Common:     strings.TrimSpace(common),
		Scientific: strings.TrimSpace(scientific),
	}
}

// Empty reports whether the record carries neither a key nor a common name.
// Empty records are dropped by every parse mode.
func (r Record) Empty() bool {
	return r.Key == "" && r.Common == ""
}

// Result summarizes a single conversion.
type Result struct {
	Input   string
	Output  string
	Records int
}
