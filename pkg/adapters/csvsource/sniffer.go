package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSampleSize is how many leading bytes of a file the header sniffer sees.
	DefaultSampleSize = 8192

	sniffRowLimit = 20
	// minConsistency is the share of sample lines that must agree on a
	// delimiter count for the delimiter to be accepted.
	minConsistency = 0.9
)

// ErrNoDelimiter is returned by HasHeader when the sample has no consistent delimiter.
var ErrNoDelimiter = errors.New("could not determine delimiter")

var delimiterCandidates = []rune{',', '\t', ';', '|', ':'}

type cellKind int

const (
	kindLength cellKind = iota
	kindInt
	kindFloat
)

type cellClass struct {
	kind   cellKind
	length int
}

type columnState struct {
	set     bool
	dropped bool
	class   cellClass
}

// HasHeader guesses whether the first row of sample holds column titles.
//
// A first row carrying the recognized titles is always a header. Otherwise each
// column of up to twenty data rows is classified as integer, float or text of a
// fixed length; columns whose class varies are ignored. The header cell of every
// remaining column votes for a header when it does not fit that class.
//
// When truncated is true the last, possibly partial, line of the sample is dropped.
// An error means the sample could not be analysed; callers treat that as "has header".
func HasHeader(sample []byte, truncated bool) (bool, error) {
	text := string(sample)
	if truncated {
		if i := strings.LastIndexAny(text, "\r\n"); i >= 0 {
			text = text[:i]
		}
	}

	delim, err := guessDelimiter(text)
	if err != nil {
		return false, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return false, fmt.Errorf("failed to read sample header: %w", err)
	}
	if InferFields(header) == ModeHeader {
		return true, nil
	}

	columns := make([]columnState, len(header))
	for checked := 0; checked < sniffRowLimit; checked++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false, fmt.Errorf("failed to read sample row: %w", err)
		}
		if len(row) != len(header) {
			continue
		}
		for i, cell := range row {
			st := &columns[i]
			if st.dropped {
				continue
			}
			class := classify(cell)
			switch {
			case !st.set:
				st.set = true
				st.class = class
			case st.class != class:
				st.dropped = true
			}
		}
	}

	score := 0
	for i, st := range columns {
		switch {
		case st.dropped:
		case !st.set:
			score++
		case st.class.kind == kindLength:
			if utf8.RuneCountInString(header[i]) != st.class.length {
				score++
			} else {
				score--
			}
		default:
			if fitsKind(header[i], st.class.kind) {
				score--
			} else {
				score++
			}
		}
	}
	return score > 0, nil
}

func classify(cell string) cellClass {
	switch {
	case isInt(cell):
		return cellClass{kind: kindInt}
	case isFloat(cell):
		return cellClass{kind: kindFloat}
	default:
		return cellClass{kind: kindLength, length: utf8.RuneCountInString(cell)}
	}
}

// fitsKind reports whether cell converts to a numeric kind; integers also fit floats.
func fitsKind(cell string, kind cellKind) bool {
	if kind == kindInt {
		return isInt(cell)
	}
	return isFloat(cell)
}

func isInt(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// guessDelimiter picks the candidate whose per-line count is the most consistent.
func guessDelimiter(text string) (rune, error) {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return 0, ErrNoDelimiter
	}

	var (
		best      rune
		bestScore float64
	)
	for _, delim := range delimiterCandidates {
		freq := make(map[int]int)
		for _, line := range lines {
			freq[strings.Count(line, string(delim))]++
		}
		modeCount, modeLines := 0, 0
		for count, n := range freq {
			if n > modeLines || (n == modeLines && count > modeCount) {
				modeCount, modeLines = count, n
			}
		}
		if modeCount == 0 {
			continue
		}
		consistency := float64(modeLines) / float64(len(lines))
		if consistency >= minConsistency && consistency > bestScore {
			best, bestScore = delim, consistency
		}
	}
	if best == 0 {
		return 0, ErrNoDelimiter
	}
	return best, nil
}
