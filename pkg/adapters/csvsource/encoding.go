package csvsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	// EncodingUTF8 is the default input encoding. Invalid byte sequences fail the read.
	EncodingUTF8 = "utf-8"
	// EncodingAuto detects the input encoding from the leading bytes of the file.
	EncodingAuto = "auto"

	detectPeekSize = 2048
	// minConfidence is the lowest chardet confidence (1-100) that auto detection acts on.
	minConfidence = 50
)

// ErrUndetectedEncoding is returned by auto detection when no supported encoding is a confident match.
var ErrUndetectedEncoding = errors.New("could not detect encoding, set an explicit encoding")

var bom = []byte{0xEF, 0xBB, 0xBF}

var charmaps = map[string]*charmap.Charmap{
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// ValidateEncoding reports whether name is an encoding the reader understands.
func ValidateEncoding(name string) error {
	switch n := normalizeEncoding(name); n {
	case EncodingAuto, EncodingUTF8:
		return nil
	default:
		if _, ok := charmaps[n]; !ok {
			return fmt.Errorf("unsupported encoding %q", name)
		}
		return nil
	}
}

func normalizeEncoding(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "utf8", "ascii", "us-ascii":
		return EncodingUTF8
	}
	return n
}

// decode converts data to UTF-8 and strips a leading byte order mark.
func decode(data []byte, encoding string) ([]byte, string, error) {
	name := normalizeEncoding(encoding)
	if name == EncodingAuto {
		detected, err := detectEncoding(data)
		if err != nil {
			return nil, name, err
		}
		name = detected
	}

	if name == EncodingUTF8 {
		data = bytes.TrimPrefix(data, bom)
		if !utf8.Valid(data) {
			return nil, name, errors.New("invalid utf-8 byte sequence")
		}
		return data, name, nil
	}

	cm, ok := charmaps[name]
	if !ok {
		return nil, name, fmt.Errorf("unsupported encoding %q", name)
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), cm.NewDecoder()))
	if err != nil {
		return nil, name, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return out, name, nil
}

// detectEncoding treats valid UTF-8 as UTF-8 and otherwise asks chardet.
func detectEncoding(data []byte) (string, error) {
	if utf8.Valid(data) {
		return EncodingUTF8, nil
	}
	peek := data
	if len(peek) > detectPeekSize {
		peek = peek[:detectPeekSize]
	}
	results, err := chardet.NewTextDetector().DetectAll(peek)
	if err != nil {
		return "", ErrUndetectedEncoding
	}
	return pickEncoding(results)
}

// pickEncoding accepts the best chardet guess only when it is confident and supported.
func pickEncoding(results []chardet.Result) (string, error) {
	if len(results) == 0 {
		return "", ErrUndetectedEncoding
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	if best.Confidence < minConfidence {
		return "", fmt.Errorf("%w (best guess %s at %d%%)", ErrUndetectedEncoding, best.Charset, best.Confidence)
	}
	name := normalizeEncoding(best.Charset)
	if name == EncodingUTF8 {
		return name, nil
	}
	if _, ok := charmaps[name]; !ok {
		return "", fmt.Errorf("%w (detected unsupported %s)", ErrUndetectedEncoding, best.Charset)
	}
	return name, nil
}
