package csvsource

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/csvtojs/pkg/core"
)

func TestInferFields(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Mode
	}{
		{"exact titles", []string{"Key", "Common Name", "Scientific Name"}, ModeHeader},
		{"padded and upper case", []string{"  KEY ", " common NAME"}, ModeHeader},
		{"byte order mark", []string{"\ufeffKey", "Common Name"}, ModeHeader},
		{"any order", []string{"Scientific Name", "Common Name", "Key"}, ModeHeader},
		{"missing common name", []string{"Key", "Common", "Scientific"}, ModePositional},
		{"substring is not enough", []string{"Species Key", "Common Name"}, ModePositional},
		{"no headers", nil, ModePositional},
		{"one column", []string{"key"}, ModePositional},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferFields(tc.headers))
		})
	}
}

func TestFromHeaderRow(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		values  []string
		want    core.Record
	}{
		{
			name:    "exact titles",
			headers: []string{"Key", "Common Name", "Scientific Name"},
			values:  []string{" Oak ", "Oak Tree ", " Quercus"},
			want:    core.Record{Key: "Oak", Common: "Oak Tree", Scientific: "Quercus"},
		},
		{
			name:    "substring titles",
			headers: []string{"Species Key", "Common", "Scientific"},
			values:  []string{"oak", "Oak Tree", "Quercus"},
			want:    core.Record{Key: "oak", Common: "Oak Tree", Scientific: "Quercus"},
		},
		{
			name:    "first substring match in column order",
			headers: []string{"Notes", "Key Old", "Key Alt", "Common Name"},
			values:  []string{"x", "first", "second", "Oak Tree"},
			want:    core.Record{Key: "first", Common: "Oak Tree"},
		},
		{
			name:    "exact match beats substring",
			headers: []string{"Keyword", "Key", "Common Name"},
			values:  []string{"tree", "oak", "Oak Tree"},
			want:    core.Record{Key: "oak", Common: "Oak Tree"},
		},
		{
			name:    "empty common name falls back to common column",
			headers: []string{"Key", "Common Name", "Common"},
			values:  []string{"oak", "", "Oak"},
			want:    core.Record{Key: "oak", Common: "Oak"},
		},
		{
			name:    "scientific falls back to substring",
			headers: []string{"Key", "Common Name", "Scientific (Latin)"},
			values:  []string{"oak", "Oak Tree", "Quercus"},
			want:    core.Record{Key: "oak", Common: "Oak Tree", Scientific: "Quercus"},
		},
		{
			name:    "short row",
			headers: []string{"Key", "Common Name", "Scientific Name"},
			values:  []string{"oak"},
			want:    core.Record{Key: "oak"},
		},
		{
			name:    "long row",
			headers: []string{"Key", "Common Name"},
			values:  []string{"oak", "Oak Tree", "ignored"},
			want:    core.Record{Key: "oak", Common: "Oak Tree"},
		},
		{
			name:    "duplicate title keeps rightmost value",
			headers: []string{"Key", "key", "Common Name"},
			values:  []string{"left", "right", "Oak Tree"},
			want:    core.Record{Key: "right", Common: "Oak Tree"},
		},
		{
			name:    "unrelated titles",
			headers: []string{"id", "name", "latin"},
			values:  []string{"1", "Oak", "Quercus"},
			want:    core.Record{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FromHeaderRow(tc.headers, tc.values))
		})
	}
}

func TestFromColumns(t *testing.T) {
	assert.Equal(t, core.Record{Key: "a", Common: "b", Scientific: "c"}, FromColumns([]string{" a", "b ", "c", "d"}))
	assert.Equal(t, core.Record{Key: "a", Common: "b"}, FromColumns([]string{"a", "b"}))
	assert.Equal(t, core.Record{Key: "a"}, FromColumns([]string{"a"}))
	assert.Equal(t, core.Record{}, FromColumns(nil))
}
