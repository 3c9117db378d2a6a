package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Key        string `json:"key"`
	Common     string `json:"common"`
	Scientific string `json:"scientific"`
}

func parseScript(t *testing.T, path, varName string) []record {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(b)
	require.True(t, strings.HasSuffix(text, ";\n"))
	body := strings.TrimSuffix(strings.TrimPrefix(text, varName), ";\n")
	body = strings.TrimPrefix(strings.TrimSpace(body), "=")

	var records []record
	require.NoError(t, json.Unmarshal([]byte(body), &records))
	return records
}

func TestConvertCLI(t *testing.T) {
	tempDir := t.TempDir()
	bin := buildBinary(t, tempDir)

	input := filepath.Join(tempDir, "species.csv")
	require.NoError(t, os.WriteFile(input, []byte("Key,Common Name,Scientific Name\nOak,Oak Tree,Quercus\n,,\nMaple,Maple Tree,Acer"), 0644))

	t.Run("Default Output", func(t *testing.T) {
		res := runCmd(t, tempDir, bin, "species.csv")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "Wrote species-data.js with 2 records.\n", res.stdout)

		got := parseScript(t, filepath.Join(tempDir, "species-data.js"), "window.__speciesRecords")
		assert.Equal(t, []record{
			{Key: "Oak", Common: "Oak Tree", Scientific: "Quercus"},
			{Key: "Maple", Common: "Maple Tree", Scientific: "Acer"},
		}, got)
	})

	t.Run("Compact Is JSON Equivalent", func(t *testing.T) {
		res := runCmd(t, tempDir, bin, "species.csv", "-o", "compact.js", "--compact")
		require.Equal(t, 0, res.code, res.stderr)

		b, err := os.ReadFile(filepath.Join(tempDir, "compact.js"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "window.__speciesRecords=[{"))

		pretty := parseScript(t, filepath.Join(tempDir, "species-data.js"), "window.__speciesRecords")
		assert.Equal(t, pretty, parseScript(t, filepath.Join(tempDir, "compact.js"), "window.__speciesRecords"))
	})

	t.Run("Custom Variable", func(t *testing.T) {
		res := runCmd(t, tempDir, bin, "species.csv", "--out", "named.js", "--var-name", "MY_VAR")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Len(t, parseScript(t, filepath.Join(tempDir, "named.js"), "MY_VAR"), 2)
	})

	t.Run("Empty File", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "empty.csv"), nil, 0644))

		res := runCmd(t, tempDir, bin, "empty.csv", "-o", "empty.js")
		require.Equal(t, 0, res.code)
		assert.Contains(t, res.stderr, "Warning: no records parsed from CSV.")

		b, err := os.ReadFile(filepath.Join(tempDir, "empty.js"))
		require.NoError(t, err)
		assert.Equal(t, "window.__speciesRecords = [];\n", string(b))
	})

	t.Run("Missing File", func(t *testing.T) {
		res := runCmd(t, tempDir, bin, "missing.csv")
		assert.Equal(t, 2, res.code)
		assert.Equal(t, "Error: file not found: missing.csv\n", res.stderr)
	})

	t.Run("Missing Argument", func(t *testing.T) {
		res := runCmd(t, tempDir, bin)
		assert.Equal(t, 2, res.code)
		assert.Contains(t, res.stderr, "Error:")
	})

	t.Run("Config File", func(t *testing.T) {
		cfg := "out: configured.js\nvar_name: window.FROM_CONFIG\ncompact: true\n"
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "csvtojs.yaml"), []byte(cfg), 0644))

		res := runCmd(t, tempDir, bin, "species.csv", "--config", "csvtojs.yaml", "--var-name", "window.FROM_FLAG")
		require.Equal(t, 0, res.code, res.stderr)

		b, err := os.ReadFile(filepath.Join(tempDir, "configured.js"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "window.FROM_FLAG=["), "flags override the config file")
	})

	t.Run("Version", func(t *testing.T) {
		res := runCmd(t, tempDir, bin, "version")
		require.Equal(t, 0, res.code)
		assert.True(t, strings.HasPrefix(res.stdout, "csvtojs version "))
	})
}

func TestBatchCLI(t *testing.T) {
	tempDir := t.TempDir()
	bin := buildBinary(t, tempDir)

	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "data", "conifers"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "data", "oak.csv"), []byte("a,b,c\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "data", "conifers", "pine.csv"), []byte("d,e,f\n"), 0644))

	res := runCmd(t, tempDir, bin, "batch", "data/**/*.csv", "--out-dir", "dist", "--compact")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Equal(t, []record{{Key: "a", Common: "b", Scientific: "c"}}, parseScript(t, filepath.Join(tempDir, "dist", "oak.js"), "window.__speciesRecords"))
	assert.Equal(t, []record{{Key: "d", Common: "e", Scientific: "f"}}, parseScript(t, filepath.Join(tempDir, "dist", "pine.js"), "window.__speciesRecords"))
}
