package reactivity_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/csvtojs"
	"github.com/aretw0/csvtojs/pkg/core"
	"github.com/aretw0/csvtojs/pkg/watch"
)

// setupWatchTest writes an input CSV and starts a watcher converting it to out.js.
// It returns the temporary directory, the conversion counter and a stop function that waits for Run.
func setupWatchTest(t *testing.T, csv string) (string, *atomic.Int32, func()) {
	t.Helper()
	tmp := t.TempDir()
	input := filepath.Join(tmp, "species.csv")
	output := filepath.Join(tmp, "out.js")
	require.NoError(t, os.WriteFile(input, []byte(csv), 0644))

	svc := csvtojs.New(csvtojs.WithCompact(true))
	var conversions atomic.Int32
	w, err := watch.New(watch.Config{
		Input:    input,
		Debounce: 20 * time.Millisecond,
		Convert: func(ctx context.Context) (core.Result, error) {
			defer conversions.Add(1)
			return svc.Convert(ctx, input, output)
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return conversions.Load() >= 1 }, 5*time.Second, 10*time.Millisecond, "initial conversion")

	return tmp, &conversions, func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Timed out waiting for watcher to stop")
		}
	}
}

// TestWatch_FileModification tests that saving the CSV regenerates the script.
func TestWatch_FileModification(t *testing.T) {
	tmp, _, stop := setupWatchTest(t, "Key,Common Name\nOak,Oak Tree\n")
	defer stop()

	output := filepath.Join(tmp, "out.js")
	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Maple")

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "species.csv"), []byte("Key,Common Name\nOak,Oak Tree\nMaple,Maple Tree\n"), 0644))

	require.Eventually(t, func() bool {
		b, err := os.ReadFile(output)
		return err == nil && strings.Contains(string(b), `"key":"Maple"`)
	}, 5*time.Second, 20*time.Millisecond, "output should pick up the new row")
}

// TestWatch_IgnoreSelf ensures that the watcher's own output and sibling files do not trigger another conversion.
// This prevents conversion loops.
func TestWatch_IgnoreSelf(t *testing.T) {
	tmp, conversions, stop := setupWatchTest(t, "a,b,c\n")
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "unrelated.csv"), []byte("x,y,z\n"), 0644))
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, int32(1), conversions.Load(), "only the initial conversion should have run")
}
