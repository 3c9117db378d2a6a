package e2e

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildBinary builds the csvtojs binary in the specified directory and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "csvtojs.exe")
	// Assumes tests are running from tests/e2e.
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/csvtojs")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build csvtojs: %v\n%s", err, string(out))
	}
	return bin
}

// runResult is the observable outcome of one CLI invocation.
type runResult struct {
	stdout string
	stderr string
	code   int
}

// runCmd runs the binary in dir and returns its output and exit code.
func runCmd(t *testing.T, dir, bin string, args ...string) runResult {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := runResult{stdout: stdout.String(), stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.code = exitErr.ExitCode()
	default:
		t.Fatalf("Failed to run %v: %v", args, err)
	}
	return res
}
