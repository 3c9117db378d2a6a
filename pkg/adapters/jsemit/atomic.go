package jsemit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "csvtojs-tmp-"
)

// writeFileAtomic replaces the script at filename via a sibling temp file and rename.
// An existing output keeps its mode, and a symlinked output is written through to its target.
// perm only applies when the output does not exist yet.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	target, err := resolveOutput(filename)
	if err != nil {
		return err
	}

	mode := perm
	switch info, err := os.Stat(target); {
	case err == nil && info.IsDir():
		return fmt.Errorf("output %s is a directory", target)
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(target), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), mode); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), target); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", target, err)
	}
	return nil
}

// resolveOutput follows symlinks at filename, including dangling ones, to the file that should be replaced.
func resolveOutput(filename string) (string, error) {
	for hops := 0; hops < 40; hops++ {
		info, err := os.Lstat(filename)
		if errors.Is(err, fs.ErrNotExist) {
			return filename, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", filename, err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return filename, nil
		}

		link, err := os.Readlink(filename)
		if err != nil {
			return "", fmt.Errorf("failed to read link %s: %w", filename, err)
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(filename), link)
		}
		filename = link
	}
	return "", fmt.Errorf("too many levels of symbolic links at %s", filename)
}
