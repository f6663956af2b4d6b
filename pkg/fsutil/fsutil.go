// Package fsutil checks that the directories a recording needs are usable.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/EnigmaCurry/shell-scene/errors"
)

const probeName = ".writable_probe.tmp"

// TimestampLayout names default recordings, e.g. cast-20240131-154500.cast.
const TimestampLayout = "20060102-150405"

// Timestamp returns the local time formatted with TimestampLayout.
func Timestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ExpandPath expands a leading ~ and returns an absolute path. Other
// characters, including $, are kept literally.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(path)
}

// ValidateWorkdir requires path to be an existing, listable directory.
func ValidateWorkdir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return errors.WorkdirInvalid(path, "does not exist")
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.WorkdirInvalid(path, "is not readable")
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return errors.WorkdirInvalid(path, "is not readable")
	}
	return nil
}

// EnsureWritableDir creates path if needed and verifies a file can be
// created in it by writing and removing a zero-byte probe.
func EnsureWritableDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.DirNotWritable(path, err).
			WithDetail("reason", "does not exist and could not be created")
	}

	probe := filepath.Join(path, probeName)
	f, err := os.Create(probe)
	if err != nil {
		return errors.DirNotWritable(path, err)
	}
	_ = f.Close()
	_ = os.Remove(probe)
	return nil
}

// OutputDir returns the directory an output file will be written into.
func OutputDir(output string) string {
	dir := filepath.Dir(output)
	if dir == "" {
		return "."
	}
	return dir
}
