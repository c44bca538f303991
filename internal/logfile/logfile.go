// Package logfile appends composed records to the destination file. The file
// is created on first use; its directory never is.
package logfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinytelemetry/tinylog/internal/model"
)

const defaultFileMode = 0644

// Append writes data to the end of path in a single write call.
func Append(path, data string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return fmt.Errorf("%w: open: %w", model.ErrIO, err)
	}
	if _, err := f.WriteString(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write: %w", model.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", model.ErrIO, err)
	}
	return nil
}

// Touch creates an empty file at path when none exists.
func Touch(path string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: stat: %w", model.ErrIO, err)
	}
	return Append(path, "")
}

func checkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return model.ErrConfiguration
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: directory %s: %w", model.ErrIO, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", model.ErrIO, dir)
	}
	return nil
}
