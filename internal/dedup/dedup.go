// Package dedup turns a raw candidate stream into a sorted, duplicate-free
// line file.
package dedup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrToolMissing reports that the external sort utility could not be found.
var ErrToolMissing = errors.New("sort utility not found in PATH")

// Deduper writes the sorted unique lines of src to dst.
type Deduper interface {
	Dedup(ctx context.Context, src, dst string) error
}

// ToolError describes a failed external dedup step.
type ToolError struct {
	Step   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Step, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Backend names accepted by New.
const (
	BackendSort   = "sort"
	BackendSQLite = "sqlite"
)

// New returns the named dedup backend. An empty name selects BackendSort.
func New(name, tempDir string) (Deduper, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendSort:
		return &SortUniq{TempDir: tempDir}, nil
	case BackendSQLite:
		return &SQLite{TempDir: tempDir}, nil
	default:
		return nil, fmt.Errorf("unknown dedup backend %q (available: %s, %s)", name, BackendSort, BackendSQLite)
	}
}

// CountLines returns the number of newline-terminated lines in path.
func CountLines(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = file.Close()
	}()

	var count int64
	buf := make([]byte, 64*1024)
	for {
		n, err := file.Read(buf)
		count += int64(bytes.Count(buf[:n], []byte{'\n'}))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return 0, err
		}
	}
}
