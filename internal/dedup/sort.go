package dedup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// SortUniq dedups by running the system sort utility with byte-order collation.
type SortUniq struct {
	// Command overrides the sort binary; empty means "sort".
	Command string
	// TempDir is passed to sort -T for its spill files when set.
	TempDir string
}

// Dedup runs `sort -u -o dst src` under LC_ALL=C.
func (s *SortUniq) Dedup(ctx context.Context, src, dst string) error {
	name := s.Command
	if name == "" {
		name = "sort"
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrToolMissing, err)
	}

	args := []string{"-u"}
	if s.TempDir != "" {
		args = append(args, "-T", s.TempDir)
	}
	args = append(args, "-o", dst, src)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrToolMissing, err)
		}
		return &ToolError{Step: "sort -u", Stderr: stderr.String(), Err: err}
	}
	return nil
}
