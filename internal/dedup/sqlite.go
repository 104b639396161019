package dedup

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver.
)

const sqliteBatch = 50000

// SQLite dedups without external tools by loading lines into a throwaway
// on-disk SQLite table keyed by the line text. BINARY collation orders keys
// by bytes, so the output matches `LC_ALL=C sort -u`. Lines have no length
// limit and a final line without a newline is kept.
type SQLite struct {
	// TempDir holds the scratch database; empty means the directory of dst.
	TempDir string
}

// Dedup writes the sorted unique lines of src to dst.
func (s *SQLite) Dedup(ctx context.Context, src, dst string) error {
	dir := s.TempDir
	if dir == "" {
		dir = filepath.Dir(dst)
	}
	scratch, err := os.MkdirTemp(dir, "wordsmith-dedup-*")
	if err != nil {
		return fmt.Errorf("failed to create dedup scratch dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(scratch)
	}()

	db, err := sql.Open("sqlite", filepath.Join(scratch, "lines.db"))
	if err != nil {
		return &ToolError{Step: "sqlite open", Err: err}
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close; the scratch dir is removed anyway.
			_ = cerr
		}
	}()
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		return &ToolError{Step: "sqlite migrate", Err: err}
	}
	if err := loadLines(ctx, db, src); err != nil {
		return err
	}
	return writeSorted(ctx, db, dst)
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode = OFF;`,
		`PRAGMA synchronous = OFF;`,
		`CREATE TABLE IF NOT EXISTS lines (
			line TEXT PRIMARY KEY COLLATE BINARY
		) WITHOUT ROWID;`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func loadLines(ctx context.Context, db *sql.DB, src string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open candidate stream %s: %w", src, err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := bufio.NewReaderSize(file, 64*1024)

	pending := 0
	tx, stmt, err := beginInsert(ctx, db)
	if err != nil {
		return err
	}
	rollback := func() {
		if rerr := tx.Rollback(); rerr != nil {
			// Best-effort rollback.
			_ = rerr
		}
	}
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			rollback()
			return fmt.Errorf("failed to read candidate stream %s: %w", src, readErr)
		}
		if line == "" {
			break
		}
		if _, err := stmt.ExecContext(ctx, strings.TrimSuffix(line, "\n")); err != nil {
			rollback()
			return &ToolError{Step: "sqlite insert", Err: err}
		}
		if readErr != nil {
			break
		}
		pending++
		if pending < sqliteBatch {
			continue
		}
		if err := tx.Commit(); err != nil {
			return &ToolError{Step: "sqlite commit", Err: err}
		}
		pending = 0
		if tx, stmt, err = beginInsert(ctx, db); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return &ToolError{Step: "sqlite commit", Err: err}
	}
	return nil
}

func beginInsert(ctx context.Context, db *sql.DB) (*sql.Tx, *sql.Stmt, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, &ToolError{Step: "sqlite begin", Err: err}
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO lines (line) VALUES (?)`)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, &ToolError{Step: "sqlite prepare", Err: err}
	}
	return tx, stmt, nil
}

func writeSorted(ctx context.Context, db *sql.DB, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(dst), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	rows, err := db.QueryContext(ctx, `SELECT line FROM lines ORDER BY line`)
	if err != nil {
		return &ToolError{Step: "sqlite select", Err: err}
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	writer := bufio.NewWriter(tmpFile)
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return &ToolError{Step: "sqlite scan", Err: err}
		}
		if _, err := writer.WriteString(line); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
	}
	if err := rows.Err(); err != nil {
		return &ToolError{Step: "sqlite select", Err: err}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", dst, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
