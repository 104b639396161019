package estimate

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordsmith/internal/model"
)

const separator = "-------------------------------------"

// FormatSize renders a byte count with 1024-based Bytes/KB/MB/GB units.
func FormatSize(size float64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%.0f Bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.2f KB", size/1024)
	case size < 1024*1024*1024:
		return fmt.Sprintf("%.2f MB", size/(1024*1024))
	default:
		return fmt.Sprintf("%.2f GB", size/(1024*1024*1024))
	}
}

// FormatCount renders a candidate count with thousands separators.
func FormatCount(n uint64) string {
	if n > math.MaxInt64 {
		return ">" + humanize.Comma(math.MaxInt64)
	}
	return humanize.Comma(int64(n))
}

// WriteReport writes the operator-facing estimate summary.
func WriteReport(w io.Writer, words []string, cfg model.MutationConfig, est model.Estimate) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimating based on %d base word(s).\n", len(words))
	b.WriteString("Enabled mutations:\n")
	if enabled := cfg.Enabled(); len(enabled) > 0 {
		fmt.Fprintf(&b, "  - %s\n", strings.Join(enabled, ", "))
		if cfg.Concatenation && !cfg.SelfPairs {
			b.WriteString("  - Concatenation skips word+word pairs\n")
		}
	} else {
		b.WriteString("  - No mutations enabled (list will contain base words only).\n")
	}
	b.WriteString(separator + "\n")

	if len(est.Preview) > 0 {
		b.WriteString("Preview of potential generated passwords (sample unique examples):\n")
		rows := make([][]string, 0, len(est.Preview))
		for i, p := range est.Preview {
			rows = append(rows, []string{strconv.Itoa(i+1) + ".", p, strconv.Itoa(displayWidth(p))})
		}
		for _, line := range formatTable([]string{"#", "Candidate", "Width"}, rows, map[int]bool{0: true, 2: true}) {
			b.WriteString("  " + line + "\n")
		}
		fmt.Fprintf(&b, "Approx. Character Entropy of this Preview: %.3f bits/char\n", est.PreviewEntropy)
	} else {
		b.WriteString("Preview: No example passwords generated.\n")
	}
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "~ Max Passwords (upper bound): ~%s\n", FormatCount(est.MaxCandidates))
	if est.ConcatCount > 0 {
		fmt.Fprintf(&b, "    single words: ~%s, concatenations: ~%s\n", FormatCount(est.SingleCount), FormatCount(est.ConcatCount))
	}
	fmt.Fprintf(&b, "~ Max File Size (upper bound): ~%s\n", FormatSize(est.MaxFileSizeBytes))
	b.WriteString(separator + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount && i < len(row); i++ {
			if w := displayWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	pad := width - displayWidth(value)
	if pad <= 0 {
		return value
	}
	if rightAlign {
		return strings.Repeat(" ", pad) + value
	}
	return value + strings.Repeat(" ", pad)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
