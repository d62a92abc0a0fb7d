// Package dataset reads, reconciles, summarizes and writes the output
// workbook of survey responses.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rcliao/survey-seed/internal/model"
)

// Table is the responses sheet: a header and text rows of equal width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable returns an empty table with the canonical columns.
func NewTable() *Table {
	return &Table{Columns: model.Columns()}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the values of the named column, or nil if absent.
func (t *Table) Column(name string) []string {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Load reads the responses sheet of the workbook at path and projects it onto
// the canonical schema. Any failure gives an empty table; the cause is logged.
func Load(path string, logger *zap.Logger) *Table {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Debug("No previous output, starting empty", zap.String("path", path))
		return NewTable()
	}

	header, rows, err := readSheet(path, model.ResponsesSheet)
	if err != nil {
		logger.Warn("Previous output unreadable, starting empty",
			zap.String("path", path), zap.Error(err))
		return NewTable()
	}

	t, dropped := Project(header, rows)
	if len(dropped) > 0 {
		logger.Warn("Dropping unexpected columns from previous output",
			zap.String("path", path), zap.Strings("columns", dropped))
	}
	return t
}

func readSheet(path, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil, fmt.Errorf("sheet %q not found", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

// Project maps rows read under header onto the canonical columns. Missing
// columns are filled with "", unknown columns are dropped and returned, and
// fully blank rows are skipped.
func Project(header []string, rows [][]string) (*Table, []string) {
	t := NewTable()

	pos := make(map[string]int, len(header))
	var dropped []string
	known := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		known[c] = true
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; dup {
			continue
		}
		pos[h] = i
		if h != "" && !known[h] {
			dropped = append(dropped, h)
		}
	}

	for _, src := range rows {
		if blank(src) {
			continue
		}
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			if j, ok := pos[c]; ok && j < len(src) {
				row[i] = src[j]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, dropped
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// MaxID returns the largest id in the table, 0 if none. Each id cell is read
// up to its first '.', so "12.0" counts as 12; unparseable cells count as 0.
func (t *Table) MaxID() int {
	maxID := 0
	for _, v := range t.Column(model.ColID) {
		if n := parseID(v); n > maxID {
			maxID = n
		}
	}
	return maxID
}

func parseID(s string) int {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Append returns a new table with the prior rows followed by the responses.
// The receiver is not modified.
func (t *Table) Append(responses []model.Response) *Table {
	merged := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, 0, len(t.Rows)+len(responses)),
	}
	merged.Rows = append(merged.Rows, t.Rows...)
	for _, r := range responses {
		merged.Rows = append(merged.Rows, r.Row())
	}
	return merged
}
