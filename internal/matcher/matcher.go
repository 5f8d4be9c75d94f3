// Package matcher finds the reference-table columns whose stored code
// prefixes match a tariff code.
package matcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Column is a named series of reference cells. Cells keep whatever type
// the loader produced: string, a number, []byte or nil.
type Column struct {
	Name  string
	Cells []any
}

// Table is a column-oriented reference table in left-to-right order.
type Table struct {
	Columns []Column
}

// NewTable builds a table from a header row and data rows. Short rows are
// padded with nil cells.
func NewTable(header []string, rows [][]any) *Table {
	t := &Table{Columns: make([]Column, len(header))}
	for i, name := range header {
		t.Columns[i].Name = name
		t.Columns[i].Cells = make([]any, 0, len(rows))
	}
	for _, row := range rows {
		for i := range t.Columns {
			var cell any
			if i < len(row) {
				cell = row[i]
			}
			t.Columns[i].Cells = append(t.Columns[i].Cells, cell)
		}
	}
	return t
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	zeroFractRe  = regexp.MustCompile(`\.0*$`)
	exponentRe   = regexp.MustCompile(`[eE][-+]?[0-9]+`)
	allDigitsRe  = regexp.MustCompile(`^[0-9]+$`)
)

// cellString renders a cell the way it appears before normalization.
func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// NormalizeCell turns a raw cell into a numeric prefix. It returns false
// for cells that are empty or not made of digits once cleaned.
func NormalizeCell(cell any) (string, bool) {
	s := strings.TrimSpace(cellString(cell))
	s = whitespaceRe.ReplaceAllString(s, "")
	s = zeroFractRe.ReplaceAllString(s, "")
	s = exponentRe.ReplaceAllString(s, "")
	if s == "" || !allDigitsRe.MatchString(s) {
		return "", false
	}
	return s, true
}

// Prefixes returns the normalized numeric values of a column, skipping
// cells that do not normalize.
func (c Column) Prefixes() []string {
	var out []string
	for _, cell := range c.Cells {
		if v, ok := NormalizeCell(cell); ok {
			out = append(out, v)
		}
	}
	return out
}

// Matches reports whether any value of the column is a prefix of code.
func (c Column) Matches(code string) bool {
	for _, v := range c.Prefixes() {
		if len(v) <= len(code) && strings.HasPrefix(code, v) {
			return true
		}
	}
	return false
}

// FindMatchingColumns returns, in table order, the names of the columns
// holding a prefix of code. A column name listed twice is reported once.
func FindMatchingColumns(code string, t *Table) []string {
	if t == nil {
		return nil
	}

	var matched []string
	seen := make(map[string]bool)
	for _, col := range t.Columns {
		if seen[col.Name] {
			continue
		}
		if col.Matches(code) {
			seen[col.Name] = true
			matched = append(matched, col.Name)
		}
	}
	return matched
}
