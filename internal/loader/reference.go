package loader

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"
	"github.com/zxzuuup/htsmail/internal/matcher"

	_ "modernc.org/sqlite"
)

// LoadReference reads the reference table from the first sheet of an
// .xlsx workbook. The first row holds the column names; empty cells become
// nil.
func LoadReference(path string) (*matcher.Table, error) {
	rows, err := readFirstSheet(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	header := trimHeader(rows[0])
	data := make([][]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]any, len(row))
		for i, v := range row {
			if v != "" {
				cells[i] = v
			}
		}
		data = append(data, cells)
	}
	return matcher.NewTable(header, data), nil
}

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadReferenceSQLite reads the reference table from a table in a SQLite
// database. Every column of the table becomes a reference column.
func LoadReferenceSQLite(path, table string) (*matcher.Table, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q: %w", table, ErrReadFailure)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w: %v", ErrReadFailure, err)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w: %v", table, ErrReadFailure, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w: %v", ErrReadFailure, err)
	}

	var data [][]any
	for rows.Next() {
		cells := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w: %v", ErrReadFailure, err)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w: %v", ErrReadFailure, err)
	}

	return matcher.NewTable(header, data), nil
}
