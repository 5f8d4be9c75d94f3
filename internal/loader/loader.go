// Package loader reads the reference table and the blurb templates from
// disk.
package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingFile is returned when an input file does not exist.
	ErrMissingFile = errors.New("file not found")

	// ErrReadFailure is returned when an input file exists but cannot be
	// read or has an unexpected layout.
	ErrReadFailure = errors.New("read failure")
)

// checkFile reports ErrMissingFile for paths that do not exist.
func checkFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrMissingFile)
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrReadFailure, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, ErrReadFailure)
	}
	return nil
}

// readFirstSheet returns all rows of the workbook's first sheet.
func readFirstSheet(path string, opts ...excelize.Options) ([][]string, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %v", path, ErrReadFailure, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets: %w", path, ErrReadFailure)
	}

	rows, err := f.GetRows(sheets[0], opts...)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w: %v", sheets[0], ErrReadFailure, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %s is empty: %w", path, sheets[0], ErrReadFailure)
	}
	return rows, nil
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}
