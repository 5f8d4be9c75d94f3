package loader

import (
	"fmt"
	"strings"

	"github.com/zxzuuup/htsmail/internal/hts"
	"github.com/zxzuuup/htsmail/internal/markup"
)

// TemplateColumns names the header cells of the blurb sheet.
type TemplateColumns struct {
	Label   string `yaml:"label"`
	English string `yaml:"english"`
	Chinese string `yaml:"chinese"`
}

// DefaultTemplateColumns returns the headers used by the blurb workbook.
func DefaultTemplateColumns() TemplateColumns {
	return TemplateColumns{
		Label:   "Issue Details Description",
		English: "English Email Blurb",
		Chinese: "Chinese Email Blurb",
	}
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found: %w", name, ErrReadFailure)
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// cleanBlurb drops characters a document cannot hold, then trims
// surrounding whitespace and trailing line breaks. Blurbs are parsed from
// the cleaned text.
func cleanBlurb(s string) string {
	return strings.TrimRight(strings.TrimSpace(markup.Sanitize(s)), "\r\n")
}

// LoadTemplates reads the blurb workbook and parses every blurb with p.
// Rows with an empty label are skipped; a later row with the same label
// replaces an earlier one.
func LoadTemplates(path string, cols TemplateColumns, p *markup.Parser) (hts.ContentMap, error) {
	rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	header := trimHeader(rows[0])
	labelIdx, err := columnIndex(header, cols.Label)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	enIdx, err := columnIndex(header, cols.English)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	chIdx, err := columnIndex(header, cols.Chinese)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	contents := make(hts.ContentMap)
	for _, row := range rows[1:] {
		label := strings.TrimSpace(cellAt(row, labelIdx))
		if label == "" {
			continue
		}
		contents[label] = hts.Content{
			English: p.Parse(cleanBlurb(cellAt(row, enIdx))),
			Chinese: p.Parse(cleanBlurb(cellAt(row, chIdx))),
		}
	}
	return contents, nil
}
