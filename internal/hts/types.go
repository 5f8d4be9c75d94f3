// Package hts provides the core types shared by the HTS email generator.
package hts

// Style is the emphasis applied to a run of text.
type Style int

const (
	StyleNormal  Style = iota // No decoration
	StyleRed                  // Colored emphasis
	StyleBold                 // Weight emphasis
	StyleRedBold              // Color and weight combined
)

// String returns the lower-case style name used in logs and config.
func (s Style) String() string {
	switch s {
	case StyleRed:
		return "red"
	case StyleBold:
		return "bold"
	case StyleRedBold:
		return "redbold"
	default:
		return "normal"
	}
}

// IsRed reports whether the style carries the color emphasis.
func (s Style) IsRed() bool { return s == StyleRed || s == StyleRedBold }

// IsBold reports whether the style carries the weight emphasis.
func (s Style) IsBold() bool { return s == StyleBold || s == StyleRedBold }

// Run is a contiguous fragment of text tagged with exactly one style.
type Run struct {
	Text  string
	Style Style
}

// Parsed is a blurb after tag parsing. Concatenating the run texts in
// order yields Text.
type Parsed struct {
	Text string
	Runs []Run
}

// Empty reports whether there is no plain text.
func (p Parsed) Empty() bool { return p.Text == "" }

// Content is the bilingual parsed content for one label.
type Content struct {
	English Parsed
	Chinese Parsed
}

// ContentMap maps a label to its parsed content.
type ContentMap map[string]Content

// Language selects which half of a bilingual blurb is used.
type Language string

const (
	English Language = "EN"
	Chinese Language = "CH"
)

// Languages lists the languages in the order sections are written.
var Languages = []Language{English, Chinese}
