// Package markup parses blurbs annotated with inline emphasis tags into
// plain text and styled runs.
package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zxzuuup/htsmail/internal/hts"
)

// Pair is one start/end marker pair.
type Pair struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// TagSet holds the marker pair for each emphasis kind.
type TagSet struct {
	Red     Pair `yaml:"red"`
	Bold    Pair `yaml:"bold"`
	RedBold Pair `yaml:"redbold"`
}

// DefaultTags returns the markers used in the blurb spreadsheet.
func DefaultTags() TagSet {
	return TagSet{
		Red:     Pair{Start: "<RED>", End: "</RED>"},
		Bold:    Pair{Start: "<BOLD>", End: "</BOLD>"},
		RedBold: Pair{Start: "<REDBOLD>", End: "</REDBOLD>"},
	}
}

// Validate checks that every marker is set and distinct.
func (t TagSet) Validate() error {
	seen := make(map[string]bool)
	for _, m := range []string{t.Red.Start, t.Red.End, t.Bold.Start, t.Bold.End, t.RedBold.Start, t.RedBold.End} {
		if m == "" {
			return fmt.Errorf("empty tag marker")
		}
		if seen[m] {
			return fmt.Errorf("duplicate tag marker %q", m)
		}
		seen[m] = true
	}
	return nil
}

func (t TagSet) pairs() []struct {
	pair  Pair
	style hts.Style
} {
	return []struct {
		pair  Pair
		style hts.Style
	}{
		{t.Red, hts.StyleRed},
		{t.Bold, hts.StyleBold},
		{t.RedBold, hts.StyleRedBold},
	}
}

// Parser converts annotated blurbs into plain text and runs.
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	tags    TagSet
	pattern *regexp.Regexp
}

// NewParser creates a parser for the given markers.
func NewParser(tags TagSet) (*Parser, error) {
	if err := tags.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tags: %w", err)
	}

	var starts, ends []string
	for _, p := range tags.pairs() {
		starts = append(starts, regexp.QuoteMeta(p.pair.Start))
		ends = append(ends, regexp.QuoteMeta(p.pair.End))
	}

	// Leftmost start marker, then the nearest end marker of any kind.
	expr := fmt.Sprintf(`(?s)(%s)(.*?)(%s)`, strings.Join(starts, "|"), strings.Join(ends, "|"))
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling tag pattern: %w", err)
	}

	return &Parser{tags: tags, pattern: pattern}, nil
}

// Parse returns the plain text of raw with all well-formed tag pairs
// removed, together with the runs that make it up. A start marker closed
// by an end marker of another kind is kept verbatim as normal text.
func (p *Parser) Parse(raw string) hts.Parsed {
	if raw == "" {
		return hts.Parsed{}
	}

	var runs []hts.Run
	last := 0
	for _, loc := range p.pattern.FindAllStringSubmatchIndex(raw, -1) {
		if loc[0] > last {
			runs = append(runs, hts.Run{Text: raw[last:loc[0]], Style: hts.StyleNormal})
		}

		start := raw[loc[2]:loc[3]]
		body := raw[loc[4]:loc[5]]
		end := raw[loc[6]:loc[7]]

		if style, ok := p.styleFor(start, end); ok {
			runs = append(runs, hts.Run{Text: body, Style: style})
		} else {
			runs = append(runs, hts.Run{Text: raw[loc[0]:loc[1]], Style: hts.StyleNormal})
		}
		last = loc[1]
	}

	if last < len(raw) {
		runs = append(runs, hts.Run{Text: raw[last:], Style: hts.StyleNormal})
	}

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return hts.Parsed{Text: b.String(), Runs: runs}
}

func (p *Parser) styleFor(start, end string) (hts.Style, bool) {
	for _, pr := range p.tags.pairs() {
		if start == pr.pair.Start && end == pr.pair.End {
			return pr.style, true
		}
	}
	return hts.StyleNormal, false
}
