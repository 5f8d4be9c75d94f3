// Package content resolves matched reference columns to email blurbs.
package content

import (
	"strings"

	"github.com/zxzuuup/htsmail/internal/hts"
)

// Mapping maps a reference column name to its ordered content labels.
type Mapping map[string][]string

// ParseMapping converts the configured "column -> comma-separated labels"
// form into a Mapping. Blank labels are dropped.
func ParseMapping(raw map[string]string) Mapping {
	m := make(Mapping, len(raw))
	for column, list := range raw {
		var labels []string
		for _, l := range strings.Split(list, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
		m[column] = labels
	}
	return m
}

// ResolveLabels flattens the labels of the matched columns, in column
// order, keeping only the first occurrence of each label. Columns missing
// from the mapping are skipped.
func ResolveLabels(matched []string, mapping Mapping) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, column := range matched {
		for _, label := range mapping[column] {
			if seen[label] {
				continue
			}
			seen[label] = true
			labels = append(labels, label)
		}
	}
	return labels
}

// Section holds the blurbs of one language. Texts[i] and Styles[i]
// describe the same blurb.
type Section struct {
	Texts  []string
	Styles [][]hts.Run
}

// Len returns the number of blurbs.
func (s Section) Len() int { return len(s.Texts) }

func (s *Section) add(p hts.Parsed) {
	s.Texts = append(s.Texts, p.Text)
	s.Styles = append(s.Styles, p.Runs)
}

// Merged is the extracted content for one code.
type Merged struct {
	Labels  []string
	English Section
	Chinese Section
}

// Empty reports whether neither language has content.
func (m Merged) Empty() bool {
	return m.English.Len() == 0 && m.Chinese.Len() == 0
}

// Section returns the section for lang.
func (m Merged) Section(lang hts.Language) Section {
	if lang == hts.Chinese {
		return m.Chinese
	}
	return m.English
}

// Extractor resolves matched columns against a fixed mapping.
type Extractor struct {
	mapping Mapping
}

// NewExtractor creates an extractor for the given mapping.
func NewExtractor(mapping Mapping) *Extractor {
	return &Extractor{mapping: mapping}
}

// Labels returns the deduplicated labels for the matched columns.
func (e *Extractor) Labels(matched []string) []string {
	return ResolveLabels(matched, e.mapping)
}

// Extract collects the parsed blurbs for the matched columns. A language
// whose text is empty for a label contributes nothing for that label.
func (e *Extractor) Extract(matched []string, contents hts.ContentMap) Merged {
	merged := Merged{Labels: e.Labels(matched)}
	for _, label := range merged.Labels {
		c, ok := contents[label]
		if !ok {
			continue
		}
		if !c.English.Empty() {
			merged.English.add(c.English)
		}
		if !c.Chinese.Empty() {
			merged.Chinese.add(c.Chinese)
		}
	}
	return merged
}
