package docx

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zxzuuup/htsmail/internal/hts"
)

// ErrAlreadySaved is returned by Save once the document has been written.
var ErrAlreadySaved = errors.New("document already saved")

// Segment is a piece of a paragraph with a single style.
type Segment struct {
	Text  string
	Style hts.Style
}

// Paragraph is one block of the document. A paragraph without segments
// is a blank line.
type Paragraph struct {
	Segments []Segment
}

// Text returns the paragraph's plain text.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, s := range p.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

func plain(text string) Paragraph {
	return Paragraph{Segments: []Segment{{Text: text, Style: hts.StyleNormal}}}
}

// Segments lays the runs of a parsed blurb back over its plain text. Each
// run is searched for from the end of the previous one; the gap before it
// becomes a normal segment. A run that cannot be found is emitted as
// normal text without moving the search position. Text after the last run
// is emitted as normal.
func Segments(text string, runs []hts.Run) []Segment {
	if len(runs) == 0 {
		return []Segment{{Text: text, Style: hts.StyleNormal}}
	}

	var segs []Segment
	last := 0
	for _, r := range runs {
		idx := strings.Index(text[last:], r.Text)
		if idx < 0 {
			segs = append(segs, Segment{Text: r.Text, Style: hts.StyleNormal})
			continue
		}
		start := last + idx
		if start > last {
			segs = append(segs, Segment{Text: text[last:start], Style: hts.StyleNormal})
		}
		segs = append(segs, Segment{Text: r.Text, Style: r.Style})
		last = start + len(r.Text)
	}
	if last < len(text) {
		segs = append(segs, Segment{Text: text[last:], Style: hts.StyleNormal})
	}
	return segs
}

// Builder accumulates the blocks of one output document and writes them
// to its destination on Save. A Builder must not be shared between
// goroutines.
type Builder struct {
	path       string
	layout     *Layout
	paragraphs []Paragraph
	saved      bool
}

// NewBuilder creates a builder that will save to path.
func NewBuilder(path string, layout *Layout) *Builder {
	return &Builder{path: path, layout: layout}
}

// Path returns the destination file.
func (b *Builder) Path() string { return b.path }

// Paragraphs returns a copy of the accumulated blocks.
func (b *Builder) Paragraphs() []Paragraph {
	return append([]Paragraph(nil), b.paragraphs...)
}

func (b *Builder) blank(n int) {
	for i := 0; i < n; i++ {
		b.paragraphs = append(b.paragraphs, Paragraph{})
	}
}

// AddParagraph appends blankBefore empty paragraphs, the text (when not
// empty), then blankAfter empty paragraphs.
func (b *Builder) AddParagraph(text string, blankBefore, blankAfter int) {
	b.blank(blankBefore)
	if text != "" {
		b.paragraphs = append(b.paragraphs, plain(text))
	}
	b.blank(blankAfter)
}

// FormatSection appends the lang section for code: a greeting, one
// numbered question block per text and the closing line. texts[i] is
// rendered with styles[i]. Nothing is appended when an error is returned.
func (b *Builder) FormatSection(code string, lang hts.Language, texts []string, styles [][]hts.Run) error {
	if b.saved {
		return ErrAlreadySaved
	}
	if len(texts) != len(styles) {
		return fmt.Errorf("%s %s section has %d texts but %d style lists", code, lang, len(texts), len(styles))
	}

	greeting, err := b.layout.Greeting(lang)
	if err != nil {
		return fmt.Errorf("%s %s section: %w", code, lang, err)
	}
	closing, err := b.layout.Closing(lang)
	if err != nil {
		return fmt.Errorf("%s %s section: %w", code, lang, err)
	}

	section := []Paragraph{plain(greeting), {}}
	for i, text := range texts {
		if i > 0 {
			section = append(section, Paragraph{})
		}
		title, err := b.layout.QuestionTitle(lang, i+1)
		if err != nil {
			return fmt.Errorf("%s %s section: %w", code, lang, err)
		}
		section = append(section, plain(title), Paragraph{Segments: Segments(text, styles[i])})
	}
	section = append(section, Paragraph{}, plain(closing))

	b.paragraphs = append(b.paragraphs, section...)
	return nil
}

// Save appends the signature block and writes the document. It may be
// called once.
func (b *Builder) Save() error {
	if b.saved {
		return ErrAlreadySaved
	}
	b.saved = true

	b.blank(1)
	b.paragraphs = append(b.paragraphs, plain(b.layout.Signature()))

	f, err := os.Create(b.path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := Encode(f, b.paragraphs); err != nil {
		f.Close()
		os.Remove(b.path)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
