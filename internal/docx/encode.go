package docx

import (
	"fmt"
	"io"

	godocx "github.com/fumiama/go-docx"

	"github.com/zxzuuup/htsmail/internal/markup"
)

const redColor = "FF0000"

// addSegment appends seg to p as one run. AddText turns line breaks
// into w:br elements.
func addSegment(p *godocx.Paragraph, seg Segment) {
	text := markup.Sanitize(seg.Text)
	if text == "" {
		return
	}
	run := p.AddText(text)
	for _, c := range run.Children {
		if t, ok := c.(*godocx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	if seg.Style.IsRed() {
		run.Color(redColor)
	}
	if seg.Style.IsBold() {
		run.Bold()
	}
}

// Encode writes paragraphs as a .docx package to w.
func Encode(w io.Writer, paragraphs []Paragraph) error {
	doc := godocx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		para := doc.AddParagraph()
		for _, seg := range p.Segments {
			addSegment(para, seg)
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("packing document: %w", err)
	}
	return nil
}
