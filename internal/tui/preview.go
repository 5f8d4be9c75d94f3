package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/docx"
	"github.com/zxzuuup/htsmail/internal/hts"
	"github.com/zxzuuup/htsmail/internal/processor"
	"github.com/zxzuuup/htsmail/internal/session"
)

// emphasis returns the style for a run, or false for plain text.
func emphasis(s hts.Style) (lipgloss.Style, bool) {
	switch {
	case s.IsRed() && s.IsBold():
		return RedBoldStyle, true
	case s.IsRed():
		return RedStyle, true
	case s.IsBold():
		return BoldStyle, true
	default:
		return lipgloss.Style{}, false
	}
}

// renderSegment styles each line separately so Render does not pad
// multi-line fragments into a block.
func renderSegment(b *strings.Builder, seg docx.Segment) {
	style, ok := emphasis(seg.Style)
	if !ok {
		b.WriteString(seg.Text)
		return
	}
	for i, line := range strings.Split(seg.Text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(style.Render(line))
		}
	}
}

// styledSection renders the display text of one language with every
// block's runs styled. Blocks are located in order; a block that cannot
// be found is left plain.
func styledSection(display string, s content.Section) string {
	var b strings.Builder
	off := 0
	for i, text := range s.Texts {
		if text == "" || i >= len(s.Styles) {
			continue
		}
		idx := strings.Index(display[off:], text)
		if idx < 0 {
			continue
		}
		b.WriteString(display[off : off+idx])
		for _, seg := range docx.Segments(text, s.Styles[i]) {
			renderSegment(&b, seg)
		}
		off += idx + len(text)
	}
	b.WriteString(display[off:])
	return b.String()
}

// renderResult is the content pane view of r. It reads like
// session.DisplayText with emphasis applied.
func renderResult(r processor.Result) string {
	if r.Empty() {
		return session.DisplayText(r)
	}
	var b strings.Builder
	b.WriteString(SectionStyle.Render("===== 英文内容 ====="))
	b.WriteString("\n")
	b.WriteString(styledSection(r.EnglishContent, r.EnglishSection))
	b.WriteString("\n\n")
	b.WriteString(SectionStyle.Render("===== 中文内容 ====="))
	b.WriteString("\n")
	b.WriteString(styledSection(r.ChineseContent, r.ChineseSection))
	return b.String()
}
