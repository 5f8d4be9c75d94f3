// Package docx composes the outgoing email document and writes it as a
// WordprocessingML (.docx) package.
package docx

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/zxzuuup/htsmail/internal/hts"
)

// ErrUnknownLanguage is returned when no greeting or closing is configured
// for a language.
var ErrUnknownLanguage = errors.New("unknown language")

// LayoutConfig holds the fixed strings that frame every section.
type LayoutConfig struct {
	Greetings      map[hts.Language]string
	Closings       map[hts.Language]string
	QuestionTitles map[hts.Language]string // text/template, {{.Number}} is 1-based
	Signature      string
}

// Layout is a compiled LayoutConfig.
type Layout struct {
	greetings map[hts.Language]string
	closings  map[hts.Language]string
	titles    map[hts.Language]*template.Template
	signature string
}

// NewLayout compiles the question-title templates.
func NewLayout(cfg LayoutConfig) (*Layout, error) {
	l := &Layout{
		greetings: cfg.Greetings,
		closings:  cfg.Closings,
		titles:    make(map[hts.Language]*template.Template, len(cfg.QuestionTitles)),
		signature: cfg.Signature,
	}
	for lang, src := range cfg.QuestionTitles {
		t, err := template.New(string(lang)).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing question title for %s: %w", lang, err)
		}
		l.titles[lang] = t
	}
	return l, nil
}

// Greeting returns the opening line for lang.
func (l *Layout) Greeting(lang hts.Language) (string, error) {
	g, ok := l.greetings[lang]
	if !ok {
		return "", fmt.Errorf("greeting for %q: %w", lang, ErrUnknownLanguage)
	}
	return g, nil
}

// Closing returns the closing line for lang.
func (l *Layout) Closing(lang hts.Language) (string, error) {
	c, ok := l.closings[lang]
	if !ok {
		return "", fmt.Errorf("closing for %q: %w", lang, ErrUnknownLanguage)
	}
	return c, nil
}

// QuestionTitle renders the header of the n-th (1-based) question block.
func (l *Layout) QuestionTitle(lang hts.Language, n int) (string, error) {
	t, ok := l.titles[lang]
	if !ok {
		return "", fmt.Errorf("question title for %q: %w", lang, ErrUnknownLanguage)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, struct{ Number int }{n}); err != nil {
		return "", fmt.Errorf("rendering question title: %w", err)
	}
	return buf.String(), nil
}

// Signature returns the signature block.
func (l *Layout) Signature() string { return l.signature }

// PlainText renders a section the way it reads in a plain-text email:
// greeting, numbered blocks, closing and signature separated by blank
// lines. It returns "" when texts is empty.
func (l *Layout) PlainText(texts []string, lang hts.Language) (string, error) {
	if len(texts) == 0 {
		return "", nil
	}

	greeting, err := l.Greeting(lang)
	if err != nil {
		return "", err
	}
	closing, err := l.Closing(lang)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString(greeting)
	buf.WriteString("\n\n")
	for i, text := range texts {
		if i > 0 {
			buf.WriteString("\n")
		}
		title, err := l.QuestionTitle(lang, i+1)
		if err != nil {
			return "", err
		}
		buf.WriteString(title)
		buf.WriteString("\n")
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
	buf.WriteString(closing)
	buf.WriteString("\n\n")
	buf.WriteString(l.signature)
	return buf.String(), nil
}
