// Package processor drives one generation session: it matches each code
// against the reference table, gathers the bilingual blurbs and appends
// the styled sections to a shared output document.
package processor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/docx"
	"github.com/zxzuuup/htsmail/internal/hts"
	"github.com/zxzuuup/htsmail/internal/matcher"
)

const rule = "============================="

// LogFunc receives human-readable progress messages.
type LogFunc func(msg string)

// Discard is a LogFunc that drops every message.
func Discard(string) {}

// Document is the output a session writes into. *docx.Builder implements
// it.
type Document interface {
	AddParagraph(text string, blankBefore, blankAfter int)
	FormatSection(code string, lang hts.Language, texts []string, styles [][]hts.Run) error
	Save() error
}

// Result is the outcome of processing one code.
type Result struct {
	Code           string
	MatchedColumns []string
	Labels         []string
	EnglishContent string
	ChineseContent string

	// EnglishSection and ChineseSection hold the blocks and styled runs
	// written to the document for each language.
	EnglishSection content.Section
	ChineseSection content.Section

	// Err joins the per-language generation failures, if any.
	Err error
}

// Empty reports whether no content was produced for either language.
func (r Result) Empty() bool {
	return r.EnglishContent == "" && r.ChineseContent == ""
}

// Content returns the display text for lang.
func (r Result) Content(lang hts.Language) string {
	if lang == hts.Chinese {
		return r.ChineseContent
	}
	return r.EnglishContent
}

// Section returns the blocks written for lang.
func (r Result) Section(lang hts.Language) content.Section {
	if lang == hts.Chinese {
		return r.ChineseSection
	}
	return r.EnglishSection
}

// Config wires the fixed strings and label mapping into a Processor.
type Config struct {
	Mapping content.Mapping
	Layout  *docx.Layout

	// CodeHeader is a text/template for the delimiter written before
	// each code in a batch; {{.Code}} is the code.
	CodeHeader string
}

// Processor holds the loaded reference data for the lifetime of a
// session.
type Processor struct {
	table     *matcher.Table
	contents  hts.ContentMap
	extractor *content.Extractor
	layout    *docx.Layout
	header    *template.Template
}

// New creates a Processor over already-loaded data.
func New(table *matcher.Table, contents hts.ContentMap, cfg Config) (*Processor, error) {
	if cfg.Layout == nil {
		return nil, errors.New("processor: layout is required")
	}
	header, err := template.New("code").Option("missingkey=error").Parse(cfg.CodeHeader)
	if err != nil {
		return nil, fmt.Errorf("parsing code header: %w", err)
	}
	return &Processor{
		table:     table,
		contents:  contents,
		extractor: content.NewExtractor(cfg.Mapping),
		layout:    cfg.Layout,
		header:    header,
	}, nil
}

// ProcessSingleCode matches code, appends its English and Chinese
// sections to doc and returns the display text of each. Failures are
// reported through logf and recorded in the result; they never stop the
// caller.
func (p *Processor) ProcessSingleCode(code string, doc Document, logf LogFunc) Result {
	if logf == nil {
		logf = Discard
	}
	res := Result{Code: code}

	logf(fmt.Sprintf("%s 处理编码: %s %s", rule, code, rule))

	res.MatchedColumns = matcher.FindMatchingColumns(code, p.table)
	if len(res.MatchedColumns) == 0 {
		logf("❌ 无匹配列")
		return res
	}
	for i, col := range res.MatchedColumns {
		logf(fmt.Sprintf("%d. %s", i+1, col))
	}

	merged := p.extractor.Extract(res.MatchedColumns, p.contents)
	res.Labels = merged.Labels
	if merged.Empty() {
		logf("❌ 未找到对应的邮件内容")
	}

	var errs []error
	res.EnglishContent, errs = p.section(code, hts.English, merged.English, doc, logf, errs)
	if res.EnglishContent != "" {
		res.EnglishSection = merged.English
	}
	doc.AddParagraph("", 0, 1)
	res.ChineseContent, errs = p.section(code, hts.Chinese, merged.Chinese, doc, logf, errs)
	if res.ChineseContent != "" {
		res.ChineseSection = merged.Chinese
	}
	res.Err = errors.Join(errs...)

	logf(fmt.Sprintf("%s 处理完成: %s %s", rule, code, rule))
	return res
}

func (p *Processor) section(code string, lang hts.Language, s content.Section, doc Document, logf LogFunc, errs []error) (string, []error) {
	if s.Len() == 0 {
		return "", errs
	}

	if err := doc.FormatSection(code, lang, s.Texts, s.Styles); err != nil {
		logf(fmt.Sprintf("❌ 生成 Word 文件失败: %v", err))
		return "", append(errs, fmt.Errorf("%s section: %w", lang, err))
	}

	text, err := p.layout.PlainText(s.Texts, lang)
	if err != nil {
		logf(fmt.Sprintf("❌ 生成 Word 文件失败: %v", err))
		return "", append(errs, fmt.Errorf("%s display text: %w", lang, err))
	}
	return text, errs
}

// CodeHeader renders the delimiter paragraph for code.
func (p *Processor) CodeHeader(code string) (string, error) {
	var buf bytes.Buffer
	if err := p.header.Execute(&buf, struct{ Code string }{code}); err != nil {
		return "", fmt.Errorf("rendering code header: %w", err)
	}
	return buf.String(), nil
}

// ProcessMultiCode processes codes in order into one document and saves
// it once at the end. A failure on one code does not stop the others. The
// returned error is the save error, if any.
func (p *Processor) ProcessMultiCode(codes []string, doc Document, logf LogFunc) ([]Result, error) {
	if logf == nil {
		logf = Discard
	}

	results := make([]Result, 0, len(codes))
	for _, code := range codes {
		header, err := p.CodeHeader(code)
		if err != nil {
			logf(fmt.Sprintf("❌ 生成编码标题失败: %v", err))
			header = code
		}
		doc.AddParagraph(header, 1, 1)
		results = append(results, p.ProcessSingleCode(code, doc, logf))
	}

	if err := doc.Save(); err != nil {
		logf(fmt.Sprintf("❌ 保存 Word 文件失败: %v", err))
		return results, fmt.Errorf("saving document: %w", err)
	}
	return results, nil
}

// SplitCodes splits raw input on whitespace and drops duplicates, keeping
// the first occurrence of each code.
func SplitCodes(raw string) []string {
	var codes []string
	seen := make(map[string]bool)
	for _, c := range strings.Fields(raw) {
		if seen[c] {
			continue
		}
		seen[c] = true
		codes = append(codes, c)
	}
	return codes
}
