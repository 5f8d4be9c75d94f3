// Package session loads the reference data named by a configuration and
// runs generation batches against it.
package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zxzuuup/htsmail/internal/config"
	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/docx"
	"github.com/zxzuuup/htsmail/internal/hts"
	"github.com/zxzuuup/htsmail/internal/loader"
	"github.com/zxzuuup/htsmail/internal/markup"
	"github.com/zxzuuup/htsmail/internal/matcher"
	"github.com/zxzuuup/htsmail/internal/processor"
)

// Session owns the loaded reference table and blurbs for its lifetime.
type Session struct {
	cfg       *config.Config
	table     *matcher.Table
	contents  hts.ContentMap
	layout    *docx.Layout
	processor *processor.Processor
}

// isSQLite reports whether path names a SQLite database rather than a
// workbook.
func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// LoadReference reads the reference table named by cfg.
func LoadReference(cfg *config.Config) (*matcher.Table, error) {
	if isSQLite(cfg.ReferenceFile) {
		return loader.LoadReferenceSQLite(cfg.ReferenceFile, cfg.ReferenceTable)
	}
	return loader.LoadReference(cfg.ReferenceFile)
}

// Open loads both input files and reports progress through logf.
func Open(cfg *config.Config, logf processor.LogFunc) (*Session, error) {
	if logf == nil {
		logf = processor.Discard
	}

	parser, err := markup.NewParser(cfg.Tags)
	if err != nil {
		return nil, err
	}
	layout, err := docx.NewLayout(cfg.Layout())
	if err != nil {
		return nil, err
	}

	table, err := LoadReference(cfg)
	if err != nil {
		logf(fmt.Sprintf("❌ 加载 HTS 数据库失败: %v", err))
		return nil, fmt.Errorf("loading reference table: %w", err)
	}
	logf(fmt.Sprintf("✅ HTS 数据库加载成功: %s", cfg.ReferenceFile))

	contents, err := loader.LoadTemplates(cfg.TemplateFile, cfg.TemplateColumns, parser)
	if err != nil {
		logf(fmt.Sprintf("❌ 加载邮件模板失败: %v", err))
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	logf("✅ 邮件模板加载成功")

	proc, err := processor.New(table, contents, processor.Config{
		Mapping:    cfg.LabelMapping(),
		Layout:     layout,
		CodeHeader: cfg.CodeHeader,
	})
	if err != nil {
		return nil, err
	}

	logf("✅ 所有文件加载完成，可以开始生成邮件。")
	return &Session{
		cfg:       cfg,
		table:     table,
		contents:  contents,
		layout:    layout,
		processor: proc,
	}, nil
}

// Processor returns the session's processor.
func (s *Session) Processor() *processor.Processor { return s.processor }

// OutputFile returns the path each batch is saved to.
func (s *Session) OutputFile() string { return s.cfg.OutputFile }

// NewDocument starts an empty output document.
func (s *Session) NewDocument() *docx.Builder {
	return docx.NewBuilder(s.cfg.OutputFile, s.layout)
}

// Run processes codes into a fresh document and saves it.
func (s *Session) Run(codes []string, logf processor.LogFunc) ([]processor.Result, error) {
	return s.processor.ProcessMultiCode(codes, s.NewDocument(), logf)
}

// TemplateLabels returns the labels defined in the blurb workbook, sorted
// by reading.
func (s *Session) TemplateLabels() []string {
	labels := make([]string, 0, len(s.contents))
	for l := range s.contents {
		labels = append(labels, l)
	}
	return content.SortLabels(labels)
}

// Columns returns the reference column names in table order.
func (s *Session) Columns() []string { return s.table.ColumnNames() }

// DisplayText renders a result for the content pane.
func DisplayText(r processor.Result) string {
	if r.Empty() {
		return "未生成任何邮件内容"
	}
	var b strings.Builder
	b.WriteString("===== 英文内容 =====\n")
	b.WriteString(r.EnglishContent)
	b.WriteString("\n\n===== 中文内容 =====\n")
	b.WriteString(r.ChineseContent)
	return b.String()
}
