package processor

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/docx"
	"github.com/zxzuuup/htsmail/internal/hts"
	"github.com/zxzuuup/htsmail/internal/matcher"
)

func newTestProcessor(t *testing.T) (*Processor, *docx.Layout) {
	t.Helper()

	layout, err := docx.NewLayout(docx.LayoutConfig{
		Greetings:      map[hts.Language]string{hts.English: "Hello Seller,", hts.Chinese: "尊敬的卖家，"},
		Closings:       map[hts.Language]string{hts.English: "Thanks!", hts.Chinese: "谢谢！"},
		QuestionTitles: map[hts.Language]string{hts.English: "Question {{.Number}}:", hts.Chinese: "问题 {{.Number}}:"},
		Signature:      "Your own signature",
	})
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}

	table := matcher.NewTable(
		[]string{"Steel Products", "IFI", "Aluminum Products"},
		[][]any{
			{8401.0, "9403", 7601.0},
			{"7208", nil, nil},
		},
	)
	contents := hts.ContentMap{
		"Steel": {
			English: hts.Parsed{
				Text: "Please see Section 232",
				Runs: []hts.Run{{Text: "Please see ", Style: hts.StyleNormal}, {Text: "Section 232", Style: hts.StyleRed}},
			},
			Chinese: hts.Parsed{Text: "钢铁熔炼国", Runs: []hts.Run{{Text: "钢铁熔炼国", Style: hts.StyleBold}}},
		},
		"Alu": {
			English: hts.Parsed{Text: "Aluminum smelt country", Runs: []hts.Run{{Text: "Aluminum smelt country"}}},
		},
	}

	p, err := New(table, contents, Config{
		Mapping: content.Mapping{
			"Steel Products":    {"Steel"},
			"Aluminum Products": {"Alu"},
			"IFI":               {"IFI Form"},
		},
		Layout:     layout,
		CodeHeader: "编码:{{.Code}} 模板如下：",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p, layout
}

type logCapture struct{ msgs []string }

func (c *logCapture) log(msg string) { c.msgs = append(c.msgs, msg) }

func start(code string) string  { return rule + " 处理编码: " + code + " " + rule }
func finish(code string) string { return rule + " 处理完成: " + code + " " + rule }

func TestProcessSingleCodeLogs(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{
			name: "matched with content",
			code: "84011000",
			want: []string{start("84011000"), "1. Steel Products", finish("84011000")},
		},
		{
			name: "no matching column",
			code: "12345678",
			want: []string{start("12345678"), "❌ 无匹配列"},
		},
		{
			name: "matched without content",
			code: "94031000",
			want: []string{start("94031000"), "1. IFI", "❌ 未找到对应的邮件内容", finish("94031000")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, layout := newTestProcessor(t)
			doc := docx.NewBuilder(filepath.Join(t.TempDir(), "out.docx"), layout)
			var c logCapture

			p.ProcessSingleCode(tt.code, doc, c.log)

			if !reflect.DeepEqual(c.msgs, tt.want) {
				t.Errorf("log = %q, want %q", c.msgs, tt.want)
			}
		})
	}
}

func TestProcessSingleCodeResult(t *testing.T) {
	p, layout := newTestProcessor(t)
	doc := docx.NewBuilder(filepath.Join(t.TempDir(), "out.docx"), layout)

	res := p.ProcessSingleCode("84011000", doc, nil)

	if res.Code != "84011000" {
		t.Errorf("Code = %q", res.Code)
	}
	if !reflect.DeepEqual(res.MatchedColumns, []string{"Steel Products"}) {
		t.Errorf("MatchedColumns = %v", res.MatchedColumns)
	}
	wantEN := "Hello Seller,\n\nQuestion 1:\nPlease see Section 232\n\nThanks!\n\nYour own signature"
	if res.EnglishContent != wantEN {
		t.Errorf("EnglishContent = %q, want %q", res.EnglishContent, wantEN)
	}
	if !strings.Contains(res.ChineseContent, "问题 1:\n钢铁熔炼国") {
		t.Errorf("ChineseContent = %q, want the Chinese blurb", res.ChineseContent)
	}
	if res.Err != nil {
		t.Errorf("Err = %v", res.Err)
	}
	wantSection := content.Section{
		Texts:  []string{"Please see Section 232"},
		Styles: [][]hts.Run{{{Text: "Please see ", Style: hts.StyleNormal}, {Text: "Section 232", Style: hts.StyleRed}}},
	}
	if got := res.Section(hts.English); !reflect.DeepEqual(got, wantSection) {
		t.Errorf("English section = %+v, want %+v", got, wantSection)
	}
	if got := res.Section(hts.Chinese); got.Len() != 1 {
		t.Errorf("Chinese section has %d blocks, want 1", got.Len())
	}

	// The styled paragraph keeps its run boundaries.
	var found bool
	for _, para := range doc.Paragraphs() {
		if para.Text() != "Please see Section 232" {
			continue
		}
		found = true
		want := []docx.Segment{{Text: "Please see ", Style: hts.StyleNormal}, {Text: "Section 232", Style: hts.StyleRed}}
		if !reflect.DeepEqual(para.Segments, want) {
			t.Errorf("segments = %+v, want %+v", para.Segments, want)
		}
	}
	if !found {
		t.Error("styled paragraph not found in document")
	}
}

func TestProcessSingleCodeEnglishOnly(t *testing.T) {
	p, layout := newTestProcessor(t)
	doc := docx.NewBuilder(filepath.Join(t.TempDir(), "out.docx"), layout)

	res := p.ProcessSingleCode("7601", doc, nil)

	if res.EnglishContent == "" {
		t.Error("EnglishContent is empty")
	}
	if res.ChineseContent != "" {
		t.Errorf("ChineseContent = %q, want empty", res.ChineseContent)
	}
	for _, para := range doc.Paragraphs() {
		if para.Text() == "尊敬的卖家，" {
			t.Error("document has a Chinese section for an English-only blurb")
		}
	}
}

func TestProcessSingleCodeNoMatchLeavesDocumentEmpty(t *testing.T) {
	p, layout := newTestProcessor(t)
	doc := docx.NewBuilder(filepath.Join(t.TempDir(), "out.docx"), layout)

	res := p.ProcessSingleCode("0000", doc, nil)

	if !res.Empty() || res.MatchedColumns != nil {
		t.Errorf("result = %+v, want empty", res)
	}
	if n := len(doc.Paragraphs()); n != 0 {
		t.Errorf("document has %d paragraphs, want 0", n)
	}
}

// failingDoc fails every section for one code.
type failingDoc struct {
	*docx.Builder
	failCode string
}

func (d *failingDoc) FormatSection(code string, lang hts.Language, texts []string, styles [][]hts.Run) error {
	if code == d.failCode {
		return errors.New("disk on fire")
	}
	return d.Builder.FormatSection(code, lang, texts, styles)
}

func TestProcessMultiCodeBatchIsolation(t *testing.T) {
	p, layout := newTestProcessor(t)
	path := filepath.Join(t.TempDir(), "HTS_Email.docx")
	doc := &failingDoc{Builder: docx.NewBuilder(path, layout), failCode: "72081000"}
	var c logCapture

	results, err := p.ProcessMultiCode([]string{"84011000", "72081000", "76011000"}, doc, c.log)
	if err != nil {
		t.Fatalf("ProcessMultiCode() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[1].Err == nil || results[1].EnglishContent != "" {
		t.Errorf("failing code result = %+v, want error and no content", results[1])
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("other codes errored: %v, %v", results[0].Err, results[2].Err)
	}

	var failures int
	for _, m := range c.msgs {
		if strings.HasPrefix(m, "❌ 生成 Word 文件失败: ") && strings.Contains(m, "disk on fire") {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("logged %d generation failures, want one per language", failures)
	}

	var texts []string
	for _, para := range doc.Paragraphs() {
		texts = append(texts, para.Text())
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{
		"编码:84011000 模板如下：",
		"Please see Section 232",
		"编码:72081000 模板如下：",
		"编码:76011000 模板如下：",
		"Aluminum smelt country",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("saved document is missing %q", want)
		}
	}
	if texts[len(texts)-1] != "Your own signature" {
		t.Errorf("document does not end with the signature: %q", texts[len(texts)-1])
	}
}

func TestProcessMultiCodeLayout(t *testing.T) {
	p, layout := newTestProcessor(t)
	doc := docx.NewBuilder(filepath.Join(t.TempDir(), "out.docx"), layout)

	if _, err := p.ProcessMultiCode([]string{"12345678"}, doc, nil); err != nil {
		t.Fatalf("ProcessMultiCode() error = %v", err)
	}

	var texts []string
	for _, para := range doc.Paragraphs() {
		texts = append(texts, para.Text())
	}
	want := []string{"", "编码:12345678 模板如下：", "", "", "Your own signature"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("paragraphs = %q, want %q", texts, want)
	}
}

func TestProcessMultiCodeSaveError(t *testing.T) {
	p, layout := newTestProcessor(t)
	doc := docx.NewBuilder(filepath.Join(t.TempDir(), "missing", "out.docx"), layout)
	var c logCapture

	results, err := p.ProcessMultiCode([]string{"84011000"}, doc, c.log)
	if err == nil {
		t.Fatal("ProcessMultiCode() error = nil, want save failure")
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
	if last := c.msgs[len(c.msgs)-1]; !strings.HasPrefix(last, "❌ 保存 Word 文件失败") {
		t.Errorf("last log = %q, want save failure", last)
	}
}

func TestSplitCodes(t *testing.T) {
	got := SplitCodes("  84011000\n7208  84011000\t7601 ")
	want := []string{"84011000", "7208", "7601"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCodes() = %v, want %v", got, want)
	}
	if got := SplitCodes("   "); got != nil {
		t.Errorf("SplitCodes(blank) = %v, want nil", got)
	}
}

func TestProcessMultiCodeHeaderFailure(t *testing.T) {
	_, layout := newTestProcessor(t)
	table := matcher.NewTable([]string{"Steel Products"}, [][]any{{"8401"}})
	p, err := New(table, hts.ContentMap{}, Config{Layout: layout, CodeHeader: "{{.Missing}}"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	doc := docx.NewBuilder(filepath.Join(t.TempDir(), "out.docx"), layout)
	var c logCapture

	if _, err := p.ProcessMultiCode([]string{"84011000"}, doc, c.log); err != nil {
		t.Fatalf("ProcessMultiCode() error = %v", err)
	}

	if len(c.msgs) == 0 || !strings.HasPrefix(c.msgs[0], "❌ 生成编码标题失败") {
		t.Errorf("log = %q, want header failure first", c.msgs)
	}
	if got := doc.Paragraphs()[1].Text(); got != "84011000" {
		t.Errorf("header paragraph = %q, want the bare code", got)
	}
}
