package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zxzuuup/htsmail/internal/config"
	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/loader"
)

func TestPrintMapping(t *testing.T) {
	var buf bytes.Buffer
	printMapping(&buf, content.Mapping{
		"Steel - derivative products": {"Sec_232 钢铁铝铜及衍生品发票填写邮件模板", "钢铁熔炼国浇铸国"},
		"IFI":                         {"IFI Form required"},
		"Blank":                       nil,
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  Blank") || !strings.HasSuffix(lines[0], "(none)") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  IFI ") {
		t.Errorf("line 1 = %q", lines[1])
	}
	// Continuation rows leave the column name blank but keep alignment.
	if got, want := strings.Index(lines[3], "钢铁熔炼国浇铸国"), strings.Index(lines[2], "Sec_232"); got != want {
		t.Errorf("continuation label at byte %d, first label at %d", got, want)
	}
}

func TestListLabelsMissingWorkbook(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.ReferenceFile = filepath.Join(dir, "HTS_DB.xlsx")
	cfg.TemplateFile = filepath.Join(dir, "EmailBlurb.xlsx")

	var buf bytes.Buffer
	err := listLabels(&buf, cfg)
	if !errors.Is(err, loader.ErrMissingFile) {
		t.Fatalf("listLabels() error = %v, want ErrMissingFile", err)
	}
	if !strings.HasPrefix(buf.String(), "Mapping:\n") {
		t.Errorf("mapping not printed before the error: %q", buf.String())
	}
}
