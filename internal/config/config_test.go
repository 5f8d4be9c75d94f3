package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zxzuuup/htsmail/internal/hts"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if len(cfg.Mapping) != 10 {
		t.Errorf("default mapping has %d columns, want 10", len(cfg.Mapping))
	}

	labels := cfg.LabelMapping()["Steel - derivative products"]
	want := []string{"Sec_232 钢铁铝铜及衍生品发票填写邮件模板", "钢铁熔炼国浇铸国"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %q, want %q", labels, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Signature = "Trade Compliance Team"
	cfg.Mapping["Wood Products"] = "Need Lacey Act (& TSCA)"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `
output_file: out/Email.docx
greetings:
  EN: "Hi there,"
mapping:
  Wood Products: "Need Lacey Act (& TSCA)"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputFile != "out/Email.docx" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if cfg.Greetings[hts.English] != "Hi there," {
		t.Errorf("English greeting = %q", cfg.Greetings[hts.English])
	}
	if cfg.Greetings[hts.Chinese] != "尊敬的卖家，" {
		t.Errorf("Chinese greeting = %q, want default kept", cfg.Greetings[hts.Chinese])
	}
	if cfg.ReferenceFile != "HTS_DB.xlsx" {
		t.Errorf("ReferenceFile = %q, want default kept", cfg.ReferenceFile)
	}
	want := map[string]string{"Wood Products": "Need Lacey Act (& TSCA)"}
	if !reflect.DeepEqual(cfg.Mapping, want) {
		t.Errorf("Mapping = %v, want only the file's columns", cfg.Mapping)
	}
}

func TestLoadWithoutMappingKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("signature: Jane\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Mapping, Default().Mapping) {
		t.Errorf("Mapping = %v, want the default mapping", cfg.Mapping)
	}
	if cfg.Signature != "Jane" {
		t.Errorf("Signature = %q", cfg.Signature)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "duplicate tag", data: "tags:\n  bold:\n    start: \"<RED>\"\n", want: "duplicate tag marker"},
		{name: "empty output", data: "output_file: \"\"\n", want: "output_file"},
		{name: "malformed yaml", data: "mapping: [", want: "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadDirFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("LoadDir() on an empty directory did not return the defaults")
	}
}
