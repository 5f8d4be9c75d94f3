// Package config handles loading and saving user configuration for htsmail.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/docx"
	"github.com/zxzuuup/htsmail/internal/hts"
	"github.com/zxzuuup/htsmail/internal/loader"
	"github.com/zxzuuup/htsmail/internal/markup"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside the config
// directory.
const FileName = "config.yaml"

// Config holds all user configuration for htsmail.
type Config struct {
	ReferenceFile  string `yaml:"reference_file"`
	ReferenceTable string `yaml:"reference_table"` // table name when reference_file is a SQLite database
	TemplateFile   string `yaml:"template_file"`
	OutputFile     string `yaml:"output_file"`

	// Mapping maps a reference column to a comma-separated label list.
	Mapping map[string]string `yaml:"mapping"`

	Tags            markup.TagSet          `yaml:"tags"`
	TemplateColumns loader.TemplateColumns `yaml:"template_columns"`

	Greetings      map[hts.Language]string `yaml:"greetings"`
	Closings       map[hts.Language]string `yaml:"closings"`
	QuestionTitles map[hts.Language]string `yaml:"question_titles"` // {{.Number}} is 1-based
	CodeHeader     string                  `yaml:"code_header"`     // {{.Code}} is the code
	Signature      string                  `yaml:"signature"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ReferenceFile:  "HTS_DB.xlsx",
		ReferenceTable: "hts",
		TemplateFile:   "EmailBlurb.xlsx",
		OutputFile:     "HTS_Email.docx",
		Mapping: map[string]string{
			"MF (Textile)":                         "Manufacturer(纺织品)",
			"Component":                            "Material compositions for textiles",
			"FDA Information+ DII+ Drop ball test": "Drop Ball Test and DII",
			"IFI":                                  "IFI Form required",
			"Lacey Act (based on Implementation Schedule)": "Need Lacey Act (& TSCA)",
			"Aluminum Products":              "Section 232 Aluminum",
			"Aluminum - derivative products": "Sec_232 钢铁铝铜及衍生品发票填写邮件模板, Section 232 Aluminum",
			"Steel Products":                 "钢铁熔炼国浇铸国",
			"Steel - derivative products":    "Sec_232 钢铁铝铜及衍生品发票填写邮件模板, 钢铁熔炼国浇铸国",
			"Copper - derivative products":   "Sec_232 钢铁铝铜及衍生品发票填写邮件模板",
		},
		Tags:            markup.DefaultTags(),
		TemplateColumns: loader.DefaultTemplateColumns(),
		Greetings: map[hts.Language]string{
			hts.English: "Hello Seller,",
			hts.Chinese: "尊敬的卖家，",
		},
		Closings: map[hts.Language]string{
			hts.English: "If you have any questions, please contact us in time. Thanks！",
			hts.Chinese: "如果您有任何问题，请及时联系我们。谢谢！",
		},
		QuestionTitles: map[hts.Language]string{
			hts.English: "Question {{.Number}}:",
			hts.Chinese: "问题 {{.Number}}:",
		},
		CodeHeader: "编码:{{.Code}} 模板如下：",
		Signature:  "Your own signature",
	}
}

// Load reads the configuration at path over the defaults, so a partial
// file only overrides the keys it sets. A mapping in the file replaces the
// default mapping as a whole.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var file struct {
		Mapping map[string]string `yaml:"mapping"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if file.Mapping != nil {
		cfg.Mapping = nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir loads config.yaml from dir, falling back to the defaults when
// the file does not exist.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the markers and that every language has its fixed
// strings.
func (c *Config) Validate() error {
	if err := c.Tags.Validate(); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	if c.OutputFile == "" {
		return errors.New("output_file is empty")
	}
	if c.CodeHeader == "" {
		return errors.New("code_header is empty")
	}
	for _, lang := range hts.Languages {
		if c.Greetings[lang] == "" {
			return fmt.Errorf("greetings: missing %s", lang)
		}
		if c.Closings[lang] == "" {
			return fmt.Errorf("closings: missing %s", lang)
		}
		if c.QuestionTitles[lang] == "" {
			return fmt.Errorf("question_titles: missing %s", lang)
		}
	}
	return nil
}

// LabelMapping returns the parsed column to labels mapping.
func (c *Config) LabelMapping() content.Mapping {
	return content.ParseMapping(c.Mapping)
}

// Layout returns the document layout config.
func (c *Config) Layout() docx.LayoutConfig {
	return docx.LayoutConfig{
		Greetings:      c.Greetings,
		Closings:       c.Closings,
		QuestionTitles: c.QuestionTitles,
		Signature:      c.Signature,
	}
}
