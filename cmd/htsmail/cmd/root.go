// Package cmd contains all CLI commands for the htsmail tool.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zxzuuup/htsmail/internal/config"
	"github.com/zxzuuup/htsmail/internal/processor"
	"github.com/zxzuuup/htsmail/internal/session"
	"github.com/zxzuuup/htsmail/internal/tui"
)

var (
	cfgFile string
	logger  = log.NewWithOptions(os.Stderr, log.Options{Prefix: "htsmail"})
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "htsmail",
	Short: "Generate bilingual seller emails from HTS codes",
	Long: `htsmail matches HTS tariff codes against a reference workbook and
assembles the English and Chinese email blurbs that apply to them into a
single Word document.

Inputs:
  - Reference table (HTS_DB.xlsx or a SQLite database): one column per
    regulatory issue, each cell a code prefix
  - Blurb workbook (EmailBlurb.xlsx): label, English blurb, Chinese blurb,
    with <RED>, <BOLD> and <REDBOLD> emphasis tags

Running 'htsmail' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/htsmail)")
	flags.Bool("verbose", false, "verbose output")
	flags.String("reference", "", "reference table (.xlsx, .db or .sqlite)")
	flags.String("table", "", "table name when the reference is a SQLite database")
	flags.String("templates", "", "email blurb workbook (.xlsx)")
	flags.StringP("output", "o", "", "output document (.docx)")

	for _, name := range []string{"verbose", "reference", "table", "templates", "output"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.Set("config_dir", filepath.Join(home, ".config", "htsmail"))
	}

	viper.SetEnvPrefix("HTSMAIL")
	viper.AutomaticEnv()

	if viper.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads config.yaml and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	dir := getConfigDir()
	cfg, err := config.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		key string
		dst *string
	}{
		{"reference", &cfg.ReferenceFile},
		{"table", &cfg.ReferenceTable},
		{"templates", &cfg.TemplateFile},
		{"output", &cfg.OutputFile},
	}
	for _, o := range overrides {
		if v := viper.GetString(o.key); v != "" {
			*o.dst = v
		}
	}

	logger.Debug("configuration loaded",
		"dir", dir,
		"reference", cfg.ReferenceFile,
		"templates", cfg.TemplateFile,
		"output", cfg.OutputFile)
	return cfg, nil
}

// openSession loads both input files for the TUI.
func openSession(cfg *config.Config) tui.OpenFunc {
	return func(logf processor.LogFunc) (tui.Runner, error) {
		s, err := session.Open(cfg, logf)
		if err != nil {
			logger.Debug("loading input files failed", "err", err)
			return nil, err
		}
		return s, nil
	}
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.NewApp(openSession(cfg), cfg.OutputFile),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
