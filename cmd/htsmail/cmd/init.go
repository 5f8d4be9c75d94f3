package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zxzuuup/htsmail/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize htsmail configuration",
	Long: `Write the default configuration to config.yaml in your config directory.

The file holds:
  - input and output file names
  - the reference column to email label mapping
  - the emphasis tags used in the blurb workbook
  - greetings, closings, question titles and the signature

Edit the file to change any of them; keys you delete fall back to the
defaults.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := filepath.Join(getConfigDir(), config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the signature and mapping in config.yaml")
	fmt.Fprintln(out, "  2. Run 'htsmail lookup <code>' to check a code against the reference table")
	fmt.Fprintln(out, "  3. Run 'htsmail generate <code>...' or just 'htsmail' for the TUI")

	return nil
}
