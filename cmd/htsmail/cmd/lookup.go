package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/matcher"
	"github.com/zxzuuup/htsmail/internal/session"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <code>...",
	Short: "Show the reference columns and labels an HTS code matches",
	Long: `Look up HTS codes in the reference table and display:
  - the columns holding a prefix of the code
  - the email labels those columns map to

No document is written.

Example:
  htsmail lookup 84011000
  htsmail lookup 7601 7208`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	table, err := session.LoadReference(cfg)
	if err != nil {
		return err
	}
	mapping := cfg.LabelMapping()
	out := cmd.OutOrStdout()

	for _, code := range args {
		fmt.Fprintf(out, "Code: %s\n", code)

		columns := matcher.FindMatchingColumns(code, table)
		if len(columns) == 0 {
			fmt.Fprintln(out, "  Columns: (none)")
			fmt.Fprintln(out)
			continue
		}

		fmt.Fprintln(out, "  Columns:")
		for i, c := range columns {
			fmt.Fprintf(out, "    %d. %s\n", i+1, c)
		}

		labels := content.ResolveLabels(columns, mapping)
		if len(labels) == 0 {
			fmt.Fprintln(out, "  Labels: (none mapped)")
		} else {
			fmt.Fprintln(out, "  Labels:")
			for _, l := range labels {
				fmt.Fprintf(out, "    - %s\n", l)
			}
		}
		fmt.Fprintln(out)
	}

	return nil
}
