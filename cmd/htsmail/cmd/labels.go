package cmd

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/zxzuuup/htsmail/internal/config"
	"github.com/zxzuuup/htsmail/internal/content"
	"github.com/zxzuuup/htsmail/internal/session"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the column to label mapping and the blurb labels",
	Long: `List the configured mapping from reference columns to email labels,
then the labels defined in the blurb workbook. Labels are sorted by their
pinyin reading so Chinese and English labels interleave alphabetically.

Labels used by the mapping but missing from the workbook are flagged.`,
	RunE: runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}

// printMapping writes one aligned row per column.
func printMapping(w io.Writer, mapping content.Mapping) {
	columns := make([]string, 0, len(mapping))
	width := 0
	for c := range mapping {
		columns = append(columns, c)
		if cw := runewidth.StringWidth(c); cw > width {
			width = cw
		}
	}

	for _, c := range content.SortLabels(columns) {
		labels := mapping[c]
		if len(labels) == 0 {
			fmt.Fprintf(w, "  %s  (none)\n", runewidth.FillRight(c, width))
			continue
		}
		for i, l := range labels {
			name := ""
			if i == 0 {
				name = c
			}
			fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(name, width), l)
		}
	}
}

func runLabels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return listLabels(cmd.OutOrStdout(), cfg)
}

// listLabels prints the mapping, then the workbook labels and any mapped
// label the workbook lacks.
func listLabels(out io.Writer, cfg *config.Config) error {
	mapping := cfg.LabelMapping()

	fmt.Fprintln(out, "Mapping:")
	printMapping(out, mapping)
	fmt.Fprintln(out)

	s, err := session.Open(cfg, nil)
	if err != nil {
		return fmt.Errorf("loading workbooks: %w", err)
	}

	defined := make(map[string]bool)
	fmt.Fprintln(out, "Blurb labels:")
	for _, l := range s.TemplateLabels() {
		defined[l] = true
		fmt.Fprintf(out, "  %s\n", l)
	}

	var missing []string
	seen := make(map[string]bool)
	for _, labels := range mapping {
		for _, l := range labels {
			if !defined[l] && !seen[l] {
				seen[l] = true
				missing = append(missing, l)
			}
		}
	}
	if len(missing) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Mapped but missing from the workbook:")
		for _, l := range content.SortLabels(missing) {
			fmt.Fprintf(out, "  ❌ %s\n", l)
		}
	}

	return nil
}
