package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zxzuuup/htsmail/internal/clipboard"
	"github.com/zxzuuup/htsmail/internal/processor"
	"github.com/zxzuuup/htsmail/internal/session"
)

var generateCmd = &cobra.Command{
	Use:   "generate <code>...",
	Short: "Generate the email document for one or more HTS codes",
	Long: `Generate a Word document with the English and Chinese email
sections for each code. Duplicate codes are processed once.

Example:
  htsmail generate 84011000
  htsmail generate 7601.10 84011000 --copy
  htsmail generate 84011000 -o seller.docx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Bool("copy", false, "copy the last result to the clipboard")
	generateCmd.Flags().BoolP("quiet", "q", false, "only print the summary")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	copyLast, _ := cmd.Flags().GetBool("copy")
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logf := func(msg string) { fmt.Fprintln(out, msg) }
	if quiet {
		logf = processor.Discard
	}

	s, err := session.Open(cfg, logf)
	if err != nil {
		return err
	}

	codes := processor.SplitCodes(strings.Join(args, " "))
	logger.Debug("generating", "codes", codes)

	results, err := s.Run(codes, logf)
	if err != nil {
		return err
	}

	var generated int
	for _, r := range results {
		if r.Err != nil {
			logger.Warn("partial result", "code", r.Code, "err", r.Err)
		}
		if !r.Empty() {
			generated++
		}
	}
	fmt.Fprintf(out, "\n%d/%d codes produced content, saved to %s\n", generated, len(results), s.OutputFile())

	if copyLast && len(results) > 0 {
		if err := clipboard.Write(session.DisplayText(results[len(results)-1])); err != nil {
			logger.Warn("could not copy to clipboard", "err", err)
		} else {
			fmt.Fprintln(out, "Copied to clipboard!")
		}
	}

	return nil
}
