package cmd

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for generating seller emails.

Features:
  - Enter one or more HTS codes separated by spaces
  - Follow progress in the log pane
  - Browse every generated result in the history list
  - Copy the selected result to the clipboard

Controls:
  Enter   Generate
  Tab     Switch between input and history
  y       Copy selected result
  q       Quit (from history)`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
