// cmd/lptcap/analyze.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/lpt-capture/internal/analyze"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <capture.csv>",
	Short: "Summarise timing and data statistics of a capture file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Reading %s...\n", args[0])

	rep, err := analyze.Analyze(f)
	if err != nil {
		return err
	}
	rep.Print(cmd.OutOrStdout())
	return nil
}
