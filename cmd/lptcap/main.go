// cmd/lptcap/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "lptcap",
	Short:        "Parallel port bus capture",
	Long:         `Capture every edge on a 17-line parallel port bus with µs timestamps and stream one CSV record per event.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
