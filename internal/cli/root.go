package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toolrep",
	Short: "Behavioral analysis pipeline for the tool representation study",
	Long: `toolrep analyzes behavioral data from an fMRI study of tool representation.

It parses PsychoPy experiment logs and AFNI condition-timing files into
per-trial tables, runs the planned statistical comparisons, and writes
publication-ready tables, reports and figures.`,
}

// Persistent flags
var flagVerbose bool

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}
