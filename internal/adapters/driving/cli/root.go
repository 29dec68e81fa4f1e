// Package cli implements the docscout command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docscout-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "docscout",
	Short: "AI-assisted document search",
	Long: `docscout scans a folder of documents, extracts their text and asks
an AI model which ones are relevant to your query. Results are written
to a Markdown report with scores, summaries and excerpts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}
