package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"libdb-finder/config"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "libdb",
		Short: "Count the databases a university library subscribes to",
		Long: `libdb finds a university library's database listing page, extracts the
database names from it and splits them into Chinese and foreign-language lists.

Settings are read from config.yaml (searched upward from the working directory)
and secrets from the environment (SEARCH_API_KEY, GEMINI_API_KEY, CHROME_PATH).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := config.GetConfig()
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cfg.Logging.Level = "debug"
			}
			config.InitLogger(cfg.Logging)
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewLocateCmd())
	cmd.AddCommand(NewExtractCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
