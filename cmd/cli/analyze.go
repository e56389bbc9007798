package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"libdb-finder/config"
	"libdb-finder/services"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Locate, fetch and classify a library's database list",
		Long: `Analyze runs the whole pipeline for one organization.

Examples:
  # Search for the listing page, then extract
  libdb analyze --org 复旦大学

  # Skip the search and use a known page, rendered in a headless browser
  libdb analyze --url https://library.example.edu.cn/db --mode dynamic

  # Markdown report
  libdb analyze --org 复旦大学 --format markdown`,
		Args: cobra.NoArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("org", "o", "", "Organization (university) name")
	cmd.Flags().StringP("url", "u", "", "Listing page URL; skips the search step")
	cmd.Flags().StringP("mode", "m", "", "Fetch mode: static, dynamic or auto (default from config)")
	cmd.Flags().StringP("format", "f", formatText, "Output format: text, markdown or json")

	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	org, _ := cmd.Flags().GetString("org")
	url, _ := cmd.Flags().GetString("url")
	mode, _ := cmd.Flags().GetString("mode")
	format, _ := cmd.Flags().GetString("format")

	if org == "" && url == "" {
		return fmt.Errorf("either --org or --url is required")
	}
	w, err := newReportWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup := services.NewFromConfig(ctx, config.GetConfig())
	defer cleanup()

	report := svc.Analyze(ctx, services.AnalyzeInput{Organization: org, URL: url, Mode: mode})
	if err := w.WriteReport(report); err != nil {
		return err
	}
	if report.Failed() {
		return fmt.Errorf("analysis failed: %s (%s)", report.Outcome, report.Reason)
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
