package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"libdb-finder/config"
	"libdb-finder/services"
)

// NewLocateCmd creates the locate command.
func NewLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find the database listing page of an organization",
		Args:  cobra.NoArgs,
		RunE:  runLocateCmd,
	}

	cmd.Flags().StringP("org", "o", "", "Organization (university) name")
	cmd.Flags().StringP("format", "f", formatText, "Output format: text, markdown or json")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func runLocateCmd(cmd *cobra.Command, _ []string) error {
	org, _ := cmd.Flags().GetString("org")
	format, _ := cmd.Flags().GetString("format")

	w, err := newReportWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx := contextOf(cmd)
	svc, cleanup := services.NewFromConfig(ctx, config.GetConfig())
	defer cleanup()

	located, err := svc.Locate(ctx, org)
	if err != nil {
		return fmt.Errorf("locate %q: %w", org, err)
	}
	return w.WriteLocated(org, located)
}
