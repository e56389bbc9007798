package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"libdb-finder/config"
	"libdb-finder/services"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract and classify database names from a saved HTML file",
		Long: `Extract runs only the extraction and classification steps on a local
HTML document (UTF-8). Use "-" to read from standard input.

Examples:
  libdb extract --file saved.html
  curl -s https://library.example.edu.cn/db | libdb extract --file - --raw`,
		Args: cobra.NoArgs,
		RunE: runExtractCmd,
	}

	cmd.Flags().StringP("file", "i", "", `HTML file to read ("-" for stdin)`)
	cmd.Flags().Bool("raw", false, "Also print the raw candidate strings before filtering")
	cmd.Flags().StringP("format", "f", formatText, "Output format: text, markdown or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	raw, _ := cmd.Flags().GetBool("raw")
	format, _ := cmd.Flags().GetString("format")

	w, err := newReportWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	// 추출만 하므로 검색/수집/저장소는 연결하지 않는다.
	svc := services.NewAnalysisService(config.GetConfig(), services.Deps{})
	html := string(data)

	result := extraction{Result: svc.Extract(html)}
	if raw {
		result.Candidates = svc.Candidates(html)
	}
	return w.WriteExtraction(result)
}
