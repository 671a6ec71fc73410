package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
)

func newSummarizeCommand(deps *Deps) *cobra.Command {
	var (
		outputFormat string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "summarize <transcript-file>",
		Short: "Summarize a meeting transcript you already have",
		Long: `Summarize skips transcription and feeds an existing transcript
straight to the summarization stage. Pass "-" to read from stdin.

Examples:
  scribe summarize notes.txt
  scribe summarize notes.txt --format markdown
  cat notes.txt | scribe summarize -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd.Context(), deps, args[0], outputFormat, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", report.FormatText, "Report format: text, markdown, json or xlsx")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

func runSummarize(ctx context.Context, deps *Deps, path, outputFormat, outputPath string) error {
	format, err := report.NormalizeFormat(outputFormat)
	if err != nil {
		return err
	}

	transcript, err := readTranscript(path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(deps)
	if err != nil {
		return err
	}
	logger, err := deps.NewLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, err := deps.BuildService(cfg, logger)
	if err != nil {
		return err
	}

	record, err := svc.ProcessTranscript(ctx, transcript)
	if err != nil {
		return err
	}

	export, err := report.NewExporter(logger).Render(record, format)
	if err != nil {
		return err
	}
	return writeExport(export, outputPath)
}

func readTranscript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript file: %w", err)
	}
	return string(data), nil
}
