package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
)

func newProcessCommand(deps *Deps) *cobra.Command {
	var (
		outputFormat string
		outputPath   string
		audioFormat  string
	)

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Transcribe and summarize a meeting recording",
		Long: `Process runs the full pipeline on a local audio file:
transcription, summarization, parsing and enhancement.

Examples:
  scribe process standup.mp3
  scribe process standup.mp3 --format markdown --output standup.md
  scribe process recording.raw --audio-format wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), deps, args[0], audioFormat, outputFormat, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", report.FormatText, "Report format: text, markdown, json or xlsx")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&audioFormat, "audio-format", "", "Audio format override, defaults to the file extension")

	return cmd
}

func runProcess(ctx context.Context, deps *Deps, path, audioFormat, outputFormat, outputPath string) error {
	format, err := report.NormalizeFormat(outputFormat)
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

	audio, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}
	if audioFormat == "" {
		audioFormat = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	record, err := svc.ProcessAudio(ctx, audio, audioFormat)
	if err != nil {
		return err
	}

	export, err := report.NewExporter(logger).Render(record, format)
	if err != nil {
		return err
	}
	return writeExport(export, outputPath)
}

// writeExport prints the rendered report or writes it to a file. XLSX output
// always goes to a file; without --output it lands in the working directory
// under the generated filename.
func writeExport(export *report.Export, outputPath string) error {
	if outputPath == "" {
		if export.Format == report.FormatXLSX {
			outputPath = export.Filename
		} else {
			fmt.Println(string(export.Data))
			return nil
		}
	}
	if err := os.WriteFile(outputPath, export.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report written to %s\n", outputPath)
	return nil
}
