package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

func newDemoCommand(deps *Deps) *cobra.Command {
	var (
		outputFormat string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the pipeline end to end with the built-in mock providers",
		Long: `Demo pushes a canned recording through the whole pipeline using
the mock transcriber and summarizer. No provider keys are needed, so it
is the quickest way to see what a rendered summary looks like.

Examples:
  scribe demo
  scribe demo --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), deps, outputFormat, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", report.FormatText, "Report format: text, markdown, json or xlsx")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

func runDemo(ctx context.Context, deps *Deps, outputFormat, outputPath string) error {
	format, err := report.NormalizeFormat(outputFormat)
	if err != nil {
		return err
	}

	// The demo never talks to live providers, whatever the environment or
	// the --mode flag says.
	os.Setenv("MODE", config.ModeMock)
	modeOverride = ""

	cfg, err := loadConfig(deps)
	if err != nil {
		return err
	}
	cfg.Pipeline.Mode = config.ModeMock

	logger, err := deps.NewLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, err := deps.BuildService(cfg, logger)
	if err != nil {
		return err
	}

	record, err := svc.ProcessAudio(ctx, []byte("demo recording"), "mp3")
	if err != nil {
		return err
	}

	export, err := report.NewExporter(logger).Render(record, format)
	if err != nil {
		return err
	}
	return writeExport(export, outputPath)
}
