// Command scribe runs the meeting summarization pipeline from the terminal.
// It processes recordings and transcripts in-process, without an API server,
// and renders the result in any of the export formats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	aiuse "github.com/johnquangdev/meeting-scribe/internal/usecase/ai"
	pkgai "github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/resilience"
)

var (
	verbose      bool
	envFile      string
	modeOverride string
)

// loadConfig resolves the configuration for one command run, applying the
// --env-file and --mode flags before the environment is read.
func loadConfig(deps *Deps) (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Overload(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %q: %w", envFile, err)
		}
	}
	if modeOverride != "" {
		os.Setenv("MODE", modeOverride)
	}
	return deps.LoadConfig()
}

// Deps holds the dependencies shared by scribe commands. Tests replace
// individual fields to run commands against canned configs and services.
type Deps struct {
	LoadConfig   func() (*config.Config, error)
	NewLogger    func(verbose bool) (*zap.Logger, error)
	BuildService func(cfg *config.Config, logger *zap.Logger) (aiuse.Service, error)
}

// DefaultDeps returns the production dependency set.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig:   config.Load,
		NewLogger:    newLogger,
		BuildService: buildService,
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// buildService wires the same pipeline the API server runs, minus the HTTP
// layer. The CLI never stages audio in object storage; live uploads stream
// to the provider directly.
func buildService(cfg *config.Config, logger *zap.Logger) (aiuse.Service, error) {
	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:        cfg.Resilience.RetryMaxAttempts,
		RetryInitialBackoff:     cfg.Resilience.RetryInitialBackoff,
		RetryMaxBackoff:         cfg.Resilience.RetryMaxBackoff,
		RetryMaxElapsed:         cfg.Resilience.RetryMaxElapsed,
		BreakerEnabled:          cfg.Resilience.BreakerEnabled,
		BreakerMinRequests:      cfg.Resilience.BreakerMinRequests,
		BreakerFailureRatio:     cfg.Resilience.BreakerFailureRatio,
		BreakerOpenTimeout:      cfg.Resilience.BreakerOpenTimeout,
		BreakerHalfOpenMaxCalls: cfg.Resilience.BreakerHalfOpenCalls,
		OutboundRPS:             cfg.Resilience.OutboundRPS,
		OutboundBurst:           cfg.Resilience.OutboundBurst,
	}, logger)

	limits := pkgai.InputLimits{
		MaxBytes:       cfg.Pipeline.MaxUploadBytes,
		AllowedFormats: cfg.Pipeline.AllowedFormats,
	}

	var (
		transcriber pkgai.Transcriber
		summarizer  pkgai.Summarizer
	)
	if cfg.IsLive() {
		transcriber = pkgai.NewAssemblyAITranscriber(pkgai.AssemblyAIConfig{
			APIKey:        cfg.AssemblyAI.APIKey,
			Language:      cfg.AssemblyAI.Language,
			SpeakerLabels: cfg.AssemblyAI.SpeakerLabels,
		}, limits, executor, nil, logger)
		summarizer = pkgai.NewGroqSummarizer(pkgai.GroqConfig{
			APIKey:      cfg.Groq.APIKey,
			BaseURL:     cfg.Groq.BaseURL,
			Model:       cfg.Groq.Model,
			Temperature: cfg.Groq.Temperature,
			MaxTokens:   cfg.Groq.MaxTokens,
		}, executor, logger)
	} else {
		transcriber = pkgai.NewMockTranscriber(limits)
		summarizer = pkgai.NewMockSummarizer()
	}

	promptTemplate, err := pkgai.LoadPromptTemplate(cfg.Pipeline.PromptTemplateFile)
	if err != nil {
		return nil, err
	}

	return aiuse.NewAIService(transcriber, summarizer, promptTemplate, cfg, nil, logger), nil
}

// NewRootCommand builds the scribe command tree.
func NewRootCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	root := &cobra.Command{
		Use:   "scribe",
		Short: "Turn meeting recordings into structured summaries",
		Long: `Scribe runs the meeting summarization pipeline locally.

It transcribes a recording (or takes a ready transcript), asks the
configured language model for a structured summary and renders topics,
decisions and action items as text, markdown, JSON or XLSX.

Configuration comes from the environment and an optional .env file,
exactly like the API server. With MODE=mock no provider keys are needed.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "Load configuration from this env file instead of ./.env")
	root.PersistentFlags().StringVar(&modeOverride, "mode", "", "Override the provider mode (mock or live)")

	root.AddCommand(
		newProcessCommand(deps),
		newSummarizeCommand(deps),
		newDemoCommand(deps),
		newVersionCommand(),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(DefaultDeps())
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
