package ai

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	pkgai "github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/metrics"
)

// Service defines the summarization pipeline
type Service interface {
	// ProcessAudio runs the full pipeline: transcribe, summarize, parse, enhance.
	ProcessAudio(ctx context.Context, audio []byte, format string) (*entities.SummaryRecord, error)
	// ProcessTranscript skips transcription and summarizes provided text.
	ProcessTranscript(ctx context.Context, transcriptText string) (*entities.SummaryRecord, error)
}

type aiService struct {
	transcriber    pkgai.Transcriber
	summarizer     pkgai.Summarizer
	parser         *Parser
	enhancer       *Enhancer
	promptTemplate string
	cfg            *config.Config
	metrics        *metrics.Metrics
	logger         *zap.Logger
	pipelineSlots  chan struct{} // Limit concurrent pipeline runs
}

// NewAIService constructs the pipeline service. The prompt template is
// resolved by the caller so a bad template file fails at startup, not on
// the first request.
func NewAIService(
	transcriber pkgai.Transcriber,
	summarizer pkgai.Summarizer,
	promptTemplate string,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) Service {
	slots := cfg.Pipeline.MaxConcurrent
	if slots < 1 {
		slots = 1
	}

	return &aiService{
		transcriber:    transcriber,
		summarizer:     summarizer,
		parser:         NewParser(),
		enhancer:       NewEnhancer(logger),
		promptTemplate: promptTemplate,
		cfg:            cfg,
		metrics:        m,
		logger:         logger,
		pipelineSlots:  make(chan struct{}, slots),
	}
}

// ProcessAudio transcribes uploaded audio and turns it into a structured
// summary record. Input validation failures surface before any provider
// call is made.
func (s *aiService) ProcessAudio(ctx context.Context, audio []byte, format string) (*entities.SummaryRecord, error) {
	start := time.Now()

	release, err := s.acquireSlot(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if s.logger != nil {
		s.logger.Info("🔒 Acquired pipeline slot",
			zap.String("format", format),
			zap.Int("audio_bytes", len(audio)))
	}

	transcript, err := s.transcribe(ctx, audio, format)
	if err != nil {
		s.recordRun(s.runStatus(err))
		return nil, err
	}

	record, err := s.buildRecord(ctx, transcript)
	if err != nil {
		s.recordRun("error")
		return nil, err
	}

	record.ProcessingTimeMS = time.Since(start).Milliseconds()
	s.recordRun("success")
	return record, nil
}

// ProcessTranscript summarizes text the caller already has, bypassing the
// transcription stage entirely.
func (s *aiService) ProcessTranscript(ctx context.Context, transcriptText string) (*entities.SummaryRecord, error) {
	if strings.TrimSpace(transcriptText) == "" {
		return nil, errors.ErrEmptyInput("transcript")
	}

	start := time.Now()

	release, err := s.acquireSlot(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	transcript := &entities.Transcript{Text: transcriptText}

	record, err := s.buildRecord(ctx, transcript)
	if err != nil {
		s.recordRun("error")
		return nil, err
	}

	record.ProcessingTimeMS = time.Since(start).Milliseconds()
	s.recordRun("success")
	return record, nil
}

func (s *aiService) acquireSlot(ctx context.Context) (func(), error) {
	select {
	case s.pipelineSlots <- struct{}{}:
		return func() { <-s.pipelineSlots }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *aiService) transcribe(ctx context.Context, audio []byte, format string) (*entities.Transcript, error) {
	stageStart := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Pipeline.CallTimeout)
	defer cancel()

	transcript, err := s.transcriber.Transcribe(callCtx, audio, format)
	s.recordStage("transcribe", stageStart)
	if err == nil || !errors.IsUnsupportedInput(err) {
		s.recordProvider(s.transcriberName(), err)
	}
	if err != nil {
		var appErr errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.ErrTranscriptionFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Transcription stage done",
			zap.Float64("duration_seconds", transcript.DurationSeconds),
			zap.Int("utterances", len(transcript.Utterances)))
	}
	return transcript, nil
}

// buildRecord runs the summarize, parse and enhance stages over a transcript.
func (s *aiService) buildRecord(ctx context.Context, transcript *entities.Transcript) (*entities.SummaryRecord, error) {
	stageStart := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Pipeline.CallTimeout)
	defer cancel()

	raw, err := s.summarizer.Summarize(callCtx, transcript.FormatForPrompt(), s.promptTemplate)
	s.recordStage("summarize", stageStart)
	s.recordProvider(s.summarizerName(), err)
	if err != nil {
		var appErr errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.ErrSummaryFailed(err)
	}

	parseStart := time.Now()
	summary, degraded := s.parser.Parse(raw)
	s.recordStage("parse", parseStart)
	if degraded {
		if s.metrics != nil {
			s.metrics.RecordParseDegraded()
		}
		if s.logger != nil {
			s.logger.Warn("⚠️ Summary response had no recognizable structure, keeping raw text",
				zap.Int("response_bytes", len(raw)))
		}
	}
	summary.RawTranscript = transcript.Text

	insights := s.enhancer.Enhance(summary, transcript)

	record := entities.NewSummaryRecord()
	record.Summary = summary
	record.Insights = insights
	record.Transcript = transcript
	record.Degraded = degraded
	record.ModelUsed = s.summarizerModel()

	if s.metrics != nil {
		s.metrics.RecordActionItems(len(summary.ActionItems))
	}
	if s.logger != nil {
		s.logger.Info("✅ Meeting summary ready",
			zap.String("id", record.ID.String()),
			zap.Int("topics", len(summary.Topics)),
			zap.Int("decisions", len(summary.Decisions)),
			zap.Int("action_items", len(summary.ActionItems)),
			zap.Bool("degraded", degraded))
	}
	return record, nil
}

func (s *aiService) runStatus(err error) string {
	if err == nil {
		return "success"
	}
	if errors.IsUnsupportedInput(err) {
		return "rejected"
	}
	return "error"
}

func (s *aiService) transcriberName() string {
	if s.cfg.IsLive() {
		return "assemblyai"
	}
	return "mock"
}

func (s *aiService) summarizerName() string {
	if s.cfg.IsLive() {
		return "groq"
	}
	return "mock"
}

func (s *aiService) summarizerModel() string {
	if s.cfg.IsLive() {
		return s.cfg.Groq.Model
	}
	return "mock"
}

func (s *aiService) recordRun(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordPipelineRun(s.cfg.Pipeline.Mode, status)
}

func (s *aiService) recordStage(stage string, since time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordStage(stage, time.Since(since))
}

func (s *aiService) recordProvider(service string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.RecordProviderRequest(service, outcome)
}
