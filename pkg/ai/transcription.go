package ai

import (
	"bytes"
	"context"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/resilience"
)

// Transcriber converts uploaded audio into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, format string) (*entities.Transcript, error)
}

// InputLimits are enforced before any network call, by live and mock
// transcribers alike.
type InputLimits struct {
	MaxBytes       int64
	AllowedFormats []string
}

// ValidateAudio checks format and size against the limits and returns the
// normalized format (lowercase, no leading dot).
func ValidateAudio(audio []byte, format string, limits InputLimits) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	normalized = strings.TrimPrefix(normalized, ".")

	allowed := false
	for _, f := range limits.AllowedFormats {
		if strings.TrimPrefix(strings.ToLower(strings.TrimSpace(f)), ".") == normalized && normalized != "" {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", errors.ErrUnsupportedFormat(format)
	}

	if len(audio) == 0 {
		return "", errors.ErrEmptyInput("audio")
	}
	if limits.MaxBytes > 0 && int64(len(audio)) > limits.MaxBytes {
		return "", errors.ErrAudioTooLarge(int64(len(audio)), limits.MaxBytes)
	}

	return normalized, nil
}

// AudioStager stages audio at a URL the transcription provider can fetch,
// and removes it again once the transcript is done.
type AudioStager interface {
	Stage(ctx context.Context, data []byte, ext string) (objectName string, url string, err error)
	Remove(ctx context.Context, objectName string) error
}

// AssemblyAIConfig configures the live transcriber.
type AssemblyAIConfig struct {
	APIKey        string
	Language      string
	SpeakerLabels bool
}

// AssemblyAITranscriber transcribes audio through the AssemblyAI API.
// Without a stager the audio is uploaded straight to the provider; with one
// it is staged in object storage and fetched by URL.
type AssemblyAITranscriber struct {
	client   *aai.Client
	cfg      AssemblyAIConfig
	executor *resilience.Executor
	limits   InputLimits
	stager   AudioStager
	logger   *zap.Logger
}

func NewAssemblyAITranscriber(cfg AssemblyAIConfig, limits InputLimits, executor *resilience.Executor, stager AudioStager, logger *zap.Logger) *AssemblyAITranscriber {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &AssemblyAITranscriber{
		client:   aai.NewClient(cfg.APIKey),
		cfg:      cfg,
		executor: executor,
		limits:   limits,
		stager:   stager,
		logger:   logger,
	}
}

func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio []byte, format string) (*entities.Transcript, error) {
	normalized, err := ValidateAudio(audio, format, t.limits)
	if err != nil {
		return nil, err
	}

	if t.logger != nil {
		t.logger.Info("🎙️ Submitting audio for transcription",
			zap.Int("size_bytes", len(audio)),
			zap.String("format", normalized))
	}

	var transcript aai.Transcript
	err = t.executor.Execute(ctx, "assemblyai.transcribe", func(ctx context.Context) error {
		var callErr error
		transcript, callErr = t.submit(ctx, audio, normalized)
		return callErr
	}, ClassifyProviderError)
	if err != nil {
		return nil, WrapProviderError("assemblyai", err)
	}

	result := t.toEntity(transcript)
	if t.logger != nil {
		t.logger.Info("✅ Transcription completed",
			zap.Int("text_length", len(result.Text)),
			zap.Int("utterances", len(result.Utterances)),
			zap.Float64("duration_seconds", result.DurationSeconds))
	}
	return result, nil
}

func (t *AssemblyAITranscriber) submit(ctx context.Context, audio []byte, ext string) (aai.Transcript, error) {
	audioURL := ""
	if t.stager != nil {
		objectName, stagedURL, err := t.stager.Stage(ctx, audio, ext)
		if err != nil {
			return aai.Transcript{}, err
		}
		defer func() {
			if rmErr := t.stager.Remove(context.WithoutCancel(ctx), objectName); rmErr != nil && t.logger != nil {
				t.logger.Warn("⚠️ Failed to remove staged audio",
					zap.String("object", objectName),
					zap.Error(rmErr))
			}
		}()
		audioURL = stagedURL
	} else {
		uploadURL, err := t.client.Upload(ctx, bytes.NewReader(audio))
		if err != nil {
			return aai.Transcript{}, err
		}
		audioURL = uploadURL
	}

	params := &aai.TranscriptOptionalParams{
		LanguageCode:  aai.TranscriptLanguageCode(t.cfg.Language),
		SpeakerLabels: aai.Bool(t.cfg.SpeakerLabels),
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return aai.Transcript{}, err
	}

	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown provider error"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return aai.Transcript{}, &TranscriptFailedError{Reason: reason}
	}

	return transcript, nil
}

func (t *AssemblyAITranscriber) toEntity(tr aai.Transcript) *entities.Transcript {
	out := &entities.Transcript{
		Language:  string(tr.LanguageCode),
		ModelUsed: "assemblyai",
	}
	if tr.Text != nil {
		out.Text = *tr.Text
	}
	if tr.Confidence != nil {
		out.Confidence = *tr.Confidence
	}
	if tr.AudioDuration != nil {
		out.DurationSeconds = *tr.AudioDuration
	}
	for _, utt := range tr.Utterances {
		u := entities.Utterance{}
		if utt.Speaker != nil {
			u.Speaker = *utt.Speaker
		}
		if utt.Text != nil {
			u.Text = *utt.Text
		}
		if utt.Start != nil {
			u.Start = float64(*utt.Start) / 1000.0
		}
		if utt.End != nil {
			u.End = float64(*utt.End) / 1000.0
		}
		if utt.Confidence != nil {
			u.Confidence = *utt.Confidence
		}
		out.Utterances = append(out.Utterances, u)
	}
	return out
}
