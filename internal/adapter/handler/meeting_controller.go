package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/dto"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/cache"
	aiuse "github.com/johnquangdev/meeting-scribe/internal/usecase/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// MeetingController handles the summarization endpoints
type MeetingController struct {
	svc    aiuse.Service
	store  *cache.SummaryStore
	cfg    *config.Config
	logger *zap.Logger
}

// NewMeetingController creates a new meeting controller
func NewMeetingController(svc aiuse.Service, store *cache.SummaryStore, cfg *config.Config, logger *zap.Logger) *MeetingController {
	return &MeetingController{svc: svc, store: store, cfg: cfg, logger: logger}
}

// SummarizeMeeting runs the full pipeline over an uploaded recording
// @Summary      Summarize a meeting recording
// @Description  Accepts an audio upload, transcribes it and returns the structured summary
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio   formData  file    true   "Meeting audio (mp3, wav, m4a, flac)"
// @Param        format  formData  string  false  "Audio format override; defaults to the file extension"
// @Success      200  {object}  map[string]interface{}  "Structured summary"
// @Failure      400  {object}  map[string]interface{}  "Unsupported format, empty or oversized audio"
// @Failure      502  {object}  map[string]interface{}  "AI provider rejected the request"
// @Failure      503  {object}  map[string]interface{}  "AI provider unavailable after retries"
// @Router       /meetings/summarize [post]
func (mc *MeetingController) SummarizeMeeting(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrInvalidArgument("audio file is required"))
	}

	if max := mc.cfg.Pipeline.MaxUploadBytes; fileHeader.Size > max {
		return HandleError(mc.logger, c, errors.ErrAudioTooLarge(fileHeader.Size, max))
	}

	format := c.FormValue("format")
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrInternal(err))
	}

	if mc.logger != nil {
		mc.logger.Info("📥 Audio upload received",
			zap.String("filename", fileHeader.Filename),
			zap.String("format", format),
			zap.Int64("size_bytes", fileHeader.Size))
	}

	record, err := mc.svc.ProcessAudio(c.Request().Context(), audio, format)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}

	mc.store.Put(record)

	return HandleSuccess(mc.logger, c, presenter.ToSummaryResponse(record))
}

// SummarizeTranscript summarizes transcript text the caller already has
// @Summary      Summarize a transcript
// @Description  Skips transcription and summarizes the provided transcript text
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.SummarizeTranscriptRequest  true  "Transcript text"
// @Success      200      {object}  map[string]interface{}          "Structured summary"
// @Failure      400      {object}  map[string]interface{}          "Empty transcript"
// @Router       /transcripts/summarize [post]
func (mc *MeetingController) SummarizeTranscript(c echo.Context) error {
	var req dto.SummarizeTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(mc.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(mc.logger, c, err)
	}

	record, err := mc.svc.ProcessTranscript(c.Request().Context(), req.Transcript)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}

	mc.store.Put(record)

	return HandleSuccess(mc.logger, c, presenter.ToSummaryResponse(record))
}
