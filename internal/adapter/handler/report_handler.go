package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/dto"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
)

// Report handles summary retrieval and export endpoints
type Report struct {
	store    *cache.SummaryStore
	exporter *report.Exporter
	logger   *zap.Logger
}

// NewReport creates a new report handler
func NewReport(store *cache.SummaryStore, exporter *report.Exporter, logger *zap.Logger) *Report {
	return &Report{store: store, exporter: exporter, logger: logger}
}

// GetSummary returns a stored summary by ID
// @Summary      Get a meeting summary
// @Description  Returns a previously generated summary while it is still retained
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string                  true  "Summary ID (UUID)"
// @Success      200 {object}  map[string]interface{}  "Structured summary"
// @Failure      404 {object}  map[string]interface{}  "Summary not found or expired"
// @Router       /summaries/{id} [get]
func (h *Report) GetSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("summary ID must be a valid UUID"))
	}

	record, ok := h.store.Get(id)
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("summary"))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(record))
}

// ExportSummary downloads a stored summary in the requested format
// @Summary      Export a meeting summary
// @Description  Renders a stored summary as json, markdown, text or xlsx and streams it as a download
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "Summary ID (UUID)"
// @Param        format  query  string  false  "Export format (json, markdown, text, xlsx); defaults to json"
// @Success      200  {file}    file                    "Rendered report"
// @Failure      400  {object}  map[string]interface{}  "Unknown export format"
// @Failure      404  {object}  map[string]interface{}  "Summary not found or expired"
// @Router       /summaries/{id}/export [get]
func (h *Report) ExportSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("summary ID must be a valid UUID"))
	}

	var req dto.ExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Format == "" {
		req.Format = report.FormatJSON
	}

	record, ok := h.store.Get(id)
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("summary"))
	}

	export, err := h.exporter.Render(record, req.Format)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, export.Filename))
	return c.Blob(http.StatusOK, export.ContentType, export.Data)
}
