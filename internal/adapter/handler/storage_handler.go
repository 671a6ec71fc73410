package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

// Storage exposes read-only staging bucket diagnostics
type Storage struct {
	minioClient *storage.MinIOClient
	logger      *zap.Logger
}

// NewStorage creates a new storage handler over an already connected client
func NewStorage(minioClient *storage.MinIOClient, logger *zap.Logger) *Storage {
	return &Storage{minioClient: minioClient, logger: logger}
}

// BucketInfo returns bucket connection info
// @Summary      Staging bucket info
// @Description  Reports whether the audio staging bucket is reachable and how many objects it holds
// @Tags         Storage
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}  "Bucket info"
// @Failure      500  {object}  map[string]interface{}  "Failed to reach the bucket"
// @Router       /storage/info [get]
func (h *Storage) BucketInfo(c echo.Context) error {
	ctx := c.Request().Context()

	info, err := h.minioClient.GetBucketInfo(ctx)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to get bucket info", zap.Error(err))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, info)
}

// ListStagedFiles lists objects currently staged for transcription
// @Summary      List staged audio
// @Description  Lists staged audio objects, normally empty because staging objects are removed after transcription
// @Tags         Storage
// @Produce      json
// @Security     BearerAuth
// @Param        prefix  query  string  false  "Object prefix filter"
// @Success      200  {object}  map[string]interface{}  "File list"
// @Failure      500  {object}  map[string]interface{}  "Failed to list objects"
// @Router       /storage/files [get]
func (h *Storage) ListStagedFiles(c echo.Context) error {
	ctx := c.Request().Context()
	prefix := c.QueryParam("prefix")
	if prefix == "" {
		prefix = "staging/"
	}

	files, err := h.minioClient.ListFiles(ctx, prefix)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to list staged files", zap.Error(err))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"files":  files,
		"count":  len(files),
		"prefix": prefix,
	})
}
