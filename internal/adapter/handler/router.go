package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appmiddleware "github.com/johnquangdev/meeting-scribe/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/metrics"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingController *MeetingController
	reportHandler     *Report
	storageHandler    *Storage
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	meetingController *MeetingController,
	reportHandler *Report,
	storageHandler *Storage,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:               cfg,
		meetingController: meetingController,
		reportHandler:     reportHandler,
		storageHandler:    storageHandler,
		metrics:           m,
		logger:            logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = HTTPErrorHandler(rt.logger)

	// Operational endpoints stay outside the authenticated group
	e.GET("/health", rt.healthCheck)
	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics.Handler()))
	}

	// API v1 group
	v1 := e.Group("/v1")
	v1.Use(appmiddleware.EchoAuth(rt.cfg.Server.APIToken))

	rt.setupMeetingRoutes(v1)
	rt.setupSummaryRoutes(v1)
	rt.setupStorageRoutes(v1)
}

// setupMeetingRoutes configures the summarization routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	g.POST("/meetings/summarize", rt.meetingController.SummarizeMeeting)
	g.POST("/transcripts/summarize", rt.meetingController.SummarizeTranscript)
}

// setupSummaryRoutes configures summary retrieval and export routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	summaryGroup := g.Group("/summaries")
	summaryGroup.GET("/:id", rt.reportHandler.GetSummary)
	summaryGroup.GET("/:id/export", rt.reportHandler.ExportSummary)
}

// setupStorageRoutes configures staging storage diagnostics
func (rt *Router) setupStorageRoutes(g *echo.Group) {
	storageGroup := g.Group("/storage")

	if rt.storageHandler != nil {
		storageGroup.GET("/info", rt.storageHandler.BucketInfo)
		storageGroup.GET("/files", rt.storageHandler.ListStagedFiles)
	} else {
		// Placeholder routes when storage is not configured
		storageGroup.GET("/info", rt.notImplemented)
		storageGroup.GET("/files", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not enabled",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Enable object storage in the configuration to use it",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"mode":        rt.cfg.Pipeline.Mode,
	})
}
