package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	// Non-AppError => internal server error
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// HTTPErrorHandler renders errors that escape a handler (middleware
// rejections, unknown routes) in the same envelope HandleError uses.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr errors.AppError
		if stdErrors.As(err, &appErr) {
			info := ""
			if appErr.Raw != nil {
				info = appErr.Raw.Error()
			}
			_ = c.JSON(appErr.HTTPCode, errs{
				Code:    appErr.Code,
				Message: appErr.Message,
				Info:    info,
			})
			return
		}

		var httpErr *echo.HTTPError
		if stdErrors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, errs{
				Code:    codeForStatus(httpErr.Code),
				Message: fmt.Sprintf("%v", httpErr.Message),
			})
			return
		}

		if logger != nil {
			logger.Error("http.response.unhandled",
				zap.String("request_id", getRequestID(c)),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		_ = c.JSON(http.StatusInternalServerError, errs{
			Code:    errors.ErrorCode_INTERNAL,
			Message: "Internal server error",
			Info:    err.Error(),
		})
	}
}

func codeForStatus(status int) errors.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return errors.ErrorCode_NOT_FOUND
	case http.StatusUnauthorized:
		return errors.ErrorCode_UNAUTHENTICATED
	case http.StatusBadRequest:
		return errors.ErrorCode_INVALID_ARGUMENT
	default:
		return errors.ErrorCode_INTERNAL
	}
}
