package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class across API responses and logs.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Configuration
	ErrorCode_CONFIG_INVALID     ErrorCode = 2000
	ErrorCode_CONFIG_MISSING_KEY ErrorCode = 2001

	// Input rejections, raised before any network call
	ErrorCode_INPUT_UNSUPPORTED_FORMAT ErrorCode = 3000
	ErrorCode_INPUT_TOO_LARGE          ErrorCode = 3001
	ErrorCode_INPUT_EMPTY              ErrorCode = 3002

	// Provider calls
	ErrorCode_AI_SERVICE_TRANSIENT    ErrorCode = 4000
	ErrorCode_AI_SERVICE_FATAL        ErrorCode = 4001
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4002
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 4003

	// Reports and storage
	ErrorCode_REPORT_EXPORT_FAILED       ErrorCode = 5000
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_CONFIG_INVALID:             "CONFIG_INVALID",
	ErrorCode_CONFIG_MISSING_KEY:         "CONFIG_MISSING_KEY",
	ErrorCode_INPUT_UNSUPPORTED_FORMAT:   "INPUT_UNSUPPORTED_FORMAT",
	ErrorCode_INPUT_TOO_LARGE:            "INPUT_TOO_LARGE",
	ErrorCode_INPUT_EMPTY:                "INPUT_EMPTY",
	ErrorCode_AI_SERVICE_TRANSIENT:       "AI_SERVICE_TRANSIENT",
	ErrorCode_AI_SERVICE_FATAL:           "AI_SERVICE_FATAL",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_REPORT_EXPORT_FAILED:       "REPORT_EXPORT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ERROR_CODE_%d", int32(c))
}

// AppError là custom error type cho application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Configuration Errors
func ErrInvalidConfig(field, reason string) AppError {
	return AppError{
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CONFIG_INVALID,
		Message:  "Invalid configuration",
	}.WithDetail("field", field).WithDetail("reason", reason)
}

func ErrMissingAPIKey(service string) AppError {
	return AppError{
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CONFIG_MISSING_KEY,
		Message:  fmt.Sprintf("Missing API key for %s", service),
	}.WithDetail("service", service)
}

// Input Errors
func ErrUnsupportedFormat(format string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INPUT_UNSUPPORTED_FORMAT,
		Message:  "Unsupported audio format",
	}.WithDetail("format", format)
}

func ErrAudioTooLarge(sizeBytes, limitBytes int64) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INPUT_TOO_LARGE,
		Message:  "Audio exceeds the size limit",
	}.WithDetail("size_bytes", fmt.Sprintf("%d", sizeBytes)).
		WithDetail("limit_bytes", fmt.Sprintf("%d", limitBytes))
}

func ErrEmptyInput(what string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INPUT_EMPTY,
		Message:  fmt.Sprintf("%s is empty", what),
	}
}

// AI Provider Errors
func ErrTransientService(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_AI_SERVICE_TRANSIENT,
		Message:  "AI service temporarily unavailable",
	}.WithDetail("service", service)
}

func ErrFatalService(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_AI_SERVICE_FATAL,
		Message:  "AI service call failed",
	}.WithDetail("service", service)
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

func ErrSummaryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_SUMMARY_FAILED,
		Message:  "Failed to generate summary",
	}
}

// Report Errors
func ErrReportExportFailed(format string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_REPORT_EXPORT_FAILED,
		Message:  "Failed to export report",
	}.WithDetail("format", format)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

// IsUnsupportedInput reports whether err is an input rejection raised before
// any provider call was made.
func IsUnsupportedInput(err error) bool {
	var appErr AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case ErrorCode_INPUT_UNSUPPORTED_FORMAT, ErrorCode_INPUT_TOO_LARGE, ErrorCode_INPUT_EMPTY:
		return true
	}
	return false
}

// IsTransient reports whether err means the provider may succeed on a later
// attempt. Retries have already been exhausted by the time callers see it.
func IsTransient(err error) bool {
	var appErr AppError
	return stderrors.As(err, &appErr) && appErr.Code == ErrorCode_AI_SERVICE_TRANSIENT
}

// IsFatalService reports whether err is a provider rejection that retrying
// cannot fix.
func IsFatalService(err error) bool {
	var appErr AppError
	return stderrors.As(err, &appErr) && appErr.Code == ErrorCode_AI_SERVICE_FATAL
}
