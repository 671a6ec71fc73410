package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/resilience"
)

// HTTPStatusError carries the provider HTTP status so classification can
// tell retryable failures from hard rejections.
type HTTPStatusError struct {
	Service    string
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "provider status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("%s %s status: %s", e.Service, e.Operation, e.Status)
	}
	return fmt.Sprintf("%s %s status: %s: %s", e.Service, e.Operation, e.Status, strings.TrimSpace(e.Body))
}

func newHTTPStatusError(service, operation string, resp *http.Response) *HTTPStatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		Service:    service,
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// TranscriptFailedError means the provider accepted the audio but could not
// produce a transcript. Retrying the same audio will not help.
type TranscriptFailedError struct {
	Reason string
}

func (e *TranscriptFailedError) Error() string {
	if e == nil || e.Reason == "" {
		return "transcript failed"
	}
	return "transcript failed: " + e.Reason
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// ClassifyProviderError is the resilience classifier shared by both
// providers. Timeouts and 408/429/5xx are retryable; other HTTP rejections
// and provider-side transcript failures are permanent.
func ClassifyProviderError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	var statusErr *HTTPStatusError
	if stderrors.As(err, &statusErr) {
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return resilience.ErrorClassification{
				Retryable:     true,
				RecordFailure: true,
			}
		}
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	var failedErr *TranscriptFailedError
	if stderrors.As(err, &failedErr) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}

// WrapProviderError maps an exhausted call error onto the error taxonomy.
// Whatever was retryable ends up transient; hard provider rejections end up
// fatal. Input rejections pass through untouched.
func WrapProviderError(service string, err error) error {
	if err == nil {
		return nil
	}

	var appErr errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}

	if stderrors.Is(err, context.Canceled) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) || resilience.IsCircuitOpen(err) {
		return errors.ErrTransientService(service, err)
	}

	var statusErr *HTTPStatusError
	if stderrors.As(err, &statusErr) {
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return errors.ErrTransientService(service, err)
		}
		return errors.ErrFatalService(service, err)
	}

	var failedErr *TranscriptFailedError
	if stderrors.As(err, &failedErr) {
		return errors.ErrFatalService(service, err)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.ErrTransientService(service, err)
	}

	return errors.ErrFatalService(service, err)
}
