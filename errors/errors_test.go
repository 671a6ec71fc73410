package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := ErrInvalidArgument("format is unknown")
	assert.Equal(t, "[INVALID_ARGUMENT] format is unknown", err.Error())

	cause := stderrors.New("connection refused")
	wrapped := ErrTranscriptionFailed(cause)
	assert.Equal(t, "[AI_TRANSCRIPTION_FAILED] Audio transcription failed: connection refused", wrapped.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := ErrSummaryFailed(cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
	assert.Nil(t, ErrInvalidPayload().Unwrap())
}

func TestAppErrorMatchesAsValue(t *testing.T) {
	// Constructors return values, so errors.As must work with a value target
	// even through fmt.Errorf wrapping.
	wrapped := fmt.Errorf("pipeline stage: %w", ErrEmptyInput("audio"))

	var appErr AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, ErrorCode_INPUT_EMPTY, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestWithDetailCopies(t *testing.T) {
	base := ErrUnsupportedFormat("ogg")
	extended := base.WithDetail("hint", "convert to mp3")

	assert.Equal(t, "ogg", extended.Details["format"])
	assert.Equal(t, "convert to mp3", extended.Details["hint"])
}

func TestHTTPCodes(t *testing.T) {
	cause := stderrors.New("x")
	tests := []struct {
		name string
		err  AppError
		code int
	}{
		{"internal", ErrInternal(cause), http.StatusInternalServerError},
		{"invalid argument", ErrInvalidArgument("bad"), http.StatusBadRequest},
		{"not found", ErrNotFound("summary"), http.StatusNotFound},
		{"unauthenticated", ErrUnauthenticated(), http.StatusUnauthorized},
		{"unsupported format", ErrUnsupportedFormat("ogg"), http.StatusBadRequest},
		{"too large", ErrAudioTooLarge(10, 5), http.StatusBadRequest},
		{"empty input", ErrEmptyInput("audio"), http.StatusBadRequest},
		{"transient", ErrTransientService("groq", cause), http.StatusServiceUnavailable},
		{"fatal", ErrFatalService("groq", cause), http.StatusBadGateway},
		{"missing key", ErrMissingAPIKey("groq"), http.StatusInternalServerError},
		{"export failed", ErrReportExportFailed("xlsx", cause), http.StatusInternalServerError},
		{"storage failed", ErrStorageFailed("stage audio", cause), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.HTTPCode)
		})
	}
}

func TestIsUnsupportedInput(t *testing.T) {
	assert.True(t, IsUnsupportedInput(ErrUnsupportedFormat("ogg")))
	assert.True(t, IsUnsupportedInput(ErrAudioTooLarge(100, 10)))
	assert.True(t, IsUnsupportedInput(ErrEmptyInput("audio")))
	assert.True(t, IsUnsupportedInput(fmt.Errorf("wrapped: %w", ErrEmptyInput("audio"))))

	assert.False(t, IsUnsupportedInput(ErrTransientService("groq", stderrors.New("x"))))
	assert.False(t, IsUnsupportedInput(stderrors.New("plain")))
	assert.False(t, IsUnsupportedInput(nil))
}

func TestIsTransientAndFatal(t *testing.T) {
	cause := stderrors.New("status 503")

	assert.True(t, IsTransient(ErrTransientService("assemblyai", cause)))
	assert.False(t, IsTransient(ErrFatalService("assemblyai", cause)))
	assert.False(t, IsTransient(cause))

	assert.True(t, IsFatalService(ErrFatalService("groq", cause)))
	assert.False(t, IsFatalService(ErrTransientService("groq", cause)))
	assert.False(t, IsFatalService(nil))
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", ErrorCode_NOT_FOUND.String())
	assert.Equal(t, "ERROR_CODE_9999", ErrorCode(9999).String())
}
