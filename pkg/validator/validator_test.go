package validator

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-scribe/errors"
)

type transcriptPayload struct {
	Transcript string `validate:"required,min=1"`
}

type exportQuery struct {
	Format string `validate:"omitempty,exportformat"`
}

func TestValidatePasses(t *testing.T) {
	cv := New()

	assert.NoError(t, cv.Validate(&transcriptPayload{Transcript: "hello"}))
	assert.NoError(t, cv.Validate(&exportQuery{})) // omitempty
	for _, format := range []string{"json", "markdown", "md", "text", "txt", "plain", "xlsx", "excel", "JSON"} {
		assert.NoError(t, cv.Validate(&exportQuery{Format: format}), "format %q", format)
	}
}

func TestValidateFailuresAreInvalidPayload(t *testing.T) {
	cv := New()

	err := cv.Validate(&transcriptPayload{})
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_INVALID_PAYLOAD, appErr.Code)
	assert.Equal(t, "required", appErr.Details["transcript"])
}

func TestValidateRejectsUnknownExportFormat(t *testing.T) {
	cv := New()

	err := cv.Validate(&exportQuery{Format: "pdf"})
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "exportformat", appErr.Details["format"])
}
