package validator

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-scribe/errors"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	// Registration only fails for blank tags or nil funcs.
	_ = v.RegisterValidation("exportformat", validExportFormat)
	return &CustomValidator{v: v}
}

// validExportFormat accepts the export format names and short spellings the
// report layer understands.
func validExportFormat(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "json", "markdown", "md", "text", "txt", "plain", "xlsx", "excel":
		return true
	}
	return false
}

// Validate performs struct validation. Failures come back as an invalid
// payload error carrying one detail per offending field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		appErr := errors.ErrInvalidPayload()
		for _, fe := range fieldErrs {
			appErr = appErr.WithDetail(strings.ToLower(fe.Field()), fe.Tag())
		}
		return appErr
	}

	return err
}
