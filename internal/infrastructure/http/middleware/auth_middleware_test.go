package middleware

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
)

func invoke(t *testing.T, token string, decorate func(*http.Request)) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	return EchoAuth(token)(next)(c)
}

func TestEchoAuthDisabledWithoutToken(t *testing.T) {
	err := invoke(t, "", nil)
	assert.NoError(t, err)
}

func TestEchoAuthAcceptsBearerHeader(t *testing.T) {
	err := invoke(t, "sekret", func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer sekret")
	})
	assert.NoError(t, err)
}

func TestEchoAuthBearerIsCaseInsensitive(t *testing.T) {
	err := invoke(t, "sekret", func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "bearer sekret")
	})
	assert.NoError(t, err)
}

func TestEchoAuthAcceptsCookie(t *testing.T) {
	err := invoke(t, "sekret", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "sekret"})
	})
	assert.NoError(t, err)
}

func TestEchoAuthRejectsMissingToken(t *testing.T) {
	err := invoke(t, "sekret", nil)
	requireUnauthenticated(t, err)
}

func TestEchoAuthRejectsWrongToken(t *testing.T) {
	err := invoke(t, "sekret", func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer wrong")
	})
	requireUnauthenticated(t, err)
}

func TestEchoAuthRejectsMalformedHeader(t *testing.T) {
	err := invoke(t, "sekret", func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "sekret")
	})
	requireUnauthenticated(t, err)
}

func requireUnauthenticated(t *testing.T, err error) {
	t.Helper()

	var appErr apperrors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorCode_UNAUTHENTICATED, appErr.Code)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
}
