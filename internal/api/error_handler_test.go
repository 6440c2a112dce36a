package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{domain.ErrProjectNotFound, http.StatusNotFound, "project not found"},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable"},
	}
	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.code || msg != tc.msg {
			t.Fatalf("%v: expected %d %q, got %d %q", tc.err, tc.code, tc.msg, code, msg)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("find user by id"), domain.ErrUserNotFound)
	code, msg := renderError(t, wrapped)
	if code != http.StatusNotFound || msg != "user not found" {
		t.Fatalf("wrapped error not unwrapped: %d %q", code, msg)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))
	if code != http.StatusTooManyRequests || msg != "rate limit exceeded" {
		t.Fatalf("echo error passthrough failed: %d %q", code, msg)
	}
}

func TestErrorHandler_UnexpectedErrorHidden(t *testing.T) {
	code, msg := renderError(t, errors.New("pq: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}
