package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestScoped_AppliesOnlyUnderPrefix(t *testing.T) {
	invoked := 0
	counting := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			invoked++
			return next(c)
		}
	}

	e := echo.New()
	h := Scoped("/auth", counting)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/auth/signin", "/auth/refresh"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if err := h(c); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
	}
	if invoked != 2 {
		t.Fatalf("expected middleware to run for both /auth paths, ran %d times", invoked)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if err := h(c); err != nil {
		t.Fatalf("/tasks: %v", err)
	}
	if invoked != 2 {
		t.Fatalf("middleware ran outside its prefix")
	}
}
