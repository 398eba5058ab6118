package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/yieldbot/base/ctx"
)

func newEcho() *echo.Echo {
	m := InitMiddleware(nil)
	e := echo.New()
	e.Use(m.CORS, m.AddContext(), m.ResponseLogger())
	e.GET("/ping", func(c echo.Context) error {
		_, ok := c.Get("ctx").(ctx.Ctx)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func TestAddContextGeneratesRequestId(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAddContextKeepsRequestId(t *testing.T) {
	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))
}

func TestResponseLoggerSwallowsHandlerError(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
