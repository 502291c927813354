package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThrottledHandler(cfg *config.Config) (echo.HandlerFunc, *echo.Echo) {
	e := echo.New()
	m := NewThrottleMiddleware(cfg)
	handler := m.Limit(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return handler, e
}

func doRequest(e *echo.Echo, handler echo.HandlerFunc, method string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/reviews", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)

	return rec
}

func TestThrottleMiddleware_ZeroQuotaDisables(t *testing.T) {
	cfg := &config.Config{Throttle: &config.ThrottleConfig{PostPerMinute: 0}}
	handler, e := newThrottledHandler(cfg)

	for range 50 {
		rec := doRequest(e, handler, http.MethodPost)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestThrottleMiddleware_ExhaustsWriteQuota(t *testing.T) {
	cfg := &config.Config{Throttle: &config.ThrottleConfig{PostPerMinute: 3}}
	handler, e := newThrottledHandler(cfg)

	for range 3 {
		rec := doRequest(e, handler, http.MethodPost)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(e, handler, http.MethodPost)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestThrottleMiddleware_MethodClassesAreIndependent(t *testing.T) {
	cfg := &config.Config{Throttle: &config.ThrottleConfig{
		PostPerMinute:   1,
		DeletePerMinute: 1,
	}}
	handler, e := newThrottledHandler(cfg)

	require.Equal(t, http.StatusOK, doRequest(e, handler, http.MethodPost).Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(e, handler, http.MethodPost).Code)

	// The delete bucket is untouched by the exhausted post bucket.
	assert.Equal(t, http.StatusOK, doRequest(e, handler, http.MethodDelete).Code)
}

func TestThrottleMiddleware_NilConfigDisables(t *testing.T) {
	cfg := &config.Config{}
	handler, e := newThrottledHandler(cfg)

	for range 10 {
		require.Equal(t, http.StatusOK, doRequest(e, handler, http.MethodPost).Code)
	}
}
