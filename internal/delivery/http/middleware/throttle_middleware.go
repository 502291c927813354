package middleware

import (
	"net/http"
	"sync"

	"marketplace/config"
	"marketplace/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ThrottleMiddleware enforces per-caller request quotas with token
// buckets, one bucket per (caller, method class) pair. Quotas are
// requests per minute; a zero quota disables throttling for that class.
type ThrottleMiddleware struct {
	cfg *config.ThrottleConfig

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewThrottleMiddleware creates a throttle middleware from the configured
// quotas. A nil config disables throttling entirely.
func NewThrottleMiddleware(cfg *config.Config) *ThrottleMiddleware {
	return &ThrottleMiddleware{
		cfg:      cfg.Throttle,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Limit returns the middleware function. It must be used AFTER the
// Authenticate middleware so the bucket key is the account ID; anonymous
// callers fall back to their remote IP.
func (m *ThrottleMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		quota := m.quotaFor(c.Request().Method)
		if quota <= 0 {
			return next(c)
		}

		caller := c.RealIP()
		if userID, ok := GetUserID(c); ok {
			caller = userID.String()
		}

		if !m.limiter(caller+"|"+c.Request().Method, quota).Allow() {
			return response.TooManyRequests(c, "THROTTLED", "Request rate limit exceeded")
		}

		return next(c)
	}
}

func (m *ThrottleMiddleware) quotaFor(method string) int {
	if m.cfg == nil {
		return 0
	}

	switch method {
	case http.MethodPost:
		return m.cfg.PostPerMinute
	case http.MethodPatch, http.MethodPut:
		return m.cfg.PatchPerMinute
	case http.MethodDelete:
		return m.cfg.DeletePerMinute
	default:
		return m.cfg.ReadPerMinute
	}
}

func (m *ThrottleMiddleware) limiter(key string, perMinute int) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lim, ok := m.limiters[key]; ok {
		return lim
	}

	// Burst equals the quota so a caller can spend a full minute's
	// allowance at once but never exceed the sustained rate.
	lim := rate.NewLimiter(rate.Limit(perMinute)/60, perMinute)
	m.limiters[key] = lim

	return lim
}
