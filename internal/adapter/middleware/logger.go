package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestObserver receives one observation per finished request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger writes one structured line per request and feeds obs (may be nil).
func RequestLogger(log *logrus.Entry, obs RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}
			elapsed := time.Since(start)

			req, res := c.Request(), c.Response()
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			if obs != nil {
				obs.ObserveRequest(req.Method, route, res.Status, elapsed)
			}

			fields := logrus.Fields{
				"trace_id":   TraceIDFrom(c),
				"method":     req.Method,
				"path":       req.URL.Path,
				"route":      route,
				"status":     res.Status,
				"latency_ms": elapsed.Milliseconds(),
				"bytes_out":  res.Size,
				"remote_ip":  c.RealIP(),
			}
			if a, ok := ActorFrom(c); ok {
				fields["user_id"] = a.ID
			}
			entry := log.WithFields(fields)
			switch {
			case res.Status >= 500:
				entry.Error("request failed")
			case res.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request completed")
			}
			return nil
		}
	}
}
