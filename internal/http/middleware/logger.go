package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogpessoal/internal/logging"
)

// Logger is a middleware that logs each HTTP request as one JSON line.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - route (the matched pattern, e.g. /postagens/:id)
// - status
// - latency (in milliseconds, as float)
func Logger(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		entry := map[string]any{
			"request_id": GetRequestID(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"route":      c.Route().Path,
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			entry["level"] = "error"
		case status >= fiber.StatusBadRequest:
			entry["level"] = "warn"
		}
		log.Log(entry)

		return err
	}
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}

// statusOf returns the status the client will see. An error returned down the
// chain has not been rendered by the app's ErrorHandler yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
