package middleware

import (
	"errors"
	"time"

	apperrors "otpauth/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// HTTPObserver receives one observation per served request.
type HTTPObserver interface {
	ObserveHTTP(method, path string, status int, elapsed time.Duration)
}

// Metrics records request counts and latency by route pattern.
func Metrics(observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet; use the status it will write.
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = apperrors.KindOf(err).StatusCode()
			}
		}

		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveHTTP(c.Method(), path, status, time.Since(start))
		return err
	}
}
