package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/daily-inventory/pkg/logger"
)

// RequestLogger devuelve un middleware Fiber que registra cada petición con zerolog.
// Las respuestas 5xx se registran en nivel error; las 4xx en warn.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("request_id", string(c.Response().Header.Peek(fiber.HeaderXRequestID))).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return err
	}
}
