package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición.
// 5xx en error, 4xx en warn, el resto en info.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler de fiber fije el status antes de loguear.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("employee_id", GetEmployeeID(c)).
			Msg("http")
		return nil
	}
}
