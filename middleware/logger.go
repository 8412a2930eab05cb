package middleware

import (
	"time"

	"iris_registry/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request with its final status and latency. Errors
// from the chain are passed to the app's error handler first, so the logged
// status is the one the client receives.
func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
		if c.Response().StatusCode() < fiber.StatusBadRequest {
			c.Status(fiber.StatusInternalServerError)
		}
		utils.Logger.Warn("request failed", zap.Error(chainErr))
	}

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
		zap.String("ip", c.IP()),
	}
	if sub, ok := c.Locals("subject").(string); ok && sub != "" {
		fields = append(fields, zap.String("subject", sub))
	}
	utils.Logger.Info("request", fields...)

	return nil
}
