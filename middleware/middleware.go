package middleware

import (
	"time"

	"salesman/config"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every handled request with its status and duration.
func RequestLogger() fiber.Handler {
	log := config.GetLogrusInstance()

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Info("request handled")

		return err
	}
}
