package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger возвращает middleware для логирования запросов, с run id
// конвертации, если он уже выставлен в ответе.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | run=${respHeader:" + RunIDHeader + "} bytes=${bytesReceived}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
