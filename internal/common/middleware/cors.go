package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// RunIDHeader carries the id of the conversion run a response belongs to.
const RunIDHeader = "X-Run-Id"

// CORS разрешает все источники (dev) и отдаёт клиенту заголовок run id.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{"*"},
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		ExposeHeaders: []string{RunIDHeader},
	})
}
