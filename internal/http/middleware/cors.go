package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"blogpessoal/internal/config"
)

// CORS allows browser clients from the configured origins. Empty lists fall
// back to "*".
func CORS(cfg config.CORSConfig) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: joinOrWildcard(cfg.AllowOrigins),
		AllowHeaders: joinOrWildcard(cfg.AllowHeaders),
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodOptions,
		}, ","),
		ExposeHeaders: RequestIDHeader,
	})
}

func joinOrWildcard(v []string) string {
	if len(v) == 0 {
		return "*"
	}
	return strings.Join(v, ",")
}
