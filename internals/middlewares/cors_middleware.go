// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"eduhost_backend/internals/configs"
)

// CorsMiddleware membuat middleware CORS.
// Origin subdomain sekolah tidak bisa dienumerasi statis → pakai
// AllowOriginsFunc yang cocokkan suffix base domain.
func CorsMiddleware() fiber.Handler {
	staticOrigins := []string{
		"http://localhost:5173",
		"http://127.0.0.1:5500",
	}
	if extra := configs.GetEnv("CORS_EXTRA_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				staticOrigins = append(staticOrigins, o)
			}
		}
	}

	return cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			for _, o := range staticOrigins {
				if strings.EqualFold(origin, o) {
					return true
				}
			}
			base := configs.BaseTenantDomain
			if base == "" {
				return false
			}
			o := strings.ToLower(origin)
			o = strings.TrimPrefix(o, "https://")
			return o == base || strings.HasSuffix(o, "."+base)
		},
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
