// file: internals/middlewares/setup.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolRepo "eduhost_backend/internals/features/schools/school/repository"
	loggerMiddleware "eduhost_backend/internals/middlewares/logger"
	"eduhost_backend/internals/middlewares/tenancy"
)

// SetupMiddlewares: urutan penting - recovery paling luar, lalu CORS & logger,
// lalu resolve tenant (sekali per request, dipakai auth & feature gating).
func SetupMiddlewares(app *fiber.App, db *gorm.DB) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(DBMiddleware(db))
	app.Use(tenancy.ResolveTenant(schoolRepo.NewSchoolRepository(db)))
}
