package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolRoute "eduhost_backend/internals/features/schools/school/route"
)

func SchoolRoutes(owner fiber.Router, db *gorm.DB) {
	schoolRoute.SchoolAdminRoutes(owner, db)
}
