package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	featureRoute "eduhost_backend/internals/features/schools/school_features/route"
)

func FeatureRoutes(private fiber.Router, admin fiber.Router, db *gorm.DB) {
	featureRoute.UserFeatureRoutes(private, db)
	featureRoute.AdminFeatureRoutes(admin, db)
}
