// file: internals/features/schools/school_features/route/feature_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "eduhost_backend/internals/features/schools/school_features/controller"
)

// UserFeatureRoutes: daftar fitur visible untuk user login (group /api/u).
func UserFeatureRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSchoolFeatureController(db)
	router.Get("/features", ctrl.GetVisibleFeatures)
}

// AdminFeatureRoutes: matrix per sekolah (group /api/a, admin sekolah).
func AdminFeatureRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSchoolFeatureController(db)

	features := router.Group("/:school_id/features")
	features.Get("/", ctrl.GetEffectiveFeatures)
	features.Post("/toggle", ctrl.ToggleFeature)
	features.Post("/seed", ctrl.SeedFeatures)
}
