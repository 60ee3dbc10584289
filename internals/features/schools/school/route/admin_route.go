// file: internals/features/schools/school/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "eduhost_backend/internals/features/schools/school/controller"
)

// SchoolAdminRoutes: manajemen directory sekolah - hanya lewat group
// owner (/api/o, super_admin, domain pusat).
func SchoolAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSchoolController(db)

	schools := router.Group("/schools")
	schools.Post("/", ctrl.CreateSchool)
	schools.Get("/", ctrl.GetAllSchools)
	schools.Get("/:id", ctrl.GetSchoolByID)
	schools.Patch("/:id", ctrl.UpdateSchool)
	schools.Patch("/:id/results-published", ctrl.SetResultsPublished)
	schools.Patch("/:id/active", ctrl.SetActive)
}
