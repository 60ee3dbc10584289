// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduhost_backend/internals/constants"
	authMiddleware "eduhost_backend/internals/middlewares/auth"
	"eduhost_backend/internals/middlewares/tenancy"
	routeDetails "eduhost_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PRIVATE (USER) → semua role login; akses tenant dicek ulang tiap
	// request (token lama jangan bisa nyebrang subdomain)
	log.Println("[INFO] Setting up PRIVATE group /api/u ...")
	private := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		tenancy.RequireTenantMatch(),
	)

	// ADMIN (per sekolah) → school_admin / super_admin
	log.Println("[INFO] Setting up ADMIN group /api/a ...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		tenancy.RequireTenantMatch(),
		authMiddleware.RoleMiddleware(constants.RoleSchoolAdmin, constants.RoleSuperAdmin),
	)

	// OWNER (pusat) → super_admin only, directory sekolah dikelola dari sini
	log.Println("[INFO] Setting up OWNER group /api/o ...")
	owner := app.Group("/api/o",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RoleMiddleware(constants.RoleSuperAdmin),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting feature routes...")
	routeDetails.FeatureRoutes(private, admin, db)

	log.Println("[INFO] Mounting school routes...")
	routeDetails.SchoolRoutes(owner, db)
}
