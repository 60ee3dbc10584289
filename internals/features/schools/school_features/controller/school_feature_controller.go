// file: internals/features/schools/school_features/controller/school_feature_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduhost_backend/internals/constants"
	schoolRepo "eduhost_backend/internals/features/schools/school/repository"
	featureRepo "eduhost_backend/internals/features/schools/school_features/repository"
	featureService "eduhost_backend/internals/features/schools/school_features/service"
	helper "eduhost_backend/internals/helpers"
	"eduhost_backend/internals/middlewares/tenancy"
)

type SchoolFeatureController struct {
	DB         *gorm.DB
	Matrix     *featureService.FeatureMatrix
	Visibility *featureService.VisibilityResolver
}

func NewSchoolFeatureController(db *gorm.DB) *SchoolFeatureController {
	matrix := featureService.NewFeatureMatrix(featureRepo.NewSchoolFeatureRepository(db))
	return &SchoolFeatureController{
		DB:         db,
		Matrix:     matrix,
		Visibility: featureService.NewVisibilityResolver(matrix, schoolRepo.NewSchoolRepository(db)),
	}
}

/* ==========================
   USER: daftar fitur visible
========================== */

// GET /api/u/features
// Kontrak frontend: {data:[feature_key,...]} - urutan sesuai allow-list role.
func (ctrl *SchoolFeatureController) GetVisibleFeatures(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)

	schoolID, err := ctrl.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	keys, err := ctrl.Visibility.VisibleFeatures(c.UserContext(), schoolID, role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar fitur")
	}
	return c.JSON(fiber.Map{"data": keys})
}

/* ==========================
   ADMIN: matrix per sekolah
========================== */

// GET /api/a/:school_id/features
// Set fitur enabled efektif (sudah dinormalisasi legacy), urutan definisi.
func (ctrl *SchoolFeatureController) GetEffectiveFeatures(c *fiber.Ctx) error {
	schoolID, err := ctrl.adminSchoolID(c)
	if err != nil {
		return err
	}

	enabled, err := ctrl.Matrix.EffectiveFeatures(c.UserContext(), schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil matrix fitur")
	}

	keys := make([]string, 0, len(enabled))
	for _, def := range constants.FeatureDefinitions {
		if enabled[def.Key] {
			keys = append(keys, def.Key)
		}
	}
	return c.JSON(fiber.Map{"data": keys})
}

// POST /api/a/:school_id/features/toggle  body: {feature}
// Balikin row flag hasil update.
func (ctrl *SchoolFeatureController) ToggleFeature(c *fiber.Ctx) error {
	schoolID, err := ctrl.adminSchoolID(c)
	if err != nil {
		return err
	}

	var body struct {
		Feature string `json:"feature"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Feature) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Field 'feature' wajib diisi")
	}

	row, err := ctrl.Matrix.Toggle(c.UserContext(), schoolID, strings.TrimSpace(body.Feature))
	if err != nil {
		if errors.Is(err, featureService.ErrUnknownFeature) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Feature key tidak dikenal")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal toggle fitur")
	}
	return helper.JsonUpdated(c, "Fitur berhasil diubah", row)
}

// POST /api/a/:school_id/features/seed
// Repair: create-if-absent default set; row existing tidak ditimpa.
func (ctrl *SchoolFeatureController) SeedFeatures(c *fiber.Ctx) error {
	schoolID, err := ctrl.adminSchoolID(c)
	if err != nil {
		return err
	}
	if err := ctrl.Matrix.SeedDefaults(c.UserContext(), schoolID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal seed fitur default")
	}
	return helper.JsonOK(c, "Default fitur di-seed", nil)
}

/* ==========================
   Scope helpers
========================== */

// resolveSchoolID (user endpoint): prioritas tenant host → school_id di
// token → ?school_id (khusus super_admin dari central).
func (ctrl *SchoolFeatureController) resolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if tctx := tenancy.FromLocals(c); tctx.IsTenant() {
		return tctx.School.SchoolID, nil
	}
	if v, _ := c.Locals("school_id").(string); v != "" {
		return uuid.Parse(v)
	}
	if role, _ := c.Locals("role").(string); role == constants.RoleSuperAdmin {
		if v := strings.TrimSpace(c.Query("school_id")); v != "" {
			return uuid.Parse(v)
		}
	}
	return uuid.Nil, errors.New("school_id tidak bisa ditentukan dari konteks")
}

// adminSchoolID: ambil :school_id dari path + tegakkan isolasi - admin
// sekolah hanya boleh menyentuh sekolahnya sendiri; super_admin bebas.
func (ctrl *SchoolFeatureController) adminSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	schoolID, err := uuid.Parse(strings.TrimSpace(c.Params("school_id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id tidak valid")
	}

	role, _ := c.Locals("role").(string)
	if role != constants.RoleSuperAdmin {
		own, _ := c.Locals("school_id").(string)
		if !strings.EqualFold(own, schoolID.String()) {
			return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Akun tidak berhak mengelola sekolah ini")
		}
	}
	return schoolID, nil
}
