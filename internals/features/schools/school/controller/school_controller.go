// file: internals/features/schools/school/controller/school_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduhost_backend/internals/features/schools/school/dto"
	schoolRepo "eduhost_backend/internals/features/schools/school/repository"
	featureRepo "eduhost_backend/internals/features/schools/school_features/repository"
	featureService "eduhost_backend/internals/features/schools/school_features/service"
	helper "eduhost_backend/internals/helpers"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

// ✅ Buat sekolah baru (super admin, dari domain pusat).
// Create + seed flag default satu transaksi - sekolah tanpa flag = fitur
// mati semua (fail-closed), jadi seed harus ikut commit.
func (ctrl *SchoolController) CreateSchool(c *fiber.Ctx) error {
	var body dto.SchoolCreateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	school := body.ToModel()

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		repo := schoolRepo.NewSchoolRepository(tx)
		if err := repo.Create(c.UserContext(), school); err != nil {
			return err
		}
		matrix := featureService.NewFeatureMatrix(featureRepo.NewSchoolFeatureRepository(tx))
		return matrix.SeedDefaults(c.UserContext(), school.SchoolID)
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Subdomain sudah dipakai sekolah lain")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sekolah")
	}

	return helper.JsonCreated(c, "Sekolah berhasil dibuat", dto.ToSchoolResponse(school))
}

// ✅ Ambil semua sekolah (paginated)
func (ctrl *SchoolController) GetAllSchools(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	repo := schoolRepo.NewSchoolRepository(ctrl.DB)
	schools, total, err := repo.List(c.UserContext(), paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data sekolah")
	}

	return helper.JsonList(c, "Berhasil mengambil daftar sekolah",
		dto.ToSchoolResponseList(schools),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit),
	)
}

// ✅ Ambil sekolah by ID
func (ctrl *SchoolController) GetSchoolByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "school_id tidak valid")
	}

	school, err := schoolRepo.NewSchoolRepository(ctrl.DB).FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sekolah")
	}
	return helper.JsonOK(c, "OK", dto.ToSchoolResponse(school))
}

// ✅ Update nama / profil sekolah (subdomain TIDAK bisa diubah)
// PATCH /api/o/schools/:id
func (ctrl *SchoolController) UpdateSchool(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "school_id tidak valid")
	}

	var body dto.SchoolUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	repo := schoolRepo.NewSchoolRepository(ctrl.DB)
	school, err := repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sekolah")
	}

	if body.SchoolName != nil {
		school.SchoolName = strings.TrimSpace(*body.SchoolName)
	}
	if body.SchoolProfile != nil {
		school.SchoolProfile = *body.SchoolProfile
	}

	if err := repo.Update(c.UserContext(), school); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update sekolah")
	}
	return helper.JsonUpdated(c, "Sekolah berhasil diperbarui", dto.ToSchoolResponse(school))
}

// ✅ Publikasi hasil (results) on/off - gate untuk fitur "results"
// PATCH /api/o/schools/:id/results-published  body: {published: bool}
func (ctrl *SchoolController) SetResultsPublished(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "school_id tidak valid")
	}

	var body struct {
		Published bool `json:"published"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}

	repo := schoolRepo.NewSchoolRepository(ctrl.DB)
	if err := repo.SetResultsPublished(c.UserContext(), id, body.Published); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update publikasi hasil")
	}
	return helper.JsonUpdated(c, "Status publikasi hasil diperbarui", fiber.Map{
		"school_id": id.String(),
		"published": body.Published,
	})
}

// ✅ Suspend / aktifkan sekolah
// PATCH /api/o/schools/:id/active  body: {active: bool}
func (ctrl *SchoolController) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "school_id tidak valid")
	}

	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}

	repo := schoolRepo.NewSchoolRepository(ctrl.DB)
	if err := repo.SetActive(c.UserContext(), id, body.Active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update status sekolah")
	}
	return helper.JsonUpdated(c, "Status sekolah diperbarui", fiber.Map{
		"school_id": id.String(),
		"active":    body.Active,
	})
}
