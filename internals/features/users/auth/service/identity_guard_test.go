package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduhost_backend/internals/constants"
	schoolModel "eduhost_backend/internals/features/schools/school/model"
	userModel "eduhost_backend/internals/features/users/user/model"
	"eduhost_backend/internals/middlewares/tenancy"
)

func tenantOf(school *schoolModel.SchoolModel) tenancy.TenantContext {
	return tenancy.TenantContext{School: school}
}

func TestAdmitPrincipal(t *testing.T) {
	schoolA := &schoolModel.SchoolModel{SchoolID: uuid.New(), SchoolSubdomain: "alpha"}
	schoolB := &schoolModel.SchoolModel{SchoolID: uuid.New(), SchoolSubdomain: "beta"}

	student := func(schoolID *uuid.UUID) Principal {
		return Principal{ID: uuid.New(), Role: constants.RoleStudent, SchoolID: schoolID, IsActive: true}
	}
	superAdmin := Principal{ID: uuid.New(), Role: constants.RoleSuperAdmin, IsActive: true}

	t.Run("akun nonaktif selalu ditolak duluan", func(t *testing.T) {
		p := student(&schoolA.SchoolID)
		p.IsActive = false
		adm := AdmitPrincipal(p, tenantOf(schoolA), false)
		require.False(t, adm.Allowed)
		assert.Equal(t, fiber.StatusForbidden, adm.Status)
		assert.Equal(t, "Akun Anda telah dinonaktifkan", adm.Reason)
	})

	t.Run("super_admin di host tenant ditolak", func(t *testing.T) {
		adm := AdmitPrincipal(superAdmin, tenantOf(schoolA), false)
		require.False(t, adm.Allowed)
		assert.Equal(t, "Super admin harus login lewat domain pusat", adm.Reason)
	})

	t.Run("akun tanpa sekolah di host tenant ditolak", func(t *testing.T) {
		adm := AdmitPrincipal(student(nil), tenantOf(schoolA), false)
		require.False(t, adm.Allowed)
		assert.Equal(t, "Super admin harus login lewat domain pusat", adm.Reason)
	})

	t.Run("akun sekolah lain di host tenant ditolak", func(t *testing.T) {
		adm := AdmitPrincipal(student(&schoolB.SchoolID), tenantOf(schoolA), false)
		require.False(t, adm.Allowed)
		assert.Equal(t, "Akun tidak terdaftar pada subdomain ini", adm.Reason)
	})

	t.Run("akun sekolah sendiri di host tenant diterima", func(t *testing.T) {
		adm := AdmitPrincipal(student(&schoolA.SchoolID), tenantOf(schoolA), true)
		assert.True(t, adm.Allowed)
	})

	t.Run("akun sekolah di central dipaksa ke subdomain", func(t *testing.T) {
		adm := AdmitPrincipal(student(&schoolA.SchoolID), tenancy.Central(), true)
		require.False(t, adm.Allowed)
		assert.Equal(t, fiber.StatusForbidden, adm.Status)
		assert.Equal(t, "Silakan login lewat subdomain sekolah Anda", adm.Reason)
	})

	t.Run("akun sekolah di central boleh kalau tidak dipaksa", func(t *testing.T) {
		adm := AdmitPrincipal(student(&schoolA.SchoolID), tenancy.Central(), false)
		assert.True(t, adm.Allowed)
	})

	t.Run("super_admin di central diterima", func(t *testing.T) {
		adm := AdmitPrincipal(superAdmin, tenancy.Central(), true)
		assert.True(t, adm.Allowed)
	})

	t.Run("nonaktif menang atas mismatch sekolah", func(t *testing.T) {
		p := student(&schoolB.SchoolID)
		p.IsActive = false
		adm := AdmitPrincipal(p, tenantOf(schoolA), true)
		require.False(t, adm.Allowed)
		assert.Equal(t, "Akun Anda telah dinonaktifkan", adm.Reason)
	})
}

func TestPrincipalOf(t *testing.T) {
	schoolID := uuid.New()
	u := &userModel.UserModel{
		ID:           uuid.New(),
		Role:         constants.RoleTeacher,
		UserSchoolID: &schoolID,
		IsActive:     true,
	}
	p := PrincipalOf(u)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, constants.RoleTeacher, p.Role)
	require.NotNil(t, p.SchoolID)
	assert.Equal(t, schoolID, *p.SchoolID)
	assert.True(t, p.IsActive)
}
