// file: internals/features/users/auth/service/identity_guard.go
package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eduhost_backend/internals/constants"
	userModel "eduhost_backend/internals/features/users/user/model"
	"eduhost_backend/internals/middlewares/tenancy"
)

/* ==========================
   Principal & admission gate
========================== */

// Principal: identitas ter-autentikasi, nilai eksplisit (bukan state global).
// Di-derive dari row users SETELAH password terverifikasi.
type Principal struct {
	ID       uuid.UUID
	Role     string
	SchoolID *uuid.UUID // nil hanya untuk super_admin
	IsActive bool
}

func PrincipalOf(u *userModel.UserModel) Principal {
	return Principal{
		ID:       u.ID,
		Role:     u.Role,
		SchoolID: u.UserSchoolID,
		IsActive: u.IsActive,
	}
}

// Admission: keputusan masuk. Reason manusiawi, dipakai langsung di body 403.
type Admission struct {
	Allowed bool
	Status  int
	Reason  string
}

func allow() Admission { return Admission{Allowed: true} }

func deny(reason string) Admission {
	return Admission{Status: fiber.StatusForbidden, Reason: reason}
}

// AdmitPrincipal: decision table admission saat login (urut, first match wins):
//  1. akun nonaktif → tolak
//  2. host tenant + akun pusat (super_admin / tanpa sekolah) → tolak
//  3. host tenant + akun sekolah lain → tolak
//  4. host central + requireSubdomain + akun sekolah → tolak
//  5. sisanya → terima
//
// Dipanggil SETELAH verifikasi kredensial, SEBELUM issue token. Kalau tolak,
// tidak ada token yang boleh terbit dan session parsial harus dibatalkan.
func AdmitPrincipal(p Principal, tctx tenancy.TenantContext, requireSubdomain bool) Admission {
	if !p.IsActive {
		return deny("Akun Anda telah dinonaktifkan")
	}

	if tctx.IsTenant() {
		if p.Role == constants.RoleSuperAdmin || p.SchoolID == nil {
			return deny("Super admin harus login lewat domain pusat")
		}
		if *p.SchoolID != tctx.School.SchoolID {
			return deny("Akun tidak terdaftar pada subdomain ini")
		}
		return allow()
	}

	if requireSubdomain && p.SchoolID != nil {
		return deny("Silakan login lewat subdomain sekolah Anda")
	}
	return allow()
}
