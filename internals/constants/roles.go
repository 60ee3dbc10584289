package constants

import "fmt"

// Role users (kolom users.role)
const (
	RoleSuperAdmin  = "super_admin" // pengelola pusat, tidak terikat sekolah
	RoleSchoolAdmin = "school_admin"
	RoleTeacher     = "teacher"
	RoleStudent     = "student"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "❌ Hanya teacher atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess   = "❌ Hanya school admin yang boleh mengakses fitur %s."
	ErrOnlySuperAdminAccess  = "❌ Hanya super admin yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdminAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperAdmin,
		RoleSchoolAdmin,
		RoleTeacher,
		RoleStudent,
	}

	SchoolRoles = []string{
		RoleSchoolAdmin,
		RoleTeacher,
		RoleStudent,
	}

	StaffAndAbove = []string{
		RoleTeacher,
		RoleSchoolAdmin,
		RoleSuperAdmin,
	}

	AdminAndAbove = []string{
		RoleSchoolAdmin,
		RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
