package constants

// Daftar kanonik feature key produk. Urutan = urutan tampil default.
// Kategori hanya label pengelompokan di UI admin pusat.
//
// Catatan: key historis (sebelum rename) dinormalisasi lewat LegacyFeatureKeys
// saat baca - JANGAN tambah special case di business logic, cukup di tabel ini.

type FeatureDef struct {
	Key      string
	Category string
}

const (
	FeatureSubjects        = "subjects"
	FeatureTopics          = "topics"
	FeatureELibrary        = "e-library"
	FeatureClassActivities = "class-activities"
	FeatureVirtualClass    = "virtual-class"
	FeatureCBT             = "cbt"
	FeatureAttendance      = "attendance"
	FeatureResults         = "results"
	FeatureAnnouncements   = "announcements"
)

const (
	CategoryAcademic      = "academic"
	CategoryAssessment    = "assessment"
	CategoryCommunication = "communication"
)

var FeatureDefinitions = []FeatureDef{
	{FeatureSubjects, CategoryAcademic},
	{FeatureTopics, CategoryAcademic},
	{FeatureELibrary, CategoryAcademic},
	{FeatureClassActivities, CategoryAcademic},
	{FeatureVirtualClass, CategoryAcademic},
	{FeatureCBT, CategoryAssessment},
	{FeatureAttendance, CategoryAcademic},
	{FeatureResults, CategoryAssessment},
	{FeatureAnnouncements, CategoryCommunication},
}

// LegacyFeatureKeys: key lama → key kanonik. Dipakai hanya di FeatureMatrix
// saat normalisasi baris dari DB (data historis tidak dimigrasi).
var LegacyFeatureKeys = map[string]string{
	"elearning":        FeatureELibrary,
	"e_library":        FeatureELibrary,
	"class_activities": FeatureClassActivities,
	"virtualclass":     FeatureVirtualClass,
	"virtual_class":    FeatureVirtualClass,
	"exams":            FeatureCBT,
	"exam_results":     FeatureResults,
}

// CanonicalFeatureKey memetakan key (legacy atau tidak) ke bentuk kanonik.
// Key yang tidak ada di legacy map lewat apa adanya.
func CanonicalFeatureKey(key string) string {
	if mapped, ok := LegacyFeatureKeys[key]; ok {
		return mapped
	}
	return key
}

// IsKnownFeatureKey: true kalau key (sudah kanonik) terdaftar di FeatureDefinitions.
func IsKnownFeatureKey(key string) bool {
	for _, def := range FeatureDefinitions {
		if def.Key == key {
			return true
		}
	}
	return false
}

// DefaultFeatureKeys: di-seed enabled=true saat sekolah dibuat (dan bisa
// di-rerun sebagai repair - seed tidak pernah menimpa row yang sudah ada).
func DefaultFeatureKeys() []string {
	out := make([]string, 0, len(FeatureDefinitions))
	for _, def := range FeatureDefinitions {
		out = append(out, def.Key)
	}
	return out
}

// ==========================
// ✅ Role → allowed features
// ==========================
// Ceiling per role, BUKAN grant: fitur tetap harus enabled di level sekolah.
// Urutan slice = urutan tampil di sidebar frontend.
var RoleAllowedFeatures = map[string][]string{
	RoleSchoolAdmin: {
		FeatureSubjects,
		FeatureTopics,
		FeatureELibrary,
		FeatureClassActivities,
		FeatureVirtualClass,
		FeatureCBT,
		FeatureAttendance,
		FeatureResults,
		FeatureAnnouncements,
	},
	RoleTeacher: {
		FeatureSubjects,
		FeatureTopics,
		FeatureELibrary,
		FeatureClassActivities,
		FeatureVirtualClass,
		FeatureCBT,
		FeatureAttendance,
		FeatureResults,
		FeatureAnnouncements,
	},
	RoleStudent: {
		FeatureSubjects,
		FeatureTopics,
		FeatureELibrary,
		FeatureClassActivities,
		FeatureVirtualClass,
		FeatureCBT,
		FeatureResults,
		FeatureAnnouncements,
	},
	// super_admin sengaja tidak ada di sini: akunnya hidup di central domain
	// dan tidak mengkonsumsi feature list per-sekolah.
}

// ==========================
// ✅ Prerequisite promotion
// ==========================
// Kalau salah satu dependent aktif, prerequisite ikut muncul walau tidak
// di-toggle eksplisit (selama role boleh melihatnya). Tabel deklaratif:
// tambah rule baru = tambah entry, resolver tidak berubah.
type FeaturePrerequisite struct {
	Prerequisite string
	Dependents   []string
}

var FeaturePrerequisites = []FeaturePrerequisite{
	{
		Prerequisite: FeatureSubjects,
		Dependents: []string{
			FeatureTopics,
			FeatureELibrary,
			FeatureClassActivities,
			FeatureVirtualClass,
			FeatureCBT,
		},
	},
}
