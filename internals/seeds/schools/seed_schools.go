package schools

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduhost_backend/internals/features/schools/school/model"
	featureRepo "eduhost_backend/internals/features/schools/school_features/repository"
	featureService "eduhost_backend/internals/features/schools/school_features/service"
)

type SchoolSeed struct {
	SchoolName       string         `json:"school_name"`
	SchoolSubdomain  string         `json:"school_subdomain"`
	ResultsPublished bool           `json:"results_published"`
	Profile          map[string]any `json:"profile"`
}

// SeedSchoolsFromJSON: insert sekolah demo + seed matrix feature default-nya.
// Subdomain yang sudah ada dilewati (rerun aman).
func SeedSchoolsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file sekolah:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []SchoolSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	matrix := featureService.NewFeatureMatrix(featureRepo.NewSchoolFeatureRepository(db))

	for _, data := range inputs {
		subdomain := strings.ToLower(strings.TrimSpace(data.SchoolSubdomain))

		var existing model.SchoolModel
		if err := db.Where("school_subdomain = ?", subdomain).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Sekolah '%s' sudah ada, dilewati.", subdomain)
			continue
		}

		profile, _ := json.Marshal(data.Profile)
		newSchool := model.SchoolModel{
			SchoolName:             data.SchoolName,
			SchoolSubdomain:        subdomain,
			SchoolIsActive:         true,
			SchoolResultsPublished: data.ResultsPublished,
			SchoolProfile:          datatypes.JSON(profile),
		}

		if err := db.Create(&newSchool).Error; err != nil {
			log.Printf("❌ Gagal insert sekolah '%s': %v", subdomain, err)
			continue
		}
		if err := matrix.SeedDefaults(context.Background(), newSchool.SchoolID); err != nil {
			log.Printf("❌ Gagal seed feature sekolah '%s': %v", subdomain, err)
			continue
		}
		log.Printf("✅ Berhasil insert sekolah '%s'", subdomain)
	}
}
