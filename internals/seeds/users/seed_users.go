package users

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	schoolModel "eduhost_backend/internals/features/schools/school/model"
	"eduhost_backend/internals/features/users/user/model"
)

type UserSeed struct {
	UserName        string `json:"user_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	SchoolSubdomain string `json:"school_subdomain"` // kosong = akun central (super_admin)
}

// SeedUsersFromJSON: insert user demo. school_subdomain dipetakan ke
// user_school_id lewat tabel schools - jalankan seed sekolah dulu.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.UserModel
		if err := db.Where("email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", data.Email)
			continue
		}

		newUser := model.UserModel{
			UserName: data.UserName,
			Email:    data.Email,
			Role:     data.Role,
			IsActive: true,
		}

		if sub := strings.ToLower(strings.TrimSpace(data.SchoolSubdomain)); sub != "" {
			var school schoolModel.SchoolModel
			if err := db.Where("school_subdomain = ?", sub).First(&school).Error; err != nil {
				log.Printf("❌ Sekolah '%s' untuk user '%s' tidak ditemukan, dilewati.", sub, data.Email)
				continue
			}
			newUser.UserSchoolID = &school.SchoolID
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Email, err)
			continue
		}
		newUser.Password = string(hashed)

		if err := newUser.Validate(); err != nil {
			log.Printf("❌ Data user '%s' tidak valid: %v", data.Email, err)
			continue
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", data.Email, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s'", data.Email)
		}
	}
}
