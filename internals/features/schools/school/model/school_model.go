package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SchoolModel merepresentasikan tabel schools (tenant directory).
// school_subdomain immutable setelah create: ganti subdomain = orphan semua
// link tenant yang sudah tersebar, jadi tidak pernah di-update.
type SchoolModel struct {
	SchoolID        uuid.UUID `gorm:"column:school_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"school_id"`
	SchoolName      string    `gorm:"column:school_name;type:varchar(100);not null" json:"school_name"`
	SchoolSubdomain string    `gorm:"column:school_subdomain;type:varchar(63);not null;uniqueIndex" json:"school_subdomain"`

	SchoolIsActive         bool `gorm:"column:school_is_active;not null;default:true" json:"school_is_active"`
	SchoolResultsPublished bool `gorm:"column:school_results_published;not null;default:false" json:"school_results_published"`

	// kontak & profil bebas (alamat, telepon, logo url, dst)
	SchoolProfile datatypes.JSON `gorm:"column:school_profile;type:jsonb" json:"school_profile,omitempty"`

	SchoolCreatedAt time.Time `gorm:"column:school_created_at;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time `gorm:"column:school_updated_at;autoUpdateTime" json:"school_updated_at"`
}

func (SchoolModel) TableName() string {
	return "schools"
}
