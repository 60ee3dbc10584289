package model

import (
	"time"

	"github.com/google/uuid"
)

// SchoolFeatureModel: satu row per (school, feature). Dibuat lazy saat toggle
// pertama atau lewat seed; tidak pernah dihapus. Absennya row = fitur mati
// (fail-closed), BUKAN default nyala.
type SchoolFeatureModel struct {
	SchoolFeatureID       uuid.UUID `gorm:"column:school_feature_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"school_feature_id"`
	SchoolFeatureSchoolID uuid.UUID `gorm:"column:school_feature_school_id;type:uuid;not null;uniqueIndex:uq_school_feature,priority:1;index" json:"school_feature_school_id"`
	SchoolFeatureKey      string    `gorm:"column:school_feature_key;type:varchar(50);not null;uniqueIndex:uq_school_feature,priority:2" json:"school_feature_key"`
	SchoolFeatureEnabled  bool      `gorm:"column:school_feature_enabled;not null;default:true" json:"school_feature_enabled"`

	SchoolFeatureCreatedAt time.Time `gorm:"column:school_feature_created_at;autoCreateTime" json:"school_feature_created_at"`
	SchoolFeatureUpdatedAt time.Time `gorm:"column:school_feature_updated_at;autoUpdateTime" json:"school_feature_updated_at"`
}

func (SchoolFeatureModel) TableName() string {
	return "school_features"
}
