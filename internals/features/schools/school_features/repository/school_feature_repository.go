// file: internals/features/schools/school_features/repository/school_feature_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eduhost_backend/internals/features/schools/school_features/model"
)

// SchoolFeatureRepository: store flag per sekolah. Setiap call menerima
// school_id eksplisit - isolasi tenant ditegakkan di query, bukan lewat
// scope global ORM yang gampang kelewat.
type SchoolFeatureRepository struct {
	DB *gorm.DB
}

func NewSchoolFeatureRepository(db *gorm.DB) *SchoolFeatureRepository {
	return &SchoolFeatureRepository{DB: db}
}

func (r *SchoolFeatureRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolFeatureModel, error) {
	var rows []model.SchoolFeatureModel
	err := r.DB.WithContext(ctx).
		Where("school_feature_school_id = ?", schoolID).
		Order("school_feature_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *SchoolFeatureRepository) FindBySchoolAndKey(ctx context.Context, schoolID uuid.UUID, key string) (*model.SchoolFeatureModel, error) {
	var row model.SchoolFeatureModel
	err := r.DB.WithContext(ctx).
		Where("school_feature_school_id = ? AND school_feature_key = ?", schoolID, key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// CreateIfAbsent: ON CONFLICT DO NOTHING pada (school_id, key) - seed bisa
// di-rerun tanpa menimpa pilihan admin, dan dua request concurrent aman.
func (r *SchoolFeatureRepository) CreateIfAbsent(ctx context.Context, row *model.SchoolFeatureModel) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "school_feature_school_id"}, {Name: "school_feature_key"}},
			DoNothing: true,
		}).
		Create(row).Error
}

// Save: update enabled by key. Race toggle key sama = last-write-wins,
// memang bukan counter linearizable.
func (r *SchoolFeatureRepository) Save(ctx context.Context, row *model.SchoolFeatureModel) error {
	return r.DB.WithContext(ctx).
		Model(&model.SchoolFeatureModel{}).
		Where("school_feature_school_id = ? AND school_feature_key = ?", row.SchoolFeatureSchoolID, row.SchoolFeatureKey).
		Update("school_feature_enabled", row.SchoolFeatureEnabled).Error
}
