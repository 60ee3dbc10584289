// file: internals/features/schools/school/repository/school_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduhost_backend/internals/features/schools/school/model"
)

// SchoolRepository: akses directory sekolah. Semua query tenant-aware
// menerima id/label eksplisit - tidak ada scoping otomatis tersembunyi.
type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

// FindBySubdomain: exact match lowercase, hanya sekolah aktif (sekolah
// suspended berhenti ter-resolve sebagai tenant). Tidak ketemu → (nil, nil),
// bukan error - caller (TenantResolver) memperlakukannya sebagai central.
func (r *SchoolRepository) FindBySubdomain(ctx context.Context, label string) (*model.SchoolModel, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return nil, nil
	}
	var school model.SchoolModel
	err := r.DB.WithContext(ctx).
		Where("school_subdomain = ? AND school_is_active = TRUE", label).
		First(&school).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &school, nil
}

func (r *SchoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SchoolModel, error) {
	var school model.SchoolModel
	if err := r.DB.WithContext(ctx).First(&school, "school_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *SchoolRepository) List(ctx context.Context, offset, limit int) ([]model.SchoolModel, int64, error) {
	var (
		schools []model.SchoolModel
		total   int64
	)
	q := r.DB.WithContext(ctx).Model(&model.SchoolModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("school_created_at DESC").Offset(offset).Limit(limit).Find(&schools).Error; err != nil {
		return nil, 0, err
	}
	return schools, total, nil
}

func (r *SchoolRepository) Create(ctx context.Context, school *model.SchoolModel) error {
	return r.DB.WithContext(ctx).Create(school).Error
}

// Update: kolom mutable saja - school_subdomain tidak pernah ikut
// (immutable setelah create).
func (r *SchoolRepository) Update(ctx context.Context, school *model.SchoolModel) error {
	return r.DB.WithContext(ctx).Model(school).
		Select("school_name", "school_profile").
		Updates(school).Error
}

func (r *SchoolRepository) SetResultsPublished(ctx context.Context, id uuid.UUID, published bool) error {
	res := r.DB.WithContext(ctx).Model(&model.SchoolModel{}).
		Where("school_id = ?", id).
		Update("school_results_published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SchoolRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.DB.WithContext(ctx).Model(&model.SchoolModel{}).
		Where("school_id = ?", id).
		Update("school_is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
