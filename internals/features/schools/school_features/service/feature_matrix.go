// file: internals/features/schools/school_features/service/feature_matrix.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"eduhost_backend/internals/constants"
	"eduhost_backend/internals/features/schools/school_features/model"
)

var ErrUnknownFeature = errors.New("feature key tidak dikenal")

// FlagStore: kontrak persistence flag. Diimplementasi repository (GORM);
// test pakai fake in-memory.
type FlagStore interface {
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolFeatureModel, error)
	FindBySchoolAndKey(ctx context.Context, schoolID uuid.UUID, key string) (*model.SchoolFeatureModel, error)
	CreateIfAbsent(ctx context.Context, row *model.SchoolFeatureModel) error
	Save(ctx context.Context, row *model.SchoolFeatureModel) error
}

// FeatureMatrix: feature enable/disable per sekolah + normalisasi key legacy.
// Satu-satunya tempat legacy map dipakai - jangan bocor ke layer lain.
type FeatureMatrix struct {
	Store FlagStore
}

func NewFeatureMatrix(store FlagStore) *FeatureMatrix {
	return &FeatureMatrix{Store: store}
}

// EffectiveFeatures: set key kanonik yang enabled untuk sekolah ini.
//   - key dinormalisasi lewat legacy map
//   - key yang tidak terdaftar di-drop diam-diam (drift data lama tidak
//     boleh mematahkan gating)
//   - kalau setelah normalisasi dua row tabrakan di key sama, nilai row
//     terakhir menang - data sehat tidak akan begitu, tapi jangan crash
func (fm *FeatureMatrix) EffectiveFeatures(ctx context.Context, schoolID uuid.UUID) (map[string]bool, error) {
	rows, err := fm.Store.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return normalizeFlags(rows), nil
}

func normalizeFlags(rows []model.SchoolFeatureModel) map[string]bool {
	byKey := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := constants.CanonicalFeatureKey(row.SchoolFeatureKey)
		if !constants.IsKnownFeatureKey(key) {
			continue
		}
		byKey[key] = row.SchoolFeatureEnabled
	}
	enabled := make(map[string]bool, len(byKey))
	for key, on := range byKey {
		if on {
			enabled[key] = true
		}
	}
	return enabled
}

// Toggle: row belum ada → create enabled=true dulu, lalu flip. Toggle dua
// kali balik ke nilai semula. Key unknown (setelah normalisasi legacy) → error.
func (fm *FeatureMatrix) Toggle(ctx context.Context, schoolID uuid.UUID, featureKey string) (*model.SchoolFeatureModel, error) {
	key := constants.CanonicalFeatureKey(featureKey)
	if !constants.IsKnownFeatureKey(key) {
		return nil, ErrUnknownFeature
	}

	row, err := fm.Store.FindBySchoolAndKey(ctx, schoolID, key)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &model.SchoolFeatureModel{
			SchoolFeatureSchoolID: schoolID,
			SchoolFeatureKey:      key,
			SchoolFeatureEnabled:  true,
		}
		if err := fm.Store.CreateIfAbsent(ctx, row); err != nil {
			return nil, err
		}
	}

	row.SchoolFeatureEnabled = !row.SchoolFeatureEnabled
	if err := fm.Store.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// SeedDefaults: create-if-absent semua key default sebagai enabled=true.
// Dipanggil saat sekolah dibuat, dan boleh di-rerun sebagai repair - row
// yang sudah ada TIDAK ditimpa.
func (fm *FeatureMatrix) SeedDefaults(ctx context.Context, schoolID uuid.UUID) error {
	for _, key := range constants.DefaultFeatureKeys() {
		row := &model.SchoolFeatureModel{
			SchoolFeatureSchoolID: schoolID,
			SchoolFeatureKey:      key,
			SchoolFeatureEnabled:  true,
		}
		if err := fm.Store.CreateIfAbsent(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
