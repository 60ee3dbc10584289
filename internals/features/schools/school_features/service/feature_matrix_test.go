package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduhost_backend/internals/constants"
	"eduhost_backend/internals/features/schools/school_features/model"
)

// fakeFlagStore: FlagStore in-memory, urutan insert dipertahankan (meniru
// ORDER BY created ASC di repository asli).
type fakeFlagStore struct {
	rows []*model.SchoolFeatureModel
}

func (f *fakeFlagStore) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.SchoolFeatureModel, error) {
	out := make([]model.SchoolFeatureModel, 0, len(f.rows))
	for _, r := range f.rows {
		if r.SchoolFeatureSchoolID == schoolID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeFlagStore) FindBySchoolAndKey(ctx context.Context, schoolID uuid.UUID, key string) (*model.SchoolFeatureModel, error) {
	for _, r := range f.rows {
		if r.SchoolFeatureSchoolID == schoolID && r.SchoolFeatureKey == key {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeFlagStore) CreateIfAbsent(ctx context.Context, row *model.SchoolFeatureModel) error {
	if existing, _ := f.FindBySchoolAndKey(ctx, row.SchoolFeatureSchoolID, row.SchoolFeatureKey); existing != nil {
		return nil
	}
	if row.SchoolFeatureID == uuid.Nil {
		row.SchoolFeatureID = uuid.New()
	}
	cp := *row
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeFlagStore) Save(ctx context.Context, row *model.SchoolFeatureModel) error {
	for _, r := range f.rows {
		if r.SchoolFeatureSchoolID == row.SchoolFeatureSchoolID && r.SchoolFeatureKey == row.SchoolFeatureKey {
			r.SchoolFeatureEnabled = row.SchoolFeatureEnabled
			return nil
		}
	}
	cp := *row
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeFlagStore) add(schoolID uuid.UUID, key string, enabled bool) {
	f.rows = append(f.rows, &model.SchoolFeatureModel{
		SchoolFeatureID:       uuid.New(),
		SchoolFeatureSchoolID: schoolID,
		SchoolFeatureKey:      key,
		SchoolFeatureEnabled:  enabled,
	})
}

func TestEffectiveFeatures(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("row absen = fitur mati", func(t *testing.T) {
		fm := NewFeatureMatrix(&fakeFlagStore{})
		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		assert.Empty(t, enabled)
	})

	t.Run("hanya row enabled yang masuk", func(t *testing.T) {
		store := &fakeFlagStore{}
		store.add(schoolID, constants.FeatureTopics, true)
		store.add(schoolID, constants.FeatureCBT, false)
		fm := NewFeatureMatrix(store)

		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{constants.FeatureTopics: true}, enabled)
	})

	t.Run("key legacy dinormalisasi", func(t *testing.T) {
		store := &fakeFlagStore{}
		store.add(schoolID, "elearning", true)
		store.add(schoolID, "exam_results", true)
		fm := NewFeatureMatrix(store)

		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		assert.True(t, enabled[constants.FeatureELibrary])
		assert.True(t, enabled[constants.FeatureResults])
		assert.NotContains(t, enabled, "elearning")
		assert.NotContains(t, enabled, "exam_results")
	})

	t.Run("key tidak dikenal di-drop diam-diam", func(t *testing.T) {
		store := &fakeFlagStore{}
		store.add(schoolID, "kantin", true)
		store.add(schoolID, constants.FeatureTopics, true)
		fm := NewFeatureMatrix(store)

		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{constants.FeatureTopics: true}, enabled)
	})

	t.Run("tabrakan legacy vs kanonik → row terakhir menang", func(t *testing.T) {
		store := &fakeFlagStore{}
		store.add(schoolID, "elearning", true)
		store.add(schoolID, constants.FeatureELibrary, false)
		fm := NewFeatureMatrix(store)

		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		assert.NotContains(t, enabled, constants.FeatureELibrary)
	})

	t.Run("sekolah lain tidak bocor", func(t *testing.T) {
		other := uuid.New()
		store := &fakeFlagStore{}
		store.add(other, constants.FeatureTopics, true)
		fm := NewFeatureMatrix(store)

		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		assert.Empty(t, enabled)
	})
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("row absen → create lalu flip ke false", func(t *testing.T) {
		store := &fakeFlagStore{}
		fm := NewFeatureMatrix(store)

		row, err := fm.Toggle(ctx, schoolID, constants.FeatureCBT)
		require.NoError(t, err)
		assert.Equal(t, constants.FeatureCBT, row.SchoolFeatureKey)
		assert.False(t, row.SchoolFeatureEnabled)

		saved, _ := store.FindBySchoolAndKey(ctx, schoolID, constants.FeatureCBT)
		require.NotNil(t, saved)
		assert.False(t, saved.SchoolFeatureEnabled)
	})

	t.Run("toggle dua kali balik ke semula", func(t *testing.T) {
		store := &fakeFlagStore{}
		store.add(schoolID, constants.FeatureTopics, true)
		fm := NewFeatureMatrix(store)

		row, err := fm.Toggle(ctx, schoolID, constants.FeatureTopics)
		require.NoError(t, err)
		assert.False(t, row.SchoolFeatureEnabled)

		row, err = fm.Toggle(ctx, schoolID, constants.FeatureTopics)
		require.NoError(t, err)
		assert.True(t, row.SchoolFeatureEnabled)
	})

	t.Run("key legacy di-toggle sebagai kanonik", func(t *testing.T) {
		store := &fakeFlagStore{}
		store.add(schoolID, constants.FeatureELibrary, true)
		fm := NewFeatureMatrix(store)

		row, err := fm.Toggle(ctx, schoolID, "elearning")
		require.NoError(t, err)
		assert.Equal(t, constants.FeatureELibrary, row.SchoolFeatureKey)
		assert.False(t, row.SchoolFeatureEnabled)
	})

	t.Run("key tidak dikenal → ErrUnknownFeature", func(t *testing.T) {
		fm := NewFeatureMatrix(&fakeFlagStore{})
		_, err := fm.Toggle(ctx, schoolID, "kantin")
		assert.ErrorIs(t, err, ErrUnknownFeature)
	})
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	t.Run("seed semua default enabled", func(t *testing.T) {
		store := &fakeFlagStore{}
		fm := NewFeatureMatrix(store)
		require.NoError(t, fm.SeedDefaults(ctx, schoolID))

		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		for _, key := range constants.DefaultFeatureKeys() {
			assert.True(t, enabled[key], "key %s", key)
		}
	})

	t.Run("rerun tidak menimpa toggle admin", func(t *testing.T) {
		store := &fakeFlagStore{}
		fm := NewFeatureMatrix(store)
		require.NoError(t, fm.SeedDefaults(ctx, schoolID))

		_, err := fm.Toggle(ctx, schoolID, constants.FeatureCBT)
		require.NoError(t, err)

		require.NoError(t, fm.SeedDefaults(ctx, schoolID))
		enabled, err := fm.EffectiveFeatures(ctx, schoolID)
		require.NoError(t, err)
		assert.False(t, enabled[constants.FeatureCBT])
	})
}
