package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduhost_backend/internals/constants"
	schoolModel "eduhost_backend/internals/features/schools/school/model"
)

type fakeSchoolReader struct {
	school *schoolModel.SchoolModel
}

func (f *fakeSchoolReader) FindByID(ctx context.Context, id uuid.UUID) (*schoolModel.SchoolModel, error) {
	return f.school, nil
}

func TestComposeVisible(t *testing.T) {
	t.Run("base = enabled ∩ allowed, urutan allow-list", func(t *testing.T) {
		enabled := map[string]bool{
			constants.FeatureAnnouncements: true,
			constants.FeatureSubjects:      true,
			constants.FeatureAttendance:    true,
		}
		got := composeVisible(enabled, constants.RoleTeacher, true)
		assert.Equal(t, []string{
			constants.FeatureSubjects,
			constants.FeatureAttendance,
			constants.FeatureAnnouncements,
		}, got)
	})

	t.Run("attendance tidak pernah tampil ke student", func(t *testing.T) {
		enabled := map[string]bool{constants.FeatureAttendance: true}
		got := composeVisible(enabled, constants.RoleStudent, true)
		assert.NotContains(t, got, constants.FeatureAttendance)
	})

	t.Run("subjects ikut tampil kalau dependent aktif", func(t *testing.T) {
		// topics nyala, e-library mati, subjects tidak punya flag eksplisit
		enabled := map[string]bool{constants.FeatureTopics: true}
		got := composeVisible(enabled, constants.RoleStudent, true)
		assert.Contains(t, got, constants.FeatureSubjects)
		assert.Contains(t, got, constants.FeatureTopics)
		assert.NotContains(t, got, constants.FeatureELibrary)
	})

	t.Run("tanpa dependent aktif subjects tidak dipromosikan", func(t *testing.T) {
		enabled := map[string]bool{constants.FeatureAnnouncements: true}
		got := composeVisible(enabled, constants.RoleStudent, true)
		assert.NotContains(t, got, constants.FeatureSubjects)
	})

	t.Run("subjects eksplisit tidak dobel", func(t *testing.T) {
		enabled := map[string]bool{
			constants.FeatureSubjects: true,
			constants.FeatureTopics:   true,
		}
		got := composeVisible(enabled, constants.RoleTeacher, true)
		count := 0
		for _, k := range got {
			if k == constants.FeatureSubjects {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("results dicabut saat belum dipublikasikan", func(t *testing.T) {
		enabled := map[string]bool{constants.FeatureResults: true}
		assert.NotContains(t, composeVisible(enabled, constants.RoleStudent, false), constants.FeatureResults)
		assert.Contains(t, composeVisible(enabled, constants.RoleStudent, true), constants.FeatureResults)
	})

	t.Run("role tidak dikenal → kosong", func(t *testing.T) {
		enabled := map[string]bool{constants.FeatureTopics: true}
		assert.Empty(t, composeVisible(enabled, "satpam", true))
		assert.Empty(t, composeVisible(enabled, constants.RoleSuperAdmin, true))
	})

	t.Run("tidak pernah bocor key di luar allow-list role", func(t *testing.T) {
		enabled := map[string]bool{}
		for _, key := range constants.DefaultFeatureKeys() {
			enabled[key] = true
		}
		got := composeVisible(enabled, constants.RoleStudent, true)
		allowed := constants.RoleAllowedFeatures[constants.RoleStudent]
		for _, k := range got {
			assert.Contains(t, allowed, k)
		}
	})
}

func TestVisibleFeatures(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()

	// end to end lewat matrix: row legacy + prerequisite promotion + gate results
	store := &fakeFlagStore{}
	store.add(schoolID, "elearning", true) // legacy e-library
	store.add(schoolID, constants.FeatureResults, true)
	reader := &fakeSchoolReader{school: &schoolModel.SchoolModel{
		SchoolID:               schoolID,
		SchoolResultsPublished: false,
	}}
	vr := NewVisibilityResolver(NewFeatureMatrix(store), reader)

	// promosi prerequisite nempel di belakang base
	got, err := vr.VisibleFeatures(ctx, schoolID, constants.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, []string{constants.FeatureELibrary, constants.FeatureSubjects}, got)

	reader.school.SchoolResultsPublished = true
	got, err = vr.VisibleFeatures(ctx, schoolID, constants.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, []string{constants.FeatureELibrary, constants.FeatureResults, constants.FeatureSubjects}, got)
}
