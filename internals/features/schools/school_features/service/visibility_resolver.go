// file: internals/features/schools/school_features/service/visibility_resolver.go
package service

import (
	"context"

	"github.com/google/uuid"

	"eduhost_backend/internals/constants"
	schoolModel "eduhost_backend/internals/features/schools/school/model"
)

// SchoolReader: lookup sekolah by id (buat cek results_published).
type SchoolReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*schoolModel.SchoolModel, error)
}

// VisibilityResolver: gabungkan matrix sekolah + allow-list role + rule
// prerequisite → daftar fitur final yang boleh dilihat (school, role).
type VisibilityResolver struct {
	Matrix  *FeatureMatrix
	Schools SchoolReader
}

func NewVisibilityResolver(matrix *FeatureMatrix, schools SchoolReader) *VisibilityResolver {
	return &VisibilityResolver{Matrix: matrix, Schools: schools}
}

// VisibleFeatures: list terurut (urutan allow-list role, bukan urutan row DB),
// tanpa duplikat. Role tidak dikenal → list kosong (fail closed).
func (vr *VisibilityResolver) VisibleFeatures(ctx context.Context, schoolID uuid.UUID, role string) ([]string, error) {
	enabled, err := vr.Matrix.EffectiveFeatures(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	school, err := vr.Schools.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return composeVisible(enabled, role, school.SchoolResultsPublished), nil
}

// composeVisible: pipeline murni, urut:
//  1. base = enabled ∩ allowed (urutan allowed dipertahankan)
//  2. prerequisite promotion: prasyarat ikut tampil kalau salah satu
//     dependent-nya aktif dan role boleh melihat prasyaratnya
//  3. gate publikasi: results_published=false → "results" dicabut, dari
//     manapun datangnya
//  4. dedup (jaga urutan kemunculan pertama)
func composeVisible(enabled map[string]bool, role string, resultsPublished bool) []string {
	allowed := constants.RoleAllowedFeatures[role] // role unknown → nil → kosong

	base := make([]string, 0, len(allowed))
	for _, key := range allowed {
		if enabled[key] {
			base = append(base, key)
		}
	}

	for _, rule := range constants.FeaturePrerequisites {
		if !containsKey(allowed, rule.Prerequisite) || containsKey(base, rule.Prerequisite) {
			continue
		}
		if intersects(base, rule.Dependents) {
			base = append(base, rule.Prerequisite)
		}
	}

	if !resultsPublished {
		base = removeKey(base, constants.FeatureResults)
	}

	return dedupe(base)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func intersects(keys, others []string) bool {
	for _, k := range keys {
		if containsKey(others, k) {
			return true
		}
	}
	return false
}

func removeKey(keys []string, key string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
