package dto

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"eduhost_backend/internals/features/schools/school/model"
)

var validate = validator.New()

// label DNS: lowercase alnum + strip, tidak boleh diawali/diakhiri strip
var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// SchoolCreateRequest - subdomain hanya di create; setelah itu immutable.
type SchoolCreateRequest struct {
	SchoolName      string         `json:"school_name" validate:"required,min=3,max=100"`
	SchoolSubdomain string         `json:"school_subdomain" validate:"required,min=2,max=63"`
	SchoolProfile   datatypes.JSON `json:"school_profile,omitempty"`
}

func (r *SchoolCreateRequest) Normalize() {
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	r.SchoolSubdomain = strings.ToLower(strings.TrimSpace(r.SchoolSubdomain))
}

func (r *SchoolCreateRequest) Validate() error {
	r.Normalize()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !subdomainRe.MatchString(r.SchoolSubdomain) {
		return errors.New("school_subdomain: hanya huruf kecil, angka, dan strip (label DNS valid).")
	}
	return nil
}

func (r *SchoolCreateRequest) ToModel() *model.SchoolModel {
	return &model.SchoolModel{
		SchoolName:      r.SchoolName,
		SchoolSubdomain: r.SchoolSubdomain,
		SchoolIsActive:  true,
		SchoolProfile:   r.SchoolProfile,
	}
}

// SchoolUpdateRequest - sengaja TANPA subdomain (lihat catatan di model).
type SchoolUpdateRequest struct {
	SchoolName    *string         `json:"school_name,omitempty" validate:"omitempty,min=3,max=100"`
	SchoolProfile *datatypes.JSON `json:"school_profile,omitempty"`
}

func (r *SchoolUpdateRequest) Validate() error {
	return validate.Struct(r)
}

type SchoolResponse struct {
	SchoolID               string         `json:"school_id"`
	SchoolName             string         `json:"school_name"`
	SchoolSubdomain        string         `json:"school_subdomain"`
	SchoolIsActive         bool           `json:"school_is_active"`
	SchoolResultsPublished bool           `json:"school_results_published"`
	SchoolProfile          datatypes.JSON `json:"school_profile,omitempty"`
}

func ToSchoolResponse(m *model.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:               m.SchoolID.String(),
		SchoolName:             m.SchoolName,
		SchoolSubdomain:        m.SchoolSubdomain,
		SchoolIsActive:         m.SchoolIsActive,
		SchoolResultsPublished: m.SchoolResultsPublished,
		SchoolProfile:          m.SchoolProfile,
	}
}

func ToSchoolResponseList(ms []model.SchoolModel) []SchoolResponse {
	out := make([]SchoolResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToSchoolResponse(&ms[i]))
	}
	return out
}
