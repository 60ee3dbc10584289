package dto

import (
	"github.com/google/uuid"

	userModel "eduhost_backend/internals/features/users/user/model"
)

// UserResponse: bentuk user di payload login / me (sesuai kontrak frontend).
type UserResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	SchoolID *uuid.UUID `json:"school_id"`
}

func ToUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.UserName,
		Email:    u.Email,
		Role:     u.Role,
		SchoolID: u.UserSchoolID,
	}
}
