package dto

import (
	"time"

	"usherhub/internal/entity"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=128"`
	SignupCode string `json:"signupCode" validate:"required,min=6,max=10"`
}

type ProfileResponse struct {
	Bio                         string   `json:"bio"`
	Experience                  string   `json:"experience"`
	Skills                      []string `json:"skills"`
	Availability                bool     `json:"availability"`
	ProfileImage                string   `json:"profileImage"`
	ProfileImageRejected        bool     `json:"profileImageRejected"`
	ProfileImageRejectionReason string   `json:"profileImageRejectionReason"`
	Phone                       string   `json:"phone"`
	Location                    string   `json:"location"`
}

// UserResponse is the authenticated projection: the caller's (or an admin's)
// view of an account. The password hash never leaves the service.
type UserResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Role               string          `json:"role"`
	IsActive           bool            `json:"isActive"`
	IsVisibleOnWebsite bool            `json:"isVisibleOnWebsite"`
	LastLoginAt        *time.Time      `json:"lastLoginAt,omitempty"`
	Profile            ProfileResponse `json:"profile"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// PublicUsherResponse is the directory projection: no email, no flags.
type PublicUsherResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Profile   ProfileResponse `json:"profile"`
	CreatedAt time.Time       `json:"createdAt"`
}

func ProfileFromEntity(p entity.Profile) ProfileResponse {
	skills := []string(p.Skills)
	if skills == nil {
		skills = []string{}
	}
	return ProfileResponse{
		Bio:                         p.Bio,
		Experience:                  p.Experience,
		Skills:                      skills,
		Availability:                p.Availability,
		ProfileImage:                p.ProfileImage,
		ProfileImageRejected:        p.ProfileImageRejected,
		ProfileImageRejectionReason: p.ProfileImageRejectionReason,
		Phone:                       p.Phone,
		Location:                    p.Location,
	}
}

func UserFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Name:               user.Name,
		Email:              user.Email,
		Role:               string(user.Role),
		IsActive:           user.IsActive,
		IsVisibleOnWebsite: user.IsVisibleOnWebsite,
		LastLoginAt:        user.LastLoginAt,
		Profile:            ProfileFromEntity(user.Profile),
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}

func UsersFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserFromEntity(&users[i]))
	}
	return responses
}

func PublicUsherFromEntity(user *entity.User) PublicUsherResponse {
	return PublicUsherResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Role:      string(user.Role),
		Profile:   ProfileFromEntity(user.Profile),
		CreatedAt: user.CreatedAt,
	}
}

func PublicUshersFromEntities(users []entity.User) []PublicUsherResponse {
	responses := make([]PublicUsherResponse, 0, len(users))
	for i := range users {
		responses = append(responses, PublicUsherFromEntity(&users[i]))
	}
	return responses
}
