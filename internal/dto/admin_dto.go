package dto

import (
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/service"
)

type SignupCodeResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	IsUsed    bool       `json:"isUsed"`
	UsedBy    *string    `json:"usedBy,omitempty"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedBy string     `json:"createdBy"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

func SignupCodeFromEntity(code *entity.SignupCode) SignupCodeResponse {
	response := SignupCodeResponse{
		ID:        code.ID.String(),
		Code:      code.Code,
		IsUsed:    code.IsUsed,
		UsedAt:    code.UsedAt,
		CreatedBy: code.CreatedBy.String(),
		ExpiresAt: code.ExpiresAt,
		CreatedAt: code.CreatedAt,
	}
	if code.UsedBy != nil {
		usedBy := code.UsedBy.String()
		response.UsedBy = &usedBy
	}
	return response
}

func SignupCodesFromEntities(codes []entity.SignupCode) []SignupCodeResponse {
	responses := make([]SignupCodeResponse, 0, len(codes))
	for i := range codes {
		responses = append(responses, SignupCodeFromEntity(&codes[i]))
	}
	return responses
}

type ProfileUpdateRequest struct {
	Bio          *string  `json:"bio" validate:"omitempty,max=500"`
	Experience   *string  `json:"experience" validate:"omitempty,max=100"`
	Skills       []string `json:"skills" validate:"omitempty,min=1,max=10,dive,min=2,max=50"`
	Availability *bool    `json:"availability"`
	Phone        *string  `json:"phone" validate:"omitempty,e164"`
	Location     *string  `json:"location" validate:"omitempty,max=200"`
}

// UserUpdateRequest is the shared update payload for both the self-update
// and admin-update paths; the service-side whitelist decides which fields a
// given caller may actually change.
type UserUpdateRequest struct {
	Name               *string               `json:"name" validate:"omitempty,min=2,max=50"`
	IsActive           *bool                 `json:"isActive"`
	IsVisibleOnWebsite *bool                 `json:"isVisibleOnWebsite"`
	Profile            *ProfileUpdateRequest `json:"profile"`
}

func (r UserUpdateRequest) ToUpdate() service.UserUpdate {
	update := service.UserUpdate{
		Name:               r.Name,
		IsActive:           r.IsActive,
		IsVisibleOnWebsite: r.IsVisibleOnWebsite,
	}
	if r.Profile != nil {
		update.Profile = service.ProfileUpdate{
			Bio:          r.Profile.Bio,
			Experience:   r.Profile.Experience,
			Skills:       r.Profile.Skills,
			Availability: r.Profile.Availability,
			Phone:        r.Profile.Phone,
			Location:     r.Profile.Location,
		}
	}
	return update
}

type VisibilityRequest struct {
	IsVisible bool `json:"isVisible"`
}

type RejectPictureRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func NewPagination(page int, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     limit > 0 && int64(page*limit) < total,
		HasPrev:     page > 1,
	}
}
