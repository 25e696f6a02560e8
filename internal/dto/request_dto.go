package dto

import (
	"time"

	"usherhub/internal/entity"
)

type CreateRequestRequest struct {
	ClientName     string   `json:"clientName" validate:"required,min=2,max=100"`
	ClientEmail    string   `json:"clientEmail" validate:"required,email"`
	ClientPhone    string   `json:"clientPhone" validate:"omitempty,e164"`
	EventDetails   string   `json:"eventDetails" validate:"required,max=2000"`
	EventType      string   `json:"eventType" validate:"omitempty,max=100"`
	SelectedUshers []string `json:"selectedUshers" validate:"omitempty,dive,uuid"`
}

type UpdateRequestRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

type RequestResponse struct {
	ID             string                `json:"id"`
	ClientName     string                `json:"clientName"`
	ClientEmail    string                `json:"clientEmail"`
	ClientPhone    string                `json:"clientPhone,omitempty"`
	EventDetails   string                `json:"eventDetails"`
	EventType      string                `json:"eventType"`
	SelectedUshers []PublicUsherResponse `json:"selectedUshers"`
	Status         string                `json:"status"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func RequestFromEntity(request *entity.Request) RequestResponse {
	return RequestResponse{
		ID:             request.ID.String(),
		ClientName:     request.ClientName,
		ClientEmail:    request.ClientEmail,
		ClientPhone:    request.ClientPhone,
		EventDetails:   request.EventDetails,
		EventType:      request.EventType,
		SelectedUshers: PublicUshersFromEntities(request.SelectedUshers),
		Status:         string(request.Status),
		Notes:          request.Notes,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}
}

func RequestsFromEntities(requests []entity.Request) []RequestResponse {
	responses := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, RequestFromEntity(&requests[i]))
	}
	return responses
}
