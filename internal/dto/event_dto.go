package dto

import (
	"time"

	"usherhub/internal/entity"
)

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=5,max=100"`
	Description string    `json:"description" validate:"required,min=10,max=500"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,min=5,max=200"`
	Client      string    `json:"client" validate:"required,min=2,max=100"`
	ClientEmail string    `json:"clientEmail" validate:"required,email"`
	UsherCount  int       `json:"usherCount" validate:"required,min=1"`
	Images      []string  `json:"images" validate:"omitempty,dive,url"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=5,max=100"`
	Description *string    `json:"description" validate:"omitempty,min=10,max=500"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,min=5,max=200"`
	Client      *string    `json:"client" validate:"omitempty,min=2,max=100"`
	ClientEmail *string    `json:"clientEmail" validate:"omitempty,email"`
	UsherCount  *int       `json:"usherCount" validate:"omitempty,min=1"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending active completed cancelled"`
}

type EventResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
	Location    string                `json:"location"`
	Client      string                `json:"client"`
	ClientEmail string                `json:"clientEmail"`
	UsherCount  int                   `json:"usherCount"`
	Status      string                `json:"status"`
	Ushers      []PublicUsherResponse `json:"ushers"`
	Images      []string              `json:"images"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func EventFromEntity(event *entity.Event) EventResponse {
	images := []string(event.Images)
	if images == nil {
		images = []string{}
	}
	return EventResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		Client:      event.Client,
		ClientEmail: event.ClientEmail,
		UsherCount:  event.UsherCount,
		Status:      string(event.Status),
		Ushers:      PublicUshersFromEntities(event.Ushers),
		Images:      images,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func EventsFromEntities(events []entity.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, EventFromEntity(&events[i]))
	}
	return responses
}
