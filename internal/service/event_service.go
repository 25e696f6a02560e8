package service

import (
	"context"
	"strings"
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Client      string
	ClientEmail string
	UsherCount  int
	Images      []string
}

type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Client      *string
	ClientEmail *string
	UsherCount  *int
	Status      *entity.EventStatus
}

type EventService struct {
	events repository.EventRepository
}

func NewEventService(events repository.EventRepository) *EventService {
	return &EventService{events: events}
}

func (s *EventService) Create(ctx context.Context, input EventInput, createdBy uuid.UUID) (*entity.Event, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		input.Date.IsZero() ||
		strings.TrimSpace(input.Location) == "" ||
		strings.TrimSpace(input.Client) == "" {
		return nil, ErrInvalidInput
	}
	if input.UsherCount < 1 {
		return nil, ErrInvalidInput
	}

	event := &entity.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
		Location:    strings.TrimSpace(input.Location),
		Client:      strings.TrimSpace(input.Client),
		ClientEmail: strings.TrimSpace(input.ClientEmail),
		UsherCount:  input.UsherCount,
		Status:      entity.EventStatusPending,
		Images:      datatypes.NewJSONSlice(input.Images),
		CreatedBy:   createdBy,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, filter repository.EventFilter) ([]entity.Event, error) {
	return s.events.List(ctx, filter)
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, update EventUpdate) (*entity.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		event.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		event.Description = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.Location != nil {
		event.Location = strings.TrimSpace(*update.Location)
	}
	if update.Client != nil {
		event.Client = strings.TrimSpace(*update.Client)
	}
	if update.ClientEmail != nil {
		event.ClientEmail = strings.TrimSpace(*update.ClientEmail)
	}
	if update.UsherCount != nil {
		if *update.UsherCount < 1 {
			return nil, ErrInvalidInput
		}
		event.UsherCount = *update.UsherCount
	}
	if update.Status != nil {
		event.Status = *update.Status
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.events.Delete(ctx, event.ID)
}
