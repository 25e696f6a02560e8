package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/repository"

	"github.com/google/uuid"
)

func newEventService(t *testing.T) *EventService {
	db := setupTestDB(t, t.Name())
	return NewEventService(repository.NewEventRepository(db))
}

func validEventInput(date time.Time) EventInput {
	return EventInput{
		Title:       "Spring Gala",
		Description: "Annual fundraiser",
		Date:        date,
		Location:    "Grand Hall",
		Client:      "Acme Corp",
		ClientEmail: "events@acme.test",
		UsherCount:  4,
	}
}

func TestCreateEvent(t *testing.T) {
	svc := newEventService(t)
	ctx := context.Background()
	createdBy := uuid.New()

	event, err := svc.Create(ctx, validEventInput(time.Now().Add(48*time.Hour)), createdBy)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.Status != entity.EventStatusPending {
		t.Fatalf("new events start pending, got %s", event.Status)
	}
	if event.CreatedBy != createdBy {
		t.Fatal("creator should be recorded")
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc := newEventService(t)
	ctx := context.Background()
	date := time.Now().Add(48 * time.Hour)

	missingTitle := validEventInput(date)
	missingTitle.Title = "  "
	if _, err := svc.Create(ctx, missingTitle, uuid.New()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank title: expected ErrInvalidInput, got %v", err)
	}

	zeroUshers := validEventInput(date)
	zeroUshers.UsherCount = 0
	if _, err := svc.Create(ctx, zeroUshers, uuid.New()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero ushers: expected ErrInvalidInput, got %v", err)
	}

	noDate := validEventInput(time.Time{})
	if _, err := svc.Create(ctx, noDate, uuid.New()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero date: expected ErrInvalidInput, got %v", err)
	}
}

func TestListEventsFiltersAndSorts(t *testing.T) {
	svc := newEventService(t)
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	later := validEventInput(base.Add(72 * time.Hour))
	later.Title = "Later Event"
	if _, err := svc.Create(ctx, later, uuid.New()); err != nil {
		t.Fatalf("create later: %v", err)
	}
	earlier := validEventInput(base)
	earlier.Title = "Earlier Event"
	created, err := svc.Create(ctx, earlier, uuid.New())
	if err != nil {
		t.Fatalf("create earlier: %v", err)
	}

	events, err := svc.List(ctx, repository.EventFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 || events[0].Title != "Earlier Event" {
		t.Fatalf("expected date-ordered list, got %+v", events)
	}

	completed := entity.EventStatusCompleted
	if _, err := svc.Update(ctx, created.ID, EventUpdate{Status: &completed}); err != nil {
		t.Fatalf("update status: %v", err)
	}
	events, err = svc.List(ctx, repository.EventFilter{Status: string(entity.EventStatusCompleted)})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(events) != 1 || events[0].ID != created.ID {
		t.Fatalf("status filter failed, got %d events", len(events))
	}

	from := base.Add(24 * time.Hour)
	events, err = svc.List(ctx, repository.EventFilter{DateFrom: &from})
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Later Event" {
		t.Fatalf("date filter failed, got %d events", len(events))
	}
}

func TestUpdateEventRejectsBadUsherCount(t *testing.T) {
	svc := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, validEventInput(time.Now().Add(48*time.Hour)), uuid.New())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	zero := 0
	if _, err := svc.Update(ctx, event.ID, EventUpdate{UsherCount: &zero}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	svc := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, validEventInput(time.Now().Add(48*time.Hour)), uuid.New())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, event.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, event.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
