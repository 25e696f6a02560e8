package service

import (
	"context"
	"errors"
	"testing"

	"usherhub/internal/entity"
	"usherhub/internal/repository"

	"github.com/google/uuid"
)

func seedDirectoryUsher(t *testing.T, users repository.UserRepository, email string, active bool, visible bool) *entity.User {
	t.Helper()
	user := &entity.User{
		Name:               "Usher " + email,
		Email:              email,
		PasswordHash:       "$2a$04$placeholderplaceholderpl",
		Role:               entity.UserRoleUsher,
		IsActive:           active,
		IsVisibleOnWebsite: visible,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed usher: %v", err)
	}
	return user
}

func TestListVisibleFiltersDirectory(t *testing.T) {
	db := setupTestDB(t, t.Name())
	users := repository.NewUserRepository(db)
	svc := NewUsherService(users)
	ctx := context.Background()

	shown := seedDirectoryUsher(t, users, "shown@example.com", true, true)
	seedDirectoryUsher(t, users, "hidden@example.com", true, false)
	seedDirectoryUsher(t, users, "inactive@example.com", false, true)

	listed, err := svc.ListVisible(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != shown.ID {
		t.Fatalf("only the active visible usher should list, got %d entries", len(listed))
	}
}

func TestGetVisibleEnforcesSameConstraints(t *testing.T) {
	db := setupTestDB(t, t.Name())
	users := repository.NewUserRepository(db)
	svc := NewUsherService(users)
	ctx := context.Background()

	shown := seedDirectoryUsher(t, users, "shown@example.com", true, true)
	hidden := seedDirectoryUsher(t, users, "hidden@example.com", true, false)

	got, err := svc.GetVisible(ctx, shown.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != shown.ID {
		t.Fatal("wrong usher returned")
	}

	for _, id := range []uuid.UUID{hidden.ID, uuid.New()} {
		_, err := svc.GetVisible(ctx, id)
		if !errors.Is(err, ErrUsherNotFound) {
			t.Fatalf("expected ErrUsherNotFound for %s, got %v", id, err)
		}
	}
}
