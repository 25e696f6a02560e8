package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"usherhub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.SignupCode{}, &entity.Event{}, &entity.Request{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCode(t *testing.T, repo SignupCodeRepository, code string, expiresAt time.Time) *entity.SignupCode {
	t.Helper()
	record := &entity.SignupCode{
		Code:      code,
		CreatedBy: uuid.New(),
		ExpiresAt: expiresAt,
	}
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("seed code: %v", err)
	}
	return record
}

func TestSignupCodeConsumeExactlyOnce(t *testing.T) {
	repo := NewSignupCodeRepository(setupTestDB(t, t.Name()))
	ctx := context.Background()
	now := time.Now()
	code := seedCode(t, repo, "AB12CD34", now.Add(time.Hour))

	won, err := repo.Consume(ctx, code.ID, uuid.New(), now)
	if err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if !won {
		t.Fatal("first consume should win")
	}

	won, err = repo.Consume(ctx, code.ID, uuid.New(), now)
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if won {
		t.Fatal("second consume must lose")
	}

	stored, err := repo.FindByID(ctx, code.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !stored.IsUsed || stored.UsedBy == nil || stored.UsedAt == nil {
		t.Fatalf("consumed code should record usage, got %+v", stored)
	}
}

func TestSignupCodeConsumeRejectsExpired(t *testing.T) {
	repo := NewSignupCodeRepository(setupTestDB(t, t.Name()))
	ctx := context.Background()
	now := time.Now()
	code := seedCode(t, repo, "EXPIRED1", now.Add(-time.Minute))

	won, err := repo.Consume(ctx, code.ID, uuid.New(), now)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if won {
		t.Fatal("expired code must not be consumable")
	}
}

func TestSignupCodeFindValidByCode(t *testing.T) {
	repo := NewSignupCodeRepository(setupTestDB(t, t.Name()))
	ctx := context.Background()
	now := time.Now()

	valid := seedCode(t, repo, "VALID001", now.Add(time.Hour))
	seedCode(t, repo, "EXPIRED2", now.Add(-time.Hour))
	used := seedCode(t, repo, "USEDCODE", now.Add(time.Hour))
	if _, err := repo.Consume(ctx, used.ID, uuid.New(), now); err != nil {
		t.Fatalf("consume: %v", err)
	}

	found, err := repo.FindValidByCode(ctx, "VALID001", now)
	if err != nil {
		t.Fatalf("find valid: %v", err)
	}
	if found == nil || found.ID != valid.ID {
		t.Fatalf("expected VALID001, got %+v", found)
	}

	for _, code := range []string{"EXPIRED2", "USEDCODE", "MISSING0"} {
		found, err := repo.FindValidByCode(ctx, code, now)
		if err != nil {
			t.Fatalf("find %s: %v", code, err)
		}
		if found != nil {
			t.Fatalf("code %s should not be valid", code)
		}
	}
}

func TestSignupCodeDeleteUnusedSparesConsumed(t *testing.T) {
	repo := NewSignupCodeRepository(setupTestDB(t, t.Name()))
	ctx := context.Background()
	now := time.Now()

	unused := seedCode(t, repo, "DELETEME", now.Add(time.Hour))
	used := seedCode(t, repo, "KEEPHIST", now.Add(time.Hour))
	if _, err := repo.Consume(ctx, used.ID, uuid.New(), now); err != nil {
		t.Fatalf("consume: %v", err)
	}

	deleted, err := repo.DeleteUnused(ctx, unused.ID)
	if err != nil {
		t.Fatalf("delete unused: %v", err)
	}
	if !deleted {
		t.Fatal("unused code should delete")
	}

	deleted, err = repo.DeleteUnused(ctx, used.ID)
	if err != nil {
		t.Fatalf("delete used: %v", err)
	}
	if deleted {
		t.Fatal("used code must survive delete")
	}

	survivor, err := repo.FindByID(ctx, used.ID)
	if err != nil {
		t.Fatalf("find survivor: %v", err)
	}
	if survivor == nil {
		t.Fatal("used code row should still exist")
	}
}

func TestSignupCodeDuplicateCodeRejected(t *testing.T) {
	repo := NewSignupCodeRepository(setupTestDB(t, t.Name()))
	now := time.Now()
	seedCode(t, repo, "SAMECODE", now.Add(time.Hour))

	dup := &entity.SignupCode{Code: "SAMECODE", CreatedBy: uuid.New(), ExpiresAt: now.Add(time.Hour)}
	err := repo.Create(context.Background(), dup)
	if err == nil {
		t.Fatal("duplicate code value should be rejected by the unique index")
	}
}

func TestSignupCodeCounts(t *testing.T) {
	repo := NewSignupCodeRepository(setupTestDB(t, t.Name()))
	ctx := context.Background()
	now := time.Now()

	seedCode(t, repo, "COUNT001", now.Add(time.Hour))
	seedCode(t, repo, "COUNT002", now.Add(time.Hour))
	used := seedCode(t, repo, "COUNT003", now.Add(time.Hour))
	if _, err := repo.Consume(ctx, used.ID, uuid.New(), now); err != nil {
		t.Fatalf("consume: %v", err)
	}

	available, err := repo.CountAvailable(ctx)
	if err != nil {
		t.Fatalf("count available: %v", err)
	}
	usedCount, err := repo.CountUsed(ctx)
	if err != nil {
		t.Fatalf("count used: %v", err)
	}
	if available != 2 || usedCount != 1 {
		t.Fatalf("expected 2 available / 1 used, got %d / %d", available, usedCount)
	}
}
