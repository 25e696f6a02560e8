package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/repository"
	"usherhub/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
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

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// recordingEmailSender captures notification calls so tests can wait for the
// fire-and-forget goroutines.
type recordingEmailSender struct {
	mu       sync.Mutex
	welcomes []string
	requests []uuid.UUID
	notified chan struct{}
}

func newRecordingEmailSender() *recordingEmailSender {
	return &recordingEmailSender{notified: make(chan struct{}, 8)}
}

func (s *recordingEmailSender) SendWelcomeEmail(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	s.welcomes = append(s.welcomes, user.Email)
	s.mu.Unlock()
	s.notified <- struct{}{}
	return nil
}

func (s *recordingEmailSender) SendRequestNotification(ctx context.Context, request *entity.Request, ushers []entity.User) error {
	s.mu.Lock()
	s.requests = append(s.requests, request.ID)
	s.mu.Unlock()
	s.notified <- struct{}{}
	return nil
}

func (s *recordingEmailSender) waitForNotification(t *testing.T) {
	t.Helper()
	select {
	case <-s.notified:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

type stubBlobStore struct {
	url string
	err error
}

func (s stubBlobStore) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.url != "" {
		return s.url, nil
	}
	return "https://cdn.test/" + folder + "/image.jpg", nil
}

type authFixture struct {
	db    *gorm.DB
	users repository.UserRepository
	codes repository.SignupCodeRepository
	email *recordingEmailSender
	clock fixedClock
	svc   *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	db := setupTestDB(t, t.Name())
	users := repository.NewUserRepository(db)
	codes := repository.NewSignupCodeRepository(db)
	email := newRecordingEmailSender()
	clock := fixedClock{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}

	manager := utils.JWTManager{Secret: []byte("test-secret"), Issuer: "usherhub-test", TTL: time.Hour}
	svc := NewAuthService(
		users,
		codes,
		BcryptPasswordHasher{Cost: bcrypt.MinCost},
		JWTTokenIssuer{Manager: &manager},
		email,
		stubBlobStore{},
		clock,
		testLogger(),
	)
	return &authFixture{db: db, users: users, codes: codes, email: email, clock: clock, svc: svc}
}

func (f *authFixture) seedCode(t *testing.T, value string, expiresAt time.Time) *entity.SignupCode {
	t.Helper()
	code := &entity.SignupCode{Code: value, CreatedBy: uuid.New(), ExpiresAt: expiresAt}
	if err := f.codes.Create(context.Background(), code); err != nil {
		t.Fatalf("seed code: %v", err)
	}
	return code
}

func (f *authFixture) seedUser(t *testing.T, email string, password string, role entity.UserRole) *entity.User {
	t.Helper()
	hash, err := BcryptPasswordHasher{Cost: bcrypt.MinCost}.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &entity.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		Profile:      entity.Profile{Availability: true},
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
