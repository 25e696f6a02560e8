package service

import (
	"context"
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type TokenIssuer interface {
	IssueToken(user entity.User) (string, time.Duration, error)
}

type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, user *entity.User) error
	SendRequestNotification(ctx context.Context, request *entity.Request, ushers []entity.User) error
}

// BlobStore accepts raw image bytes and returns a durable URL. The core only
// ever stores the returned reference string.
type BlobStore interface {
	UploadImage(ctx context.Context, data []byte, folder string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = utils.BcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type JWTTokenIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTTokenIssuer) IssueToken(user entity.User) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, utils.ErrInvalidToken
	}
	return j.Manager.IssueToken(user.ID.String(), string(user.Role))
}
