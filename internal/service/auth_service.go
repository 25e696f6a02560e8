package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/repository"
	"usherhub/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Burned once per failed lookup so login timing does not reveal whether the
// email exists.
const dummyPasswordHash = "$2a$12$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users  repository.UserRepository
	codes  repository.SignupCodeRepository
	hasher PasswordHasher
	tokens TokenIssuer
	email  EmailSender
	blobs  BlobStore
	clock  Clock
	log    *logrus.Logger
}

func NewAuthService(
	users repository.UserRepository,
	codes repository.SignupCodeRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	email EmailSender,
	blobs BlobStore,
	clock Clock,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		codes:  codes,
		hasher: hasher,
		tokens: tokens,
		email:  email,
		blobs:  blobs,
		clock:  clock,
		log:    log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token               string
	ExpiresIn           int64
	User                *entity.User
	NeedsProfilePicture bool
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.hasher.Verify(dummyPasswordHash, input.Password)
		s.log.WithField("email", email).Info("login failed: unknown or inactive account")
		return nil, ErrInvalidCredentials
	}

	if !utils.IsHash(user.PasswordHash) {
		s.log.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"hash_prefix": hashPrefix(user.PasswordHash),
		}).Error("stored password hash is not in bcrypt format")
		return nil, ErrCorruptPasswordHash
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		s.log.WithField("user_id", user.ID).Info("login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, ttl, err := s.tokens.IssueToken(*user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:               token,
		ExpiresIn:           int64(ttl.Seconds()),
		User:                user,
		NeedsProfilePicture: user.Role == entity.UserRoleUsher && user.Profile.ProfileImage == "",
	}, nil
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	SignupCode string
	// Optional raw profile image; stored via the blob store when present.
	Image []byte
}

// Register runs the signup-code-gated registration workflow. Write order is
// fixed: the user row is created first, then the code is consumed with a
// conditional update. If user creation fails the code stays unused; if the
// conditional consumption loses a race the fresh user row is removed and the
// caller is told the code is invalid.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.SignupCode) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	now := s.now()
	codeValue := strings.ToUpper(strings.TrimSpace(input.SignupCode))
	code, err := s.codes.FindValidByCode(ctx, codeValue, now)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrInvalidSignupCode
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if len(input.Image) > 0 && s.blobs != nil {
		url, err := s.blobs.UploadImage(ctx, input.Image, "profiles")
		if err != nil {
			// Image storage is an upstream concern; registration proceeds.
			s.log.WithError(err).Warn("profile image upload failed during registration")
		} else {
			imageURL = url
		}
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleUsher,
		IsActive:     true,
		SignupCodeID: &code.ID,
		Profile: entity.Profile{
			Availability: true,
			ProfileImage: imageURL,
		},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	won, err := s.codes.Consume(ctx, code.ID, user.ID, now)
	if err != nil {
		return nil, err
	}
	if !won {
		// Another registration consumed the code between the read and the
		// conditional write. This attempt loses; its user row goes away.
		if err := s.users.Delete(ctx, user.ID); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).
				Error("failed to remove user after losing signup code race")
		}
		return nil, ErrInvalidSignupCode
	}

	s.notifyWelcome(user)

	token, ttl, err := s.tokens.IssueToken(*user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:               token,
		ExpiresIn:           int64(ttl.Seconds()),
		User:                user,
		NeedsProfilePicture: imageURL == "",
	}, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateOwnProfile applies the shared field whitelist for the caller's own
// account. rawKeys are the top-level keys the client sent; any that the
// whitelist refuses are reported back rather than silently dropped.
func (s *AuthService) UpdateOwnProfile(ctx context.Context, userID uuid.UUID, update UserUpdate, rawKeys []string) (*entity.User, []string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}

	rejected := RejectedFields(rawKeys, false)
	update.IsActive = nil
	update.IsVisibleOnWebsite = nil
	update.Apply(user)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, err
	}
	return user, rejected, nil
}

// ReplaceProfileImage uploads a new image and clears any rejection flags set
// by an admin on the previous one.
func (s *AuthService) ReplaceProfileImage(ctx context.Context, userID uuid.UUID, image []byte) (*entity.User, error) {
	if len(image) == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	url, err := s.blobs.UploadImage(ctx, image, "profiles")
	if err != nil {
		return nil, err
	}

	user.Profile.ProfileImage = url
	user.Profile.ProfileImageRejected = false
	user.Profile.ProfileImageRejectionReason = ""
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// notifyWelcome dispatches the welcome email without blocking the response.
// Failures are logged and swallowed; registration already succeeded.
func (s *AuthService) notifyWelcome(user *entity.User) {
	if s.email == nil {
		return
	}
	snapshot := *user
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.email.SendWelcomeEmail(ctx, &snapshot); err != nil {
			s.log.WithError(err).WithField("email", snapshot.Email).
				Warn("welcome email failed")
		}
	}()
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func hashPrefix(hash string) string {
	if len(hash) > 4 {
		return hash[:4]
	}
	return hash
}
