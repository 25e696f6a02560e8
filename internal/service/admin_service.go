package service

import (
	"context"
	"errors"
	"time"

	"usherhub/internal/entity"
	"usherhub/internal/repository"
	"usherhub/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const signupCodeTTL = 30 * 24 * time.Hour

// generateRetryLimit bounds the uniqueness retry loop. With 36^8 possible
// codes a collision is already unlikely; hitting the limit means the RNG or
// the ledger is broken.
const generateRetryLimit = 10

type DashboardStats struct {
	TotalUshers     int64 `json:"totalUshers"`
	ActiveUshers    int64 `json:"activeUshers"`
	TotalEvents     int64 `json:"totalEvents"`
	PendingRequests int64 `json:"pendingRequests"`
	AvailableCodes  int64 `json:"availableCodes"`
	UsedCodes       int64 `json:"usedCodes"`
}

type AdminService struct {
	users    repository.UserRepository
	codes    repository.SignupCodeRepository
	events   repository.EventRepository
	requests repository.RequestRepository
	clock    Clock
	log      *logrus.Logger
}

func NewAdminService(
	users repository.UserRepository,
	codes repository.SignupCodeRepository,
	events repository.EventRepository,
	requests repository.RequestRepository,
	clock Clock,
	log *logrus.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		codes:    codes,
		events:   events,
		requests: requests,
		clock:    clock,
		log:      log,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUshers, err = s.users.CountUshers(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUshers, err = s.users.CountAvailableUshers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEvents, err = s.events.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingRequests, err = s.requests.CountPending(ctx); err != nil {
		return nil, err
	}
	if stats.AvailableCodes, err = s.codes.CountAvailable(ctx); err != nil {
		return nil, err
	}
	if stats.UsedCodes, err = s.codes.CountUsed(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// GenerateCode issues a fresh signup code. Uniqueness is actively checked
// against the ledger, not assumed from the keyspace size.
func (s *AdminService) GenerateCode(ctx context.Context, issuedBy uuid.UUID) (*entity.SignupCode, error) {
	for attempt := 0; attempt < generateRetryLimit; attempt++ {
		value, err := utils.GenerateSignupCode(utils.SignupCodeLength)
		if err != nil {
			return nil, err
		}
		exists, err := s.codes.CodeExists(ctx, value)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		code := &entity.SignupCode{
			Code:      value,
			CreatedBy: issuedBy,
			ExpiresAt: s.now().Add(signupCodeTTL),
		}
		if err := s.codes.Create(ctx, code); err != nil {
			// Unique index race with a concurrent generate; try again.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"code": code.Code, "issued_by": issuedBy}).
			Info("signup code generated")
		return code, nil
	}
	return nil, errors.New("could not generate a unique signup code")
}

func (s *AdminService) ListCodes(ctx context.Context) ([]entity.SignupCode, error) {
	return s.codes.ListAll(ctx)
}

// DeleteCode removes an unused code. Used codes are immutable history; the
// delete itself is conditional so a code consumed after the admin loaded the
// list still survives.
func (s *AdminService) DeleteCode(ctx context.Context, id uuid.UUID) error {
	code, err := s.codes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if code == nil {
		return ErrNotFound
	}
	if code.IsUsed {
		return ErrCodeAlreadyUsed
	}

	deleted, err := s.codes.DeleteUnused(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCodeAlreadyUsed
	}
	return nil
}

func (s *AdminService) ListUshers(ctx context.Context, filter repository.UsherFilter) ([]entity.User, int64, error) {
	return s.users.ListUshers(ctx, filter)
}

// UpdateUsher applies the shared field whitelist with admin privileges.
func (s *AdminService) UpdateUsher(ctx context.Context, id uuid.UUID, update UserUpdate, rawKeys []string) (*entity.User, []string, error) {
	usher, err := s.findUsher(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rejected := RejectedFields(rawKeys, true)
	update.Apply(usher)

	if err := s.users.Update(ctx, usher); err != nil {
		return nil, nil, err
	}
	return usher, rejected, nil
}

// DeactivateUsher flips isActive off: the account stops authenticating and
// disappears from public listings, but the record stays.
func (s *AdminService) DeactivateUsher(ctx context.Context, id uuid.UUID) error {
	usher, err := s.findUsher(ctx, id)
	if err != nil {
		return err
	}
	usher.IsActive = false
	return s.users.Update(ctx, usher)
}

// PurgeUsher permanently deletes the record. Callers choose this or
// DeactivateUsher explicitly; there is no implicit policy.
func (s *AdminService) PurgeUsher(ctx context.Context, id uuid.UUID) error {
	usher, err := s.findUsher(ctx, id)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"usher_id": usher.ID, "email": usher.Email}).
		Warn("usher permanently deleted")
	return s.users.Delete(ctx, usher.ID)
}

func (s *AdminService) SetUsherVisibility(ctx context.Context, id uuid.UUID, visible bool) (*entity.User, error) {
	usher, err := s.findUsher(ctx, id)
	if err != nil {
		return nil, err
	}
	usher.IsVisibleOnWebsite = visible
	if err := s.users.Update(ctx, usher); err != nil {
		return nil, err
	}
	return usher, nil
}

// RejectProfilePicture clears the usher's image and records why, prompting
// them to upload a replacement on next login.
func (s *AdminService) RejectProfilePicture(ctx context.Context, id uuid.UUID, reason string) (*entity.User, error) {
	usher, err := s.findUsher(ctx, id)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "Image does not meet professional standards"
	}
	usher.Profile.ProfileImage = ""
	usher.Profile.ProfileImageRejected = true
	usher.Profile.ProfileImageRejectionReason = reason

	if err := s.users.Update(ctx, usher); err != nil {
		return nil, err
	}
	return usher, nil
}

func (s *AdminService) findUsher(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.UserRoleUsher {
		return nil, ErrUsherNotFound
	}
	return user, nil
}

func (s *AdminService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
