package service

import (
	"context"

	"usherhub/internal/entity"
	"usherhub/internal/repository"

	"github.com/google/uuid"
)

// UsherService serves the public directory. Only active ushers with the
// visible-on-website flag appear; availability is surfaced but does not hide
// anyone.
type UsherService struct {
	users repository.UserRepository
}

func NewUsherService(users repository.UserRepository) *UsherService {
	return &UsherService{users: users}
}

func (s *UsherService) ListVisible(ctx context.Context) ([]entity.User, error) {
	return s.users.ListVisibleUshers(ctx)
}

func (s *UsherService) GetVisible(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	usher, err := s.users.FindVisibleUsher(ctx, id)
	if err != nil {
		return nil, err
	}
	if usher == nil {
		return nil, ErrUsherNotFound
	}
	return usher, nil
}
