package repository

import (
	"context"
	"errors"
	"time"

	"usherhub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsherFilter narrows the admin usher listing.
type UsherFilter struct {
	Search string
	Page   int
	Limit  int
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListUshers(ctx context.Context, filter UsherFilter) ([]entity.User, int64, error)
	ListVisibleUshers(ctx context.Context) ([]entity.User, error)
	FindVisibleUsher(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindActiveUshers(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)

	CountUshers(ctx context.Context) (int64, error)
	CountAvailableUshers(ctx context.Context) (int64, error)
	AdminExists(ctx context.Context) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("last_login_at", &at).
		Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.User{}).
		Error
}

func (r *userRepository) ListUshers(ctx context.Context, filter UsherFilter) ([]entity.User, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("role = ?", entity.UserRoleUsher)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.Limit)
		}
	}

	var ushers []entity.User
	if err := query.Find(&ushers).Error; err != nil {
		return nil, 0, err
	}
	return ushers, total, nil
}

func (r *userRepository) ListVisibleUshers(ctx context.Context) ([]entity.User, error) {
	var ushers []entity.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ? AND is_visible_on_website = ?", entity.UserRoleUsher, true, true).
		Order("name").
		Find(&ushers).Error
	return ushers, err
}

func (r *userRepository) FindVisibleUsher(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var usher entity.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND is_active = ? AND is_visible_on_website = ?",
			id, entity.UserRoleUsher, true, true).
		First(&usher).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &usher, err
}

func (r *userRepository) FindActiveUshers(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ushers []entity.User
	err := r.db.WithContext(ctx).
		Where("id IN ? AND role = ? AND is_active = ?", ids, entity.UserRoleUsher, true).
		Find(&ushers).Error
	return ushers, err
}

func (r *userRepository) CountUshers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("role = ? AND is_active = ?", entity.UserRoleUsher, true).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountAvailableUshers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("role = ? AND is_active = ? AND profile_availability = ?", entity.UserRoleUsher, true, true).
		Count(&count).Error
	return count, err
}

func (r *userRepository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("role = ?", entity.UserRoleAdmin).
		Count(&count).Error
	return count > 0, err
}
