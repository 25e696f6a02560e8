package repository

import (
	"context"
	"errors"
	"time"

	"usherhub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SignupCodeRepository interface {
	Create(ctx context.Context, code *entity.SignupCode) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SignupCode, error)
	FindValidByCode(ctx context.Context, code string, now time.Time) (*entity.SignupCode, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListAll(ctx context.Context) ([]entity.SignupCode, error)

	// Consume marks the code used iff it is still unused and unexpired, in a
	// single conditional update. Returns false when another registration won
	// the code first (or it expired in the meantime). This guard must hold
	// across processes, so it is a database write, not an application lock.
	Consume(ctx context.Context, id uuid.UUID, usedBy uuid.UUID, now time.Time) (bool, error)

	// DeleteUnused removes the code iff it has not been consumed. Returns
	// false when the row survived because it is used history.
	DeleteUnused(ctx context.Context, id uuid.UUID) (bool, error)

	CountUsed(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

type signupCodeRepository struct {
	db *gorm.DB
}

func NewSignupCodeRepository(db *gorm.DB) SignupCodeRepository {
	return &signupCodeRepository{db: db}
}

func (r *signupCodeRepository) Create(ctx context.Context, code *entity.SignupCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *signupCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SignupCode, error) {
	var code entity.SignupCode
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&code).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &code, err
}

func (r *signupCodeRepository) FindValidByCode(ctx context.Context, code string, now time.Time) (*entity.SignupCode, error) {
	var found entity.SignupCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_used = ? AND expires_at > ?", code, false, now).
		First(&found).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &found, err
}

func (r *signupCodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.SignupCode{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *signupCodeRepository) ListAll(ctx context.Context) ([]entity.SignupCode, error) {
	var codes []entity.SignupCode
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}

func (r *signupCodeRepository) Consume(ctx context.Context, id uuid.UUID, usedBy uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.SignupCode{}).
		Where("id = ? AND is_used = ? AND expires_at > ?", id, false, now).
		Updates(map[string]any{
			"is_used": true,
			"used_by": usedBy,
			"used_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *signupCodeRepository) DeleteUnused(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND is_used = ?", id, false).
		Delete(&entity.SignupCode{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *signupCodeRepository) CountUsed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.SignupCode{}).
		Where("is_used = ?", true).
		Count(&count).Error
	return count, err
}

func (r *signupCodeRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.SignupCode{}).
		Where("is_used = ?", false).
		Count(&count).Error
	return count, err
}
