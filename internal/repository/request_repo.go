package repository

import (
	"context"
	"errors"

	"usherhub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestFilter struct {
	Status string
	Page   int
	Limit  int
}

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]entity.Request, int64, error)
	Update(ctx context.Context, request *entity.Request) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountPending(ctx context.Context) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *entity.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	var request entity.Request
	err := r.db.WithContext(ctx).
		Preload("SelectedUshers").
		Where("id = ?", id).
		First(&request).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &request, err
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]entity.Request, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Request{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("SelectedUshers").Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.Limit)
		}
	}

	var requests []entity.Request
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *requestRepository) Update(ctx context.Context, request *entity.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Request{}).
		Error
}

func (r *requestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Request{}).
		Where("status = ?", entity.RequestStatusPending).
		Count(&count).Error
	return count, err
}
