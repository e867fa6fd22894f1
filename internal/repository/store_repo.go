package repository

import (
	"context"
	"errors"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepo interface {
	Create(ctx context.Context, s *models.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetBySlug(ctx context.Context, slug string) (*models.Store, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
}

type storeRepo struct{ db *gorm.DB }

func NewStoreRepo(db *gorm.DB) StoreRepo { return &storeRepo{db: db} }

func (r *storeRepo) Create(ctx context.Context, s *models.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *storeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var s models.Store
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *storeRepo) GetBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var s models.Store
	err := r.db.WithContext(ctx).First(&s, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *storeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var list []models.Store
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("title ASC, created_at ASC").Find(&list).Error
	return list, err
}
