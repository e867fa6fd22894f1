package repository

import (
	"context"
	"errors"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepo interface {
	Create(ctx context.Context, c *models.Cart) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// GetLiveByUser возвращает неархивную корзину пользователя, nil если её нет.
	GetLiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	// GetLiveBySession возвращает неархивную анонимную корзину по ключу сессии.
	GetLiveBySession(ctx context.Context, sessionKey string) (*models.Cart, error)
	Archive(ctx context.Context, id uuid.UUID) error
	// AttachToUser превращает анонимную корзину в пользовательскую.
	AttachToUser(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) Create(ctx context.Context, c *models.Cart) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cartRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) GetLiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).
		First(&c, "user_id = ? AND NOT is_archived", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) GetLiveBySession(ctx context.Context, sessionKey string) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).
		First(&c, "session_key = ? AND is_anonymous AND NOT is_archived", sessionKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) Archive(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", id).Update("is_archived", true).Error
}

func (r *cartRepo) AttachToUser(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", id).Updates(map[string]any{
		"user_id":      userID,
		"session_key":  nil,
		"is_anonymous": false,
	}).Error
}

func (r *cartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Cart{}, "id = ?", id).Error
}
