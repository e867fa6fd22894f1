package repository

import (
	"context"
	"errors"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepo interface {
	// GetOrCreate возвращает существующий адрес пользователя или создаёт новый.
	GetOrCreate(ctx context.Context, userID uuid.UUID, city, address string) (*models.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type addressRepo struct{ db *gorm.DB }

func NewAddressRepo(db *gorm.DB) AddressRepo { return &addressRepo{db: db} }

func (r *addressRepo) GetOrCreate(ctx context.Context, userID uuid.UUID, city, address string) (*models.Address, error) {
	var a models.Address
	err := r.db.WithContext(ctx).
		First(&a, "user_id = ? AND city = ? AND address = ?", userID, city, address).Error
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	a = models.Address{UserID: userID, City: city, Address: address}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var list []models.Address
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *addressRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Address{}, "id = ? AND user_id = ?", id, userID)
	return tx.RowsAffected > 0, tx.Error
}
