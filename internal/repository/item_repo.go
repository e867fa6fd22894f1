package repository

import (
	"context"
	"errors"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepo interface {
	Create(ctx context.Context, i *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) error

	// DecrementStock атомарно списывает qty со склада:
	// stock -= qty только если остатка хватает, иначе false.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	// IncrementStock возвращает qty на склад (отмена заказа).
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) ItemRepo { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, i *models.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var it models.Item
	err := r.db.WithContext(ctx).Preload("Store").First(&it, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &it, err
}

func (r *itemRepo) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	return r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *itemRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE items
SET stock = stock - @q,
    updated_at = now()
WHERE id = @id
  AND stock >= @q
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *itemRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE items
SET stock = stock + @q,
    updated_at = now()
WHERE id = @id
`, map[string]any{
		"id": id,
		"q":  qty,
	}).Error
}
