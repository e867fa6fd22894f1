package repository

import (
	"context"
	"errors"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartItemRepo interface {
	Create(ctx context.Context, ci *models.CartItem) error
	Save(ctx context.Context, ci *models.CartItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	// GetUnpaidByCartAndItem ищет неоплаченную позицию этого товара в корзине.
	GetUnpaidByCartAndItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	// ListUnpaidEligible — неоплаченные позиции корзины, чей товар доступен и
	// есть на складе; свежие правки показываются первыми.
	ListUnpaidEligible(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CartItem, error)
	CountUnpaid(ctx context.Context, cartID uuid.UUID) (int64, error)
	// MarkPaid помечает позицию оплаченной и передаёт её заказу.
	// Возвращает false, если позиция уже ушла в заказ: параллельное
	// оформление той же корзины не конвертирует строку дважды.
	MarkPaid(ctx context.Context, id, orderID uuid.UUID) (bool, error)
	// MarkOrderItemsStatus переводит позиции заказа в новый статус.
	MarkOrderItemsStatus(ctx context.Context, orderID uuid.UUID, status models.CartItemStatus) error
	// Rehome переносит позицию в другую корзину (слияние при входе).
	Rehome(ctx context.Context, id, cartID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type cartItemRepo struct{ db *gorm.DB }

func NewCartItemRepo(db *gorm.DB) CartItemRepo { return &cartItemRepo{db: db} }

func (r *cartItemRepo) Create(ctx context.Context, ci *models.CartItem) error {
	return r.db.WithContext(ctx).Create(ci).Error
}

func (r *cartItemRepo) Save(ctx context.Context, ci *models.CartItem) error {
	return r.db.WithContext(ctx).Save(ci).Error
}

func (r *cartItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var ci models.CartItem
	err := r.db.WithContext(ctx).Preload("Item").First(&ci, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ci, err
}

func (r *cartItemRepo) GetUnpaidByCartAndItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var ci models.CartItem
	err := r.db.WithContext(ctx).
		First(&ci, "cart_id = ? AND item_id = ? AND NOT is_paid", cartID, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ci, err
}

func (r *cartItemRepo) ListUnpaidEligible(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = cart_items.item_id").
		Where("cart_items.cart_id = ? AND NOT cart_items.is_paid", cartID).
		Where("items.is_available AND items.stock > 0").
		Order("cart_items.updated_at DESC").
		Preload("Item").
		Preload("Item.Store").
		Find(&rows).Error
	return rows, err
}

func (r *cartItemRepo) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).Preload("Item").
		Where("cart_id = ?", cartID).Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

func (r *cartItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).Preload("Item").
		Where("order_id = ?", orderID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *cartItemRepo) CountUnpaid(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND NOT is_paid", cartID).Count(&cnt).Error
	return cnt, err
}

func (r *cartItemRepo) MarkPaid(ctx context.Context, id, orderID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND NOT is_paid AND order_id IS NULL", id).
		Updates(map[string]any{
			"is_paid":  true,
			"order_id": orderID,
			"status":   models.CartItemStatusNotPaid,
		})
	return tx.RowsAffected > 0, tx.Error
}

func (r *cartItemRepo) MarkOrderItemsStatus(ctx context.Context, orderID uuid.UUID, status models.CartItemStatus) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("order_id = ?", orderID).Update("status", status).Error
}

func (r *cartItemRepo) Rehome(ctx context.Context, id, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", id).Update("cart_id", cartID).Error
}

func (r *cartItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
}
