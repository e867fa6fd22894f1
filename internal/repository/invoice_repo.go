package repository

import (
	"context"
	"errors"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepo interface {
	// CreateIdempotent вставляет квитанцию, молча пропуская повтор по тому же
	// ключу попытки или заказу. Возвращает true, если строка была создана.
	CreateIdempotent(ctx context.Context, inv *models.Invoice) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error)
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepo(db *gorm.DB) InvoiceRepo { return &invoiceRepo{db: db} }

func (r *invoiceRepo) CreateIdempotent(ctx context.Context, inv *models.Invoice) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(inv)
	return tx.RowsAffected > 0, tx.Error
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).Preload("Order").First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *invoiceRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).First(&inv, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}
