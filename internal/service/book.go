package service

import (
	"context"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineEntry — позиция корзины внутри группы магазина.
// InsufficientStock заполняется текущим остатком, когда запрошено больше,
// чем есть на складе ("осталось всего N"); nil — товара хватает.
type LineEntry struct {
	CartItem          models.CartItem `json:"cart_item"`
	InsufficientStock *int            `json:"insufficient_stock,omitempty"`
}

// StoreGroup — срез корзины по одному магазину.
type StoreGroup struct {
	Store models.Store `json:"store"`
	// Сумма позиций до скидки.
	Subtotal decimal.Decimal `json:"subtotal"`
	// Применённый процент скидки; 0, если порог не достигнут.
	Discount int `json:"discount"`
	// Сумма после скидки, округлённая до целой денежной единицы.
	DiscountedTotal decimal.Decimal `json:"discounted_total"`
	// Денежная стоимость доставки по магазину.
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Items       []LineEntry     `json:"items"`
}

// CartBook — корзина, сгруппированная по магазинам.
type CartBook struct {
	Cart   models.Cart  `json:"cart"`
	Groups []StoreGroup `json:"groups"`
	// Суммарная денежная стоимость доставки по всем магазинам корзины.
	TotalDeliveryFee decimal.Decimal `json:"total_delivery_fee"`
}

// TotalPrice — сумма всех групп до скидок.
func (b *CartBook) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, g := range b.Groups {
		total = total.Add(g.Subtotal)
	}
	return total
}

// TotalWithDiscount — сумма всех групп после скидок.
func (b *CartBook) TotalWithDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, g := range b.Groups {
		total = total.Add(g.DiscountedTotal)
	}
	return total
}

// TotalQuantity — число позиций во всех группах.
func (b *CartBook) TotalQuantity() int {
	n := 0
	for _, g := range b.Groups {
		n += len(g.Items)
	}
	return n
}

func (b *CartBook) IsEmpty() bool { return b.TotalQuantity() == 0 }

// BookCacher кэширует сериализованную книгу корзины; nil-реализация допустима.
type BookCacher interface {
	Get(ctx context.Context, cartID uuid.UUID) ([]byte, bool)
	Set(ctx context.Context, cartID uuid.UUID, data []byte)
	Invalidate(ctx context.Context, cartID uuid.UUID)
}
