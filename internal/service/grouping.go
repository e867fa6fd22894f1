package service

import (
	"context"
	"encoding/json"

	"github.com/KrauseKarl/shop-diplom-sub000/config"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GroupingService раскладывает корзину по магазинам: подытог на магазин,
// скидка при превышении порога, пометки о нехватке товара на складе.
type GroupingService struct {
	cartItems repository.CartItemRepo
	cfg       config.Checkout
	cache     BookCacher
}

func NewGroupingService(cartItems repository.CartItemRepo, cfg config.Checkout, cache BookCacher) *GroupingService {
	return &GroupingService{
		cartItems: cartItems,
		cfg:       cfg,
		cache:     cache,
	}
}

// GroupByStore строит книгу корзины. Пустая корзина даёт пустой список групп,
// это не ошибка: "нет группы магазина" значит "нечего оплачивать".
func (s *GroupingService) GroupByStore(ctx context.Context, cart *models.Cart) (*CartBook, error) {
	if cart == nil {
		return nil, ErrCartNotFound
	}

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, cart.ID); ok {
			var book CartBook
			if err := json.Unmarshal(data, &book); err == nil {
				return &book, nil
			}
			// битый кэш перезаписываем свежей книгой
			s.cache.Invalidate(ctx, cart.ID)
		}
	}

	rows, err := s.cartItems.ListUnpaidEligible(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	book := &CartBook{
		Cart:             *cart,
		Groups:           []StoreGroup{},
		TotalDeliveryFee: decimal.Zero,
	}

	// группы в порядке первого появления магазина в выборке
	index := map[uuid.UUID]int{}
	for _, row := range rows {
		if row.Item == nil {
			return nil, ErrItemNotFound
		}
		if row.Item.Store == nil {
			return nil, ErrStoreNotFound
		}
		store := *row.Item.Store

		gi, ok := index[store.ID]
		if !ok {
			gi = len(book.Groups)
			index[store.ID] = gi
			book.Groups = append(book.Groups, StoreGroup{
				Store:    store,
				Subtotal: decimal.Zero,
				Items:    []LineEntry{},
			})
		}

		entry := LineEntry{CartItem: row}
		if row.Quantity > row.Item.Stock {
			stock := row.Item.Stock
			entry.InsufficientStock = &stock
		}

		g := &book.Groups[gi]
		g.Subtotal = g.Subtotal.Add(row.Total)
		g.Items = append(g.Items, entry)
	}

	for i := range book.Groups {
		g := &book.Groups[i]
		g.Discount, g.DiscountedTotal = applyDiscount(g.Store, g.Subtotal)
		g.DeliveryFee = s.deliveryFee(g.DiscountedTotal)
		book.TotalDeliveryFee = book.TotalDeliveryFee.Add(g.DeliveryFee)
	}

	if s.cache != nil {
		if data, err := json.Marshal(book); err == nil {
			s.cache.Set(ctx, cart.ID, data)
		}
	}

	return book, nil
}

// applyDiscount: сумма выше порога магазина — скидка в процентах,
// итог округляется до целой денежной единицы; иначе сумма не меняется.
func applyDiscount(store models.Store, subtotal decimal.Decimal) (int, decimal.Decimal) {
	if store.Discount <= 0 || !subtotal.GreaterThan(store.MinForDiscount) {
		return 0, subtotal
	}
	rate := hundred.Sub(decimal.NewFromInt(int64(store.Discount))).Div(hundred)
	return store.Discount, subtotal.Mul(rate).Round(0)
}

// deliveryFee — денежная стоимость доставки по магазину: бесплатна от порога.
func (s *GroupingService) deliveryFee(discountedTotal decimal.Decimal) decimal.Decimal {
	if discountedTotal.LessThan(s.cfg.MinFreeDelivery) {
		return s.cfg.DeliveryFee
	}
	return decimal.Zero
}
