package service

import (
	"context"

	"github.com/KrauseKarl/shop-diplom-sub000/config"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"

	"github.com/google/uuid"
)

// CheckoutForm — данные формы оформления заказа. Валидация полей остаётся
// на внешнем слое, сюда попадают уже очищенные значения.
type CheckoutForm struct {
	Name      string
	Email     string
	Telephone string
	Delivery  models.DeliveryKind
	Pay       models.PayKind
	City      string
	Address   string
	Comment   string
}

// CheckoutService превращает сгруппированную корзину в заказы:
// по одному заказу на магазин, каждый магазин — в своей транзакции.
type CheckoutService struct {
	tx        repository.TxManager
	carts     repository.CartRepo
	addresses repository.AddressRepo
	grouping  *GroupingService
	cfg       config.Checkout
	cache     BookCacher
}

func NewCheckoutService(
	tx repository.TxManager,
	carts repository.CartRepo,
	addresses repository.AddressRepo,
	grouping *GroupingService,
	cfg config.Checkout,
	cache BookCacher,
) *CheckoutService {
	return &CheckoutService{
		tx:        tx,
		carts:     carts,
		addresses: addresses,
		grouping:  grouping,
		cfg:       cfg,
		cache:     cache,
	}
}

// Checkout оформляет корзину. Магазины обрабатываются последовательно,
// каждый в своей транзакции: падение одного магазина не откатывает уже
// созданные заказы других — корзина остаётся живой с их неоплаченными
// позициями, и оформление можно повторить. Корзина архивируется только
// после успешной обработки всех магазинов.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, cart *models.Cart, form CheckoutForm) ([]models.Order, error) {
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if cart.IsArchived {
		return nil, ErrCartArchived
	}

	// книга строится по свежим данным склада, мимо кэша
	if s.cache != nil {
		s.cache.Invalidate(ctx, cart.ID)
	}
	book, err := s.grouping.GroupByStore(ctx, cart)
	if err != nil {
		return nil, err
	}
	if book.IsEmpty() {
		return nil, ErrCartEmpty
	}

	orders := make([]models.Order, 0, len(book.Groups))
	for _, group := range book.Groups {
		order, err := s.checkoutStore(ctx, userID, group, form)
		if err != nil {
			// заказы предыдущих магазинов уже зафиксированы и остаются в силе
			return orders, err
		}
		orders = append(orders, *order)
	}

	if err := s.carts.Archive(ctx, cart.ID); err != nil {
		return orders, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cart.ID)
	}

	if form.City != "" && form.Address != "" {
		if _, err := s.addresses.GetOrCreate(ctx, userID, form.City, form.Address); err != nil {
			return orders, err
		}
	}

	return orders, nil
}

// checkoutStore — единица работы одного магазина: заказ, передача позиций,
// списание склада. Всё или ничего в рамках этого магазина.
func (s *CheckoutService) checkoutStore(ctx context.Context, userID uuid.UUID, group StoreGroup, form CheckoutForm) (*models.Order, error) {
	var order *models.Order

	err := s.tx.WithTx(func(tx *repository.Repository) error {
		store, err := tx.Stores.GetByID(ctx, group.Store.ID)
		if err != nil {
			return err
		}
		if store == nil {
			return ErrStoreNotFound
		}

		fee := group.DeliveryFee
		if form.Delivery == models.DeliveryExpress {
			fee = fee.Add(s.cfg.ExpressDeliveryPrice)
		}

		order = &models.Order{
			UserID:       userID,
			StoreID:      store.ID,
			Name:         form.Name,
			Email:        form.Email,
			Telephone:    form.Telephone,
			Delivery:     form.Delivery,
			Pay:          form.Pay,
			City:         form.City,
			Address:      form.Address,
			Comment:      form.Comment,
			Status:       models.OrderStatusCreated,
			TotalSum:     group.DiscountedTotal,
			DeliveryFees: fee,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		for _, entry := range group.Items {
			converted, err := tx.CartItems.MarkPaid(ctx, entry.CartItem.ID, order.ID)
			if err != nil {
				return err
			}
			if !converted {
				// строку уже забрало параллельное оформление этой же корзины:
				// корзина конвертируется в заказы ровно один раз
				return ErrAlreadyCheckedOut
			}
			ok, err := tx.Items.DecrementStock(ctx, entry.CartItem.ItemID, entry.CartItem.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// параллельная корзина успела забрать остаток:
				// заказ этого магазина не создаётся, склад не уходит в минус
				return ErrInsufficientStock
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
