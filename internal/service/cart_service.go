package service

import (
	"context"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"

	"github.com/google/uuid"
)

// CartService отвечает за жизненный цикл корзины: ленивое создание,
// добавление и правку позиций, слияние анонимной корзины при входе.
type CartService struct {
	carts     repository.CartRepo
	cartItems repository.CartItemRepo
	catalog   repository.ItemRepo
	cache     BookCacher
}

func NewCartService(carts repository.CartRepo, cartItems repository.CartItemRepo, catalog repository.ItemRepo, cache BookCacher) *CartService {
	return &CartService{
		carts:     carts,
		cartItems: cartItems,
		catalog:   catalog,
		cache:     cache,
	}
}

// GetUserCart возвращает живую корзину пользователя, создавая её при первом
// обращении.
func (s *CartService) GetUserCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.carts.GetLiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: &userID}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetSessionCart возвращает живую анонимную корзину или nil.
func (s *CartService) GetSessionCart(ctx context.Context, sessionKey string) (*models.Cart, error) {
	return s.carts.GetLiveBySession(ctx, sessionKey)
}

func (s *CartService) GetOrCreateSessionCart(ctx context.Context, sessionKey string) (*models.Cart, error) {
	cart, err := s.carts.GetLiveBySession(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{SessionKey: &sessionKey, IsAnonymous: true}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem кладёт товар в корзину. Цена снимается с каталога один раз,
// здесь и сейчас; существующая неоплаченная позиция того же товара
// увеличивается на qty.
func (s *CartService) AddItem(ctx context.Context, cart *models.Cart, itemID uuid.UUID, qty int) (*models.CartItem, error) {
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if cart.IsArchived {
		return nil, ErrCartArchived
	}
	if qty <= 0 {
		return nil, ErrQuantityInvalid
	}

	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	defer s.invalidate(ctx, cart.ID)

	existing, err := s.cartItems.GetUnpaidByCartAndItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += qty
		if err := s.cartItems.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	ci := &models.CartItem{
		CartID:   cart.ID,
		ItemID:   itemID,
		Quantity: qty,
		Price:    item.Price,
		Status:   models.CartItemStatusInCart,
	}
	if err := s.cartItems.Create(ctx, ci); err != nil {
		return nil, err
	}
	return ci, nil
}

// UpdateQuantity меняет количество позиции; ноль удаляет её из корзины.
func (s *CartService) UpdateQuantity(ctx context.Context, cart *models.Cart, cartItemID uuid.UUID, qty int) error {
	if cart == nil {
		return ErrCartNotFound
	}
	if qty < 0 {
		return ErrQuantityInvalid
	}

	ci, err := s.cartItems.GetByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if ci == nil || ci.CartID != cart.ID || ci.IsPaid {
		return ErrItemNotFound
	}

	defer s.invalidate(ctx, cart.ID)

	if qty == 0 {
		return s.cartItems.Delete(ctx, ci.ID)
	}
	ci.Quantity = qty
	return s.cartItems.Save(ctx, ci)
}

func (s *CartService) RemoveItem(ctx context.Context, cart *models.Cart, cartItemID uuid.UUID) error {
	if cart == nil {
		return ErrCartNotFound
	}
	ci, err := s.cartItems.GetByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if ci == nil || ci.CartID != cart.ID || ci.IsPaid {
		return ErrItemNotFound
	}
	defer s.invalidate(ctx, cart.ID)
	return s.cartItems.Delete(ctx, ci.ID)
}

// MergeSessionCart сливает анонимную корзину в корзину пользователя при входе:
// количества совпадающих товаров складываются, остальные позиции переезжают,
// анонимная корзина удаляется. Отсутствие анонимной корзины — не ошибка.
func (s *CartService) MergeSessionCart(ctx context.Context, userID uuid.UUID, sessionKey string) (*models.Cart, error) {
	userCart, err := s.GetUserCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	anonCart, err := s.carts.GetLiveBySession(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if anonCart == nil {
		return userCart, nil
	}

	defer s.invalidate(ctx, userCart.ID)

	anonItems, err := s.cartItems.ListByCart(ctx, anonCart.ID)
	if err != nil {
		return nil, err
	}

	for _, anonItem := range anonItems {
		if anonItem.IsPaid {
			// оплаченная строка принадлежит заказу: удаление анонимной
			// корзины каскадом уничтожило бы её, поэтому она переезжает
			if err := s.cartItems.Rehome(ctx, anonItem.ID, userCart.ID); err != nil {
				return nil, err
			}
			continue
		}
		existing, err := s.cartItems.GetUnpaidByCartAndItem(ctx, userCart.ID, anonItem.ItemID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Quantity += anonItem.Quantity
			if err := s.cartItems.Save(ctx, existing); err != nil {
				return nil, err
			}
			if err := s.cartItems.Delete(ctx, anonItem.ID); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.cartItems.Rehome(ctx, anonItem.ID, userCart.ID); err != nil {
			return nil, err
		}
	}

	if err := s.carts.Delete(ctx, anonCart.ID); err != nil {
		return nil, err
	}
	return userCart, nil
}

func (s *CartService) invalidate(ctx context.Context, cartID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cartID)
	}
}
