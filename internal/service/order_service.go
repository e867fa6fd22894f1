package service

import (
	"context"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"

	"github.com/google/uuid"
)

// OrderService — чтение истории заказов покупателя и сводок продавца.
type OrderService struct {
	orders    repository.OrderRepo
	cartItems repository.CartItemRepo
	stores    repository.StoreRepo
	invoices  repository.InvoiceRepo
}

func NewOrderService(
	orders repository.OrderRepo,
	cartItems repository.CartItemRepo,
	stores repository.StoreRepo,
	invoices repository.InvoiceRepo,
) *OrderService {
	return &OrderService{
		orders:    orders,
		cartItems: cartItems,
		stores:    stores,
		invoices:  invoices,
	}
}

// ListUserOrders возвращает заказы пользователя, новые сверху.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, status *models.OrderStatus, limit, offset int) ([]*models.Order, int64, error) {
	return s.orders.List(ctx, repository.OrderListFilter{
		UserID: &userID,
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

// GetOrderForUser возвращает заказ только его владельцу.
func (s *OrderService) GetOrderForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	ord, err := s.orders.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

// GetLastOrder — последний оформленный заказ пользователя.
func (s *OrderService) GetLastOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	ord, err := s.orders.GetLastForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

// UpdateStatus переводит заказ по жизненному циклу доставки
// (on_the_way, is_ready, completed, deactivated).
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	ord, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ord == nil {
		return ErrOrderNotFound
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// GetOrderItems — позиции заказа.
func (s *OrderService) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.CartItem, error) {
	return s.cartItems.ListByOrder(ctx, orderID)
}

// CountNewOrdersForSeller — число новых заказов по всем магазинам продавца.
func (s *OrderService) CountNewOrdersForSeller(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	stores, err := s.stores.ListByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	ids := make([]uuid.UUID, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	return s.orders.CountNewByStores(ctx, ids)
}

// GetOrderInvoice — квитанция оплаченного заказа, если оплата прошла.
func (s *OrderService) GetOrderInvoice(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	inv, err := s.invoices.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}
