package service_test

import (
	"context"
	"testing"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/service"

	"github.com/google/uuid"
)

func TestGetOrderForUser_NotFound(t *testing.T) {
	svc := service.NewOrderService(&MockOrderRepo{}, &MockCartItemRepo{}, &MockStoreRepo{}, &MockInvoiceRepo{})
	if _, err := svc.GetOrderForUser(context.Background(), uuid.New(), uuid.New()); err != service.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestListUserOrders_PassesFilter(t *testing.T) {
	userID := uuid.New()
	status := models.OrderStatusPaid

	orders := &MockOrderRepo{
		ListFunc: func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
			if f.UserID == nil || *f.UserID != userID {
				t.Fatalf("filter user: %v", f.UserID)
			}
			if f.Status == nil || *f.Status != status {
				t.Fatalf("filter status: %v", f.Status)
			}
			if f.Limit != 10 || f.Offset != 20 {
				t.Fatalf("filter paging: %d/%d", f.Limit, f.Offset)
			}
			return []*models.Order{{ID: uuid.New()}}, 1, nil
		},
	}
	svc := service.NewOrderService(orders, &MockCartItemRepo{}, &MockStoreRepo{}, &MockInvoiceRepo{})

	list, total, err := svc.ListUserOrders(context.Background(), userID, &status, 10, 20)
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("ListUserOrders: list=%d total=%d err=%v", len(list), total, err)
	}
}

func TestCountNewOrdersForSeller(t *testing.T) {
	ownerID := uuid.New()
	storeIDs := []uuid.UUID{uuid.New(), uuid.New()}

	stores := &MockStoreRepo{
		ListByOwnerFunc: func(ctx context.Context, id uuid.UUID) ([]models.Store, error) {
			return []models.Store{{ID: storeIDs[0]}, {ID: storeIDs[1]}}, nil
		},
	}
	orders := &MockOrderRepo{
		CountNewByStoresFunc: func(ctx context.Context, ids []uuid.UUID) (int64, error) {
			if len(ids) != 2 || ids[0] != storeIDs[0] || ids[1] != storeIDs[1] {
				t.Fatalf("store ids: %v", ids)
			}
			return 7, nil
		},
	}
	svc := service.NewOrderService(orders, &MockCartItemRepo{}, stores, &MockInvoiceRepo{})

	cnt, err := svc.CountNewOrdersForSeller(context.Background(), ownerID)
	if err != nil || cnt != 7 {
		t.Fatalf("CountNewOrdersForSeller: %d, %v", cnt, err)
	}
}

func TestUpdateStatus(t *testing.T) {
	order := &models.Order{ID: uuid.New(), Status: models.OrderStatusPaid}

	var updated models.OrderStatus
	orders := &MockOrderRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			if id == order.ID {
				return order, nil
			}
			return nil, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
			updated = status
			return nil
		},
	}
	svc := service.NewOrderService(orders, &MockCartItemRepo{}, &MockStoreRepo{}, &MockInvoiceRepo{})

	if err := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusOnTheWay); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated != models.OrderStatusOnTheWay {
		t.Fatalf("status passed: %s", updated)
	}

	if err := svc.UpdateStatus(context.Background(), uuid.New(), models.OrderStatusOnTheWay); err != service.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestGetOrderInvoice_NotFound(t *testing.T) {
	svc := service.NewOrderService(&MockOrderRepo{}, &MockCartItemRepo{}, &MockStoreRepo{}, &MockInvoiceRepo{})
	if _, err := svc.GetOrderInvoice(context.Background(), uuid.New()); err != service.ErrInvoiceNotFound {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}
