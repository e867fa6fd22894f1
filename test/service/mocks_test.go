package service_test

import (
	"context"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/service"

	"github.com/google/uuid"
)

// Моки для всех зависимостей сервисного слоя

// MockCartRepo
type MockCartRepo struct {
	CreateFunc           func(ctx context.Context, c *models.Cart) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	GetLiveByUserFunc    func(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetLiveBySessionFunc func(ctx context.Context, sessionKey string) (*models.Cart, error)
	ArchiveFunc          func(ctx context.Context, id uuid.UUID) error
	AttachToUserFunc     func(ctx context.Context, id, userID uuid.UUID) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCartRepo) Create(ctx context.Context, c *models.Cart) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCartRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCartRepo) GetLiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if m.GetLiveByUserFunc != nil {
		return m.GetLiveByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCartRepo) GetLiveBySession(ctx context.Context, sessionKey string) (*models.Cart, error) {
	if m.GetLiveBySessionFunc != nil {
		return m.GetLiveBySessionFunc(ctx, sessionKey)
	}
	return nil, nil
}

func (m *MockCartRepo) Archive(ctx context.Context, id uuid.UUID) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id)
	}
	return nil
}

func (m *MockCartRepo) AttachToUser(ctx context.Context, id, userID uuid.UUID) error {
	if m.AttachToUserFunc != nil {
		return m.AttachToUserFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCartItemRepo
type MockCartItemRepo struct {
	CreateFunc                 func(ctx context.Context, ci *models.CartItem) error
	SaveFunc                   func(ctx context.Context, ci *models.CartItem) error
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	GetUnpaidByCartAndItemFunc func(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	ListUnpaidEligibleFunc     func(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ListByCartFunc             func(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ListByOrderFunc            func(ctx context.Context, orderID uuid.UUID) ([]models.CartItem, error)
	CountUnpaidFunc            func(ctx context.Context, cartID uuid.UUID) (int64, error)
	MarkPaidFunc               func(ctx context.Context, id, orderID uuid.UUID) (bool, error)
	MarkOrderItemsStatusFunc   func(ctx context.Context, orderID uuid.UUID, status models.CartItemStatus) error
	RehomeFunc                 func(ctx context.Context, id, cartID uuid.UUID) error
	DeleteFunc                 func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCartItemRepo) Create(ctx context.Context, ci *models.CartItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ci)
	}
	return nil
}

func (m *MockCartItemRepo) Save(ctx context.Context, ci *models.CartItem) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ci)
	}
	return nil
}

func (m *MockCartItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCartItemRepo) GetUnpaidByCartAndItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	if m.GetUnpaidByCartAndItemFunc != nil {
		return m.GetUnpaidByCartAndItemFunc(ctx, cartID, itemID)
	}
	return nil, nil
}

func (m *MockCartItemRepo) ListUnpaidEligible(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	if m.ListUnpaidEligibleFunc != nil {
		return m.ListUnpaidEligibleFunc(ctx, cartID)
	}
	return nil, nil
}

func (m *MockCartItemRepo) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	if m.ListByCartFunc != nil {
		return m.ListByCartFunc(ctx, cartID)
	}
	return nil, nil
}

func (m *MockCartItemRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.CartItem, error) {
	if m.ListByOrderFunc != nil {
		return m.ListByOrderFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockCartItemRepo) CountUnpaid(ctx context.Context, cartID uuid.UUID) (int64, error) {
	if m.CountUnpaidFunc != nil {
		return m.CountUnpaidFunc(ctx, cartID)
	}
	return 0, nil
}

func (m *MockCartItemRepo) MarkPaid(ctx context.Context, id, orderID uuid.UUID) (bool, error) {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, id, orderID)
	}
	return true, nil
}

func (m *MockCartItemRepo) MarkOrderItemsStatus(ctx context.Context, orderID uuid.UUID, status models.CartItemStatus) error {
	if m.MarkOrderItemsStatusFunc != nil {
		return m.MarkOrderItemsStatusFunc(ctx, orderID, status)
	}
	return nil
}

func (m *MockCartItemRepo) Rehome(ctx context.Context, id, cartID uuid.UUID) error {
	if m.RehomeFunc != nil {
		return m.RehomeFunc(ctx, id, cartID)
	}
	return nil
}

func (m *MockCartItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockItemRepo
type MockItemRepo struct {
	CreateFunc         func(ctx context.Context, i *models.Item) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Item, error)
	SetStockFunc       func(ctx context.Context, id uuid.UUID, stock int) error
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	IncrementStockFunc func(ctx context.Context, id uuid.UUID, qty int) error
}

func (m *MockItemRepo) Create(ctx context.Context, i *models.Item) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, i)
	}
	return nil
}

func (m *MockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockItemRepo) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	if m.SetStockFunc != nil {
		return m.SetStockFunc(ctx, id, stock)
	}
	return nil
}

func (m *MockItemRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

func (m *MockItemRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	if m.IncrementStockFunc != nil {
		return m.IncrementStockFunc(ctx, id, qty)
	}
	return nil
}

// MockStoreRepo
type MockStoreRepo struct {
	CreateFunc      func(ctx context.Context, s *models.Store) error
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetBySlugFunc   func(ctx context.Context, slug string) (*models.Store, error)
	ListByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
}

func (m *MockStoreRepo) Create(ctx context.Context, s *models.Store) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *MockStoreRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStoreRepo) GetBySlug(ctx context.Context, slug string) (*models.Store, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockStoreRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc           func(ctx context.Context, o *models.Order) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUserFunc   func(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	GetLastForUserFunc   func(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	ListFunc             func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	CountNewByStoresFunc func(ctx context.Context, storeIDs []uuid.UUID) (int64, error)
	UpdateStatusFunc     func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	MarkPaidFunc         func(ctx context.Context, id uuid.UUID) (bool, error)
	SetErrorFunc         func(ctx context.Context, id uuid.UUID, msg string) error
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetLastForUser(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	if m.GetLastForUserFunc != nil {
		return m.GetLastForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) CountNewByStores(ctx context.Context, storeIDs []uuid.UUID) (int64, error) {
	if m.CountNewByStoresFunc != nil {
		return m.CountNewByStoresFunc(ctx, storeIDs)
	}
	return 0, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderRepo) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, id)
	}
	return true, nil
}

func (m *MockOrderRepo) SetError(ctx context.Context, id uuid.UUID, msg string) error {
	if m.SetErrorFunc != nil {
		return m.SetErrorFunc(ctx, id, msg)
	}
	return nil
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	CreateIdempotentFunc func(ctx context.Context, inv *models.Invoice) (bool, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetByOrderIDFunc     func(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error)
}

func (m *MockInvoiceRepo) CreateIdempotent(ctx context.Context, inv *models.Invoice) (bool, error) {
	if m.CreateIdempotentFunc != nil {
		return m.CreateIdempotentFunc(ctx, inv)
	}
	return true, nil
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockInvoiceRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

// MockAddressRepo
type MockAddressRepo struct {
	GetOrCreateFunc func(ctx context.Context, userID uuid.UUID, city, address string) (*models.Address, error)
	ListByUserFunc  func(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	DeleteFunc      func(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

func (m *MockAddressRepo) GetOrCreate(ctx context.Context, userID uuid.UUID, city, address string) (*models.Address, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID, city, address)
	}
	return &models.Address{UserID: userID, City: city, Address: address}, nil
}

func (m *MockAddressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAddressRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return false, nil
}

// MockQueue
type MockQueue struct {
	PublishSettlementFunc func(ctx context.Context, task service.SettlementTask) error
}

func (m *MockQueue) PublishSettlement(ctx context.Context, task service.SettlementTask) error {
	if m.PublishSettlementFunc != nil {
		return m.PublishSettlementFunc(ctx, task)
	}
	return nil
}

// MockCache
type MockCache struct {
	GetFunc        func(ctx context.Context, cartID uuid.UUID) ([]byte, bool)
	SetFunc        func(ctx context.Context, cartID uuid.UUID, data []byte)
	InvalidateFunc func(ctx context.Context, cartID uuid.UUID)
}

func (m *MockCache) Get(ctx context.Context, cartID uuid.UUID) ([]byte, bool) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, cartID)
	}
	return nil, false
}

func (m *MockCache) Set(ctx context.Context, cartID uuid.UUID, data []byte) {
	if m.SetFunc != nil {
		m.SetFunc(ctx, cartID, data)
	}
}

func (m *MockCache) Invalidate(ctx context.Context, cartID uuid.UUID) {
	if m.InvalidateFunc != nil {
		m.InvalidateFunc(ctx, cartID)
	}
}

// FakeTxManager исполняет функцию сразу на подставленном наборе репо,
// без настоящей транзакции.
type FakeTxManager struct {
	Repo *repository.Repository
}

func (m *FakeTxManager) WithTx(fn func(tx *repository.Repository) error) error {
	return fn(m.Repo)
}
