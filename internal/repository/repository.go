package repository

import "gorm.io/gorm"

type Repository struct {
	DB        *gorm.DB
	Stores    StoreRepo
	Items     ItemRepo
	Carts     CartRepo
	CartItems CartItemRepo
	Orders    OrderRepo
	Invoices  InvoiceRepo
	Addresses AddressRepo
}

// TxManager позволяет сервисам выполнять набор операций в одной транзакции,
// не зная про *gorm.DB; в тестах замещается моком.
type TxManager interface {
	WithTx(fn func(tx *Repository) error) error
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:        db,
		Stores:    NewStoreRepo(db),
		Items:     NewItemRepo(db),
		Carts:     NewCartRepo(db),
		CartItems: NewCartItemRepo(db),
		Orders:    NewOrderRepo(db),
		Invoices:  NewInvoiceRepo(db),
		Addresses: NewAddressRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Глобальная транзакция на весь набор репо.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
