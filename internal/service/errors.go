package service

import "errors"

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartArchived      = errors.New("cart is archived")
	ErrCartEmpty         = errors.New("cart has no eligible items")
	ErrItemNotFound      = errors.New("item not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrQuantityInvalid   = errors.New("quantity must be > 0")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyCheckedOut = errors.New("cart line already converted to an order")
)
