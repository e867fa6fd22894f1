package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Статус заказа — строковый тип, значения как в исходной витрине.
type OrderStatus string

const (
	OrderStatusCreated     OrderStatus = "created"
	OrderStatusPaid        OrderStatus = "paid"
	OrderStatusOnTheWay    OrderStatus = "on_the_way"
	OrderStatusIsReady     OrderStatus = "is_ready"
	OrderStatusCompleted   OrderStatus = "completed"
	OrderStatusDeactivated OrderStatus = "deactivated"
)

type CartItemStatus string

const (
	CartItemStatusInCart  CartItemStatus = "in_cart"
	CartItemStatusNotPaid CartItemStatus = "not_paid"
	CartItemStatusPaid    CartItemStatus = "paid"
)

type DeliveryKind string

const (
	DeliveryStandard DeliveryKind = "standard"
	DeliveryExpress  DeliveryKind = "express"
)

type PayKind string

const (
	PayOnline  PayKind = "online"
	PaySomeone PayKind = "someone"
)

// Store — независимый продавец. Скидка применяется к сумме по магазину,
// когда она превышает MinForDiscount.
type Store struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title          string          `gorm:"type:text;not null"`
	Slug           string          `gorm:"type:text;not null;uniqueIndex"`
	Discount       int             `gorm:"type:smallint;not null;default:0"`
	MinForDiscount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	IsActive       bool            `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Store) TableName() string { return "stores" }

// Item — товар каталога. Stock защищён CHECK (stock >= 0):
// списание идёт только условным UPDATE с проверкой остатка.
type Item struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	IsAvailable bool            `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Store *Store `gorm:"foreignKey:StoreID"`
}

func (Item) TableName() string { return "items" }

// Cart принадлежит либо пользователю, либо анонимной сессии — никогда обоим.
// Архивная корзина терминальна: после оформления к ней ничего не добавляется.
type Cart struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	SessionKey  *string    `gorm:"type:text;index"`
	IsAnonymous bool       `gorm:"not null;default:false"`
	IsArchived  bool       `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (Cart) TableName() string { return "carts" }

// CartItem — позиция корзины. Price — снимок цены на момент добавления,
// последующие изменения цены в каталоге корзину не трогают.
type CartItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity int             `gorm:"not null;default:1"`
	Price    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Total    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	IsPaid   bool            `gorm:"not null;default:false;index"`
	OrderID  *uuid.UUID      `gorm:"type:uuid;index"`
	Status   CartItemStatus  `gorm:"type:text;not null;default:'in_cart'"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now();index"`

	Item *Item `gorm:"foreignKey:ItemID"`
}

func (CartItem) TableName() string { return "cart_items" }

// BeforeSave держит инвариант Total = Quantity × Price: сумма строки
// пересчитывается при каждом сохранении и никогда не задаётся извне.
func (ci *CartItem) BeforeSave(tx *gorm.DB) error {
	ci.Total = ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
	return nil
}

// Order всегда принадлежит одному пользователю и одному магазину:
// оформление корзины создаёт по заказу на каждый магазин.
type Order struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	StoreID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:text;not null"`
	Email        string          `gorm:"type:text;not null"`
	Telephone    string          `gorm:"type:text;not null"`
	Delivery     DeliveryKind    `gorm:"type:text;not null;default:'standard'"`
	Pay          PayKind         `gorm:"type:text;not null;default:'online'"`
	City         string          `gorm:"type:text;not null"`
	Address      string          `gorm:"type:text;not null"`
	Comment      string          `gorm:"type:text"`
	Status       OrderStatus     `gorm:"type:text;not null;default:'created';index"`
	IsPaid       bool            `gorm:"not null;default:false"`
	TotalSum     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	DeliveryFees decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Error        string          `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Store *Store     `gorm:"foreignKey:StoreID"`
	Items []CartItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// Invoice создаётся один раз при успешной оплате. ID совпадает с
// идентификатором попытки оплаты из очереди — повторная доставка
// сообщения не породит второй квитанции.
type Invoice struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Number           int64           `gorm:"not null"`
	TotalPurchaseSum decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	DeliveryCost     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	TotalSum         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`

	Order *Order `gorm:"foreignKey:OrderID"`
}

func (Invoice) TableName() string { return "invoices" }

// Address — сохранённый адрес доставки покупателя.
type Address struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	City    string    `gorm:"type:text;not null"`
	Address string    `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Address) TableName() string { return "addresses" }
