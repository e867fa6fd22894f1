package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SettlementTask — задание на оплату заказа. AttemptID — ключ идемпотентности:
// повторная доставка того же задания не создаст вторую квитанцию.
type SettlementTask struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	OrderID   uuid.UUID `json:"order_id"`
	Number    int64     `json:"number"`
	CreatedAt time.Time `json:"created_at"`
}

// SettlementQueue отделяет оформление от обработки оплаты.
type SettlementQueue interface {
	PublishSettlement(ctx context.Context, task SettlementTask) error
}
