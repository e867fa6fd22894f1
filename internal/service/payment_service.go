package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"

	"github.com/google/uuid"
)

// Фиксированный набор причин отказа; выбирается случайная.
var paymentErrors = []string{
	"Оплата не выполнена, т.к. способствует вымиранию туканов",
	"Оплата не выполнена, т.к. способствует глобальному потеплению",
	"Оплата не выполнена, т.к. заблокирована мировым правительством",
	"Оплата не выполнена, т.к. была произведена не по фэншую",
	"Оплата не выполнена, т.к. ретроградный Меркурий был в созвездии Рыбы",
}

// PaymentService — имитация платёжного провайдера. Чётный номер платёжного
// документа даёт отказ, нечётный — успешную оплату. Отказ обратим: заказ
// остаётся в статусе created с заполненной ошибкой, оплату можно повторить
// с другим номером.
type PaymentService struct {
	tx        repository.TxManager
	orders    repository.OrderRepo
	cartItems repository.CartItemRepo
	invoices  repository.InvoiceRepo
	queue     SettlementQueue

	delay time.Duration
	now   func() time.Time
	pick  func(n int) int
}

func NewPaymentService(
	tx repository.TxManager,
	orders repository.OrderRepo,
	cartItems repository.CartItemRepo,
	invoices repository.InvoiceRepo,
	queue SettlementQueue,
	delay time.Duration,
) *PaymentService {
	return &PaymentService{
		tx:        tx,
		orders:    orders,
		cartItems: cartItems,
		invoices:  invoices,
		queue:     queue,
		delay:     delay,
		now:       time.Now,
		pick:      rand.Intn,
	}
}

// EnqueueSettlement ставит оплату заказа в очередь и возвращает ключ попытки.
func (s *PaymentService) EnqueueSettlement(ctx context.Context, orderID uuid.UUID, number int64) (uuid.UUID, error) {
	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return uuid.Nil, err
	}
	if ord == nil {
		return uuid.Nil, ErrOrderNotFound
	}

	task := SettlementTask{
		AttemptID: uuid.New(),
		OrderID:   orderID,
		Number:    number,
		CreatedAt: s.now(),
	}
	if err := s.queue.PublishSettlement(ctx, task); err != nil {
		return uuid.Nil, err
	}
	return task.AttemptID, nil
}

// Settle выполняет задание на оплату. Списание склада здесь не повторяется:
// остаток уже списан при оформлении, оплата только фиксирует деньги.
// Повторная доставка задания безопасна: заказ не помечается оплаченным
// дважды, квитанция вставляется по ключу попытки.
func (s *PaymentService) Settle(ctx context.Context, task SettlementTask) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	ord, err := s.orders.GetByID(ctx, task.OrderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return ErrOrderNotFound
	}

	if task.Number%2 == 0 {
		msg := paymentErrors[s.pick(len(paymentErrors))]
		return s.orders.SetError(ctx, ord.ID, msg)
	}

	return s.tx.WithTx(func(tx *repository.Repository) error {
		paid, err := tx.Orders.MarkPaid(ctx, ord.ID)
		if err != nil {
			return err
		}
		if !paid {
			// заказ уже оплачен другой попыткой — повтор считается успешным
			return nil
		}

		if err := tx.CartItems.MarkOrderItemsStatus(ctx, ord.ID, models.CartItemStatusPaid); err != nil {
			return err
		}

		inv := &models.Invoice{
			ID:               task.AttemptID,
			OrderID:          ord.ID,
			Number:           task.Number,
			TotalPurchaseSum: ord.TotalSum,
			DeliveryCost:     ord.DeliveryFees,
			TotalSum:         ord.TotalSum.Add(ord.DeliveryFees),
		}
		if _, err := tx.Invoices.CreateIdempotent(ctx, inv); err != nil {
			return err
		}
		return nil
	})
}

// GetInvoice возвращает квитанцию по ID.
func (s *PaymentService) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

// GetInvoiceOrderStatus — статус заказа по квитанции.
func (s *PaymentService) GetInvoiceOrderStatus(ctx context.Context, id uuid.UUID) (models.OrderStatus, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return "", err
	}
	if inv.Order != nil {
		return inv.Order.Status, nil
	}
	ord, err := s.orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return "", err
	}
	if ord == nil {
		return "", ErrOrderNotFound
	}
	return ord.Status, nil
}
