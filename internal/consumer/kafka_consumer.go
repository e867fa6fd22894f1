package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSettlementConsumer читает задания на оплату и проводит их через
// платёжный сервис.
type KafkaSettlementConsumer struct {
	reader   *kafka.Reader
	payments *service.PaymentService
	log      *zap.Logger
}

func NewKafkaSettlementConsumer(brokers []string, groupID, topic string, payments *service.PaymentService, log *zap.Logger) *KafkaSettlementConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaSettlementConsumer{reader: r, payments: payments, log: log}
}

func (c *KafkaSettlementConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		var task service.SettlementTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			c.log.Error("unmarshal settlement task", zap.ByteString("value", m.Value), zap.Error(err))
			continue
		}
		if task.AttemptID == uuid.Nil || task.OrderID == uuid.Nil {
			c.log.Warn("invalid settlement task", zap.Any("task", task))
			continue
		}
		if err := c.payments.Settle(ctx, task); err != nil {
			c.log.Error("settle failed", zap.String("order_id", task.OrderID.String()), zap.Error(err))
			continue
		}
		c.log.Info("settlement processed",
			zap.String("order_id", task.OrderID.String()),
			zap.String("attempt_id", task.AttemptID.String()))
	}
}

func (c *KafkaSettlementConsumer) Close() error { return c.reader.Close() }
