package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/service"

	"github.com/segmentio/kafka-go"
)

// SettlementProducer публикует задания на оплату в Kafka.
type SettlementProducer struct {
	writer *kafka.Writer
}

func NewSettlementProducer(brokers []string, topic string) *SettlementProducer {
	return &SettlementProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *SettlementProducer) PublishSettlement(ctx context.Context, task service.SettlementTask) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(task)
	if err != nil {
		return err
	}
	// ключ — ID заказа: повторные попытки по заказу попадают в одну партицию
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(task.OrderID.String()),
		Value: value,
	})
}

func (p *SettlementProducer) Close() error {
	return p.writer.Close()
}
