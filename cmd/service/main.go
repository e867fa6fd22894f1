package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KrauseKarl/shop-diplom-sub000/config"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/consumer"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/producer"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/repository"
	"github.com/KrauseKarl/shop-diplom-sub000/internal/service"
	"github.com/KrauseKarl/shop-diplom-sub000/pkg/database"
	"github.com/KrauseKarl/shop-diplom-sub000/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Процесс проведения оплат: читает задания из Kafka и проводит их.
// Корзина и оформление заказов — библиотечный слой, его использует
// витрина напрямую.
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	queue := producer.NewSettlementProducer(cfg.Kafka.Brokers, cfg.Kafka.SettlementTopic)
	defer queue.Close()

	payments := service.NewPaymentService(
		repos, repos.Orders, repos.CartItems, repos.Invoices,
		queue, cfg.Checkout.SettlementDelay,
	)

	settleConsumer := consumer.NewKafkaSettlementConsumer(
		cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.SettlementTopic,
		payments, log,
	)
	defer settleConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := settleConsumer.Run(ctx); err != nil {
			log.Fatal("settlement consumer failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Settlement worker started")
	<-quit
	log.Info("Shutting down settlement worker...")
	cancel()
	log.Info("Settlement worker stopped gracefully")
}
