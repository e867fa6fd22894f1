package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KrauseKarl/shop-diplom-sub000/pkg/database"
	"github.com/shopspring/decimal"

	"go.uber.org/zap"
)

type Config struct {
	DB    DB
	Redis Redis
	Kafka Kafka

	// Настройки магазина — раньше жили в таблице site_settings,
	// теперь загружаются один раз и передаются явно.
	Checkout Checkout
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Brokers         []string
	SettlementTopic string
	ConsumerGroup   string
}

type Checkout struct {
	// Стоимость обычной доставки, если сумма по магазину ниже порога.
	DeliveryFee decimal.Decimal
	// Порог бесплатной доставки.
	MinFreeDelivery decimal.Decimal
	// Надбавка за экспресс-доставку.
	ExpressDeliveryPrice decimal.Decimal
	// Искусственная задержка обработки оплаты.
	SettlementDelay time.Duration
}

func Load(log *zap.Logger) *Config {
	return &Config{
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		Redis: Redis{
			Enabled:    os.Getenv("REDIS_ENABLED") == "true",
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 3600),
		},
		Kafka: Kafka{
			Brokers:         splitAndTrim(getEnv("KAFKA_BROKERS", log)),
			SettlementTopic: getEnv("KAFKA_TOPIC_SETTLEMENT", log),
			ConsumerGroup:   getEnv("KAFKA_GROUP_SETTLEMENT", log),
		},
		Checkout: Checkout{
			DeliveryFee:          decimalEnv("DELIVERY_FEE", "200", log),
			MinFreeDelivery:      decimalEnv("MIN_FREE_DELIVERY", "2000", log),
			ExpressDeliveryPrice: decimalEnv("EXPRESS_DELIVERY_PRICE", "500", log),
			SettlementDelay:      time.Duration(atoiDefault(os.Getenv("SETTLEMENT_DELAY_MS"), 2000)) * time.Millisecond,
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func decimalEnv(key, def string, log *zap.Logger) decimal.Decimal {
	s, exists := os.LookupEnv(key)
	if !exists {
		s = def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Error("Некорректное десятичное значение в окружении",
			zap.String("key", key), zap.String("value", s))
		panic("invalid decimal environment variable: " + key)
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
