package migrate

import (
	"context"

	"github.com/KrauseKarl/shop-diplom-sub000/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, uuid-ossp
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных витрины")

	if opt.CreateExtensions {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			log.Error("Не удалось включить расширение uuid-ossp", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц витрины")
	if err := db.AutoMigrate(
		&models.Store{},
		&models.Item{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.Invoice{},
		&models.Address{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_carts_updated ON carts;
CREATE TRIGGER trg_carts_updated
BEFORE UPDATE ON carts
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_cart_items_updated ON cart_items;
CREATE TRIGGER trg_cart_items_updated
BEFORE UPDATE ON cart_items
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггеры updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Остаток не уходит в минус: списание делается условным UPDATE,
		// ограничение страхует от любого другого пути записи.
		if err := db.Exec(`
ALTER TABLE items
  DROP CONSTRAINT IF EXISTS chk_items_stock_non_negative;
ALTER TABLE items
  ADD CONSTRAINT chk_items_stock_non_negative
  CHECK (stock >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для items.stock", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS chk_cart_items_quantity_non_negative;
ALTER TABLE cart_items
  ADD CONSTRAINT chk_cart_items_quantity_non_negative
  CHECK (quantity >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для cart_items.quantity", zap.Error(err))
			return err
		}

		// Оплаченная позиция всегда привязана к заказу, и наоборот.
		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS chk_cart_items_paid_has_order;
ALTER TABLE cart_items
  ADD CONSTRAINT chk_cart_items_paid_has_order
  CHECK (is_paid = (order_id IS NOT NULL));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для связи is_paid и order_id", zap.Error(err))
			return err
		}

		// Корзина принадлежит пользователю либо сессии, но не обоим сразу.
		if err := db.Exec(`
ALTER TABLE carts
  DROP CONSTRAINT IF EXISTS chk_carts_single_owner;
ALTER TABLE carts
  ADD CONSTRAINT chk_carts_single_owner
  CHECK (NOT (user_id IS NOT NULL AND session_key IS NOT NULL));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK владельца корзины", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('created','paid','on_the_way','is_ready','completed','deactivated'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказа", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_sums_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_sums_non_negative
  CHECK (total_sum >= 0 AND delivery_fees >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для сумм заказа", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")

		// Живая корзина пользователя уникальна.
		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_carts_live_user
ON carts (user_id) WHERE user_id IS NOT NULL AND NOT is_archived;
`).Error; err != nil {
			log.Error("Не удалось создать индекс ux_carts_live_user", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_carts_live_session
ON carts (session_key) WHERE session_key IS NOT NULL AND NOT is_archived;
`).Error; err != nil {
			log.Error("Не удалось создать индекс ux_carts_live_session", zap.Error(err))
			return err
		}

		// Для группировки: неоплаченные позиции корзины по дате обновления.
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_cart_items_cart_unpaid
ON cart_items (cart_id, updated_at DESC) WHERE NOT is_paid;
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_cart_items_cart_unpaid", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_user_created
ON orders (user_id, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_user_created", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_store_status
ON orders (store_id, status);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_store_status", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		if err := db.Exec(`
ALTER TABLE items
  DROP CONSTRAINT IF EXISTS fk_items_store,
  ADD CONSTRAINT fk_items_store
    FOREIGN KEY (store_id) REFERENCES stores(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK items.store_id -> stores.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_cart,
  ADD CONSTRAINT fk_cart_items_cart
    FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK cart_items.cart_id -> carts.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_item,
  ADD CONSTRAINT fk_cart_items_item
    FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK cart_items.item_id -> items.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_order,
  ADD CONSTRAINT fk_cart_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK cart_items.order_id -> orders.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_store,
  ADD CONSTRAINT fk_orders_store
    FOREIGN KEY (store_id) REFERENCES stores(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK orders.store_id -> stores.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE invoices
  DROP CONSTRAINT IF EXISTS fk_invoices_order,
  ADD CONSTRAINT fk_invoices_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK invoices.order_id -> orders.id", zap.Error(err))
			return err
		}
	}

	log.Info("Миграция базы данных витрины успешно завершена")
	return nil
}
