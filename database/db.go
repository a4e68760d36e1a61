package database

import (
	"fmt"
	"time"

	"art-gallery-service/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// orderUserViewDDL recreates the reporting view on every boot so schema
// changes to orders or users propagate without a manual migration.
const orderUserViewDDL = `
CREATE OR REPLACE VIEW order_user_view AS
SELECT
    o.id,
    o.order_number,
    o.status,
    o.payment_method,
    o.payment_id,
    o.payment_details,
    o.shipping_address,
    o.billing_address,
    o.shipping_address_id,
    o.billing_address_id,
    o.total_price,
    o.created_at,
    o.paid_at,
    o.user_id,
    u.username,
    u.email,
    u.first_name,
    u.last_name,
    COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username) AS display_name
FROM orders o
INNER JOIN users u ON o.user_id = u.id
`

type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
	TimeZone string
}

// Connect opens a pooled Postgres connection with retries, runs migrations
// for all service models, and installs the order/user reporting view.
func Connect(cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
	)

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, poolErr := db.DB()
			if poolErr == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
			}

			logger.Info("Connected to PostgreSQL successfully")

			if err := migrate(db); err != nil {
				return nil, err
			}
			return db, nil
		}

		logger.Warn("DB connection failed, retrying",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(time.Duration(i+1) * 2 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ArtPicture{},
		&models.Cart{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Message{},
	); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := db.Exec(orderUserViewDDL).Error; err != nil {
		return fmt.Errorf("failed to create order_user_view: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
