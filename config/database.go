package config

import (
	"fmt"

	"homestay/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN ưu tiên DATABASE_URL, nếu không thì ghép từ các biến DB_*
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone)
}

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("kết nối database thất bại: %w", err)
	}
	return db, nil
}

// constraintStatements ràng buộc mà gorm AutoMigrate không tạo được
var constraintStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap') THEN
			ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
				EXCLUDE USING gist (unit_id WITH =, tstzrange(check_in, check_out, '[)') WITH &&)
				WHERE (status IN ('CONFIRMED', 'CHECKED_IN'));
		END IF;
	END $$`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_interval_check') THEN
			ALTER TABLE reservations ADD CONSTRAINT reservations_interval_check CHECK (check_in < check_out);
		END IF;
	END $$`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_deposit_balance_check') THEN
			ALTER TABLE reservations ADD CONSTRAINT reservations_deposit_balance_check
				CHECK (deposit_refund_amt >= 0 AND deposit_forfeit_amt >= 0
					AND deposit_refund_amt + deposit_forfeit_amt <= deposit_amount);
		END IF;
	END $$`,
	`CREATE OR REPLACE FUNCTION deposit_events_append_only() RETURNS trigger AS $$
	BEGIN
		RAISE EXCEPTION 'deposit_events chỉ được thêm mới' USING ERRCODE = 'restrict_violation';
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS deposit_events_append_only ON deposit_events`,
	`CREATE TRIGGER deposit_events_append_only BEFORE UPDATE OR DELETE ON deposit_events
		FOR EACH ROW EXECUTE FUNCTION deposit_events_append_only()`,
}

// Migrate tạo bảng và các ràng buộc toàn vẹn dữ liệu
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Unit{},
		&models.Guest{},
		&models.Reservation{},
		&models.DepositEvent{},
		&models.CleaningTask{},
		&models.CleaningPhoto{},
	); err != nil {
		return fmt.Errorf("auto migrate thất bại: %w", err)
	}
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("tạo ràng buộc thất bại: %w", err)
		}
	}
	return nil
}
