package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-reservation/models"
)

// InitDB opens the configured database and migrates the schema.
// TranslateError turns driver-specific duplicate-key failures into
// gorm.ErrDuplicatedKey so controllers can map them to 409.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	// MySQL's default collation compares case-insensitively; email identity
	// must be byte-exact on both drivers, so pin a binary collation there.
	if cfg.DBDriver == "mysql" {
		if err := db.Exec("ALTER TABLE users MODIFY email VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

// AutoMigrate creates or updates the schema for every model, including the
// active-slot unique index that backs the double-booking invariant.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
	)
}
