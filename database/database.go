package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/XTHN9RF/Foodify-API/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the database named by url. Supported schemes are
// postgres://, postgresql://, sqlite:// and mysql://.
func Open(url string) (*gorm.DB, error) {
	dialector, err := dialectorFor(url)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func dialectorFor(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite://"):
		// Cascading deletes need foreign keys, which sqlite leaves off by default.
		return sqlite.Open(withParam(strings.TrimPrefix(url, "sqlite://"), "_foreign_keys", "on")), nil
	case strings.HasPrefix(url, "mysql://"):
		return mysql.Open(withParam(strings.TrimPrefix(url, "mysql://"), "parseTime", "true")), nil
	}
	return nil, fmt.Errorf("unsupported database URL: %s", url)
}

func withParam(dsn, key, value string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + value
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	log.Println("✅ Database migrated")
	return nil
}
