package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects using the configured driver: "mysql" for deployments,
// "sqlite" for local runs (the DSN is then a file path or ":memory:").
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "mysql":
		return OpenWithDialector(mysql.Open(dsn))
	case "sqlite":
		return OpenWithDialector(sqlite.Open(dsn))
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}
}

func OpenWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}
