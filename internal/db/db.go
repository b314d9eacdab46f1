// Package db provides the optional usage log backed by PostgreSQL. Without a
// DATABASE_URL the server runs with no database at all.
package db

import (
	"log"
	"os"

	"github.com/go-faster/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL using DATABASE_URL and migrates the usage log
// schema. It returns (nil, nil) when DATABASE_URL is unset.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, usage log disabled")
		return nil, nil
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	if err := database.AutoMigrate(&UsageLog{}); err != nil {
		return nil, errors.Wrap(err, "migrate usage log")
	}

	log.Println("Database connected, usage log enabled")
	return database, nil
}
