package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pageza/glucotrack/backend/config"
)

// maxConnectAttempts bounds startup retries while postgres comes up, which
// matters when the API container races the database container.
const maxConnectAttempts = 5

// New opens the postgres connection described by cfg and verifies it with a
// ping. Connection failures are retried with a growing delay before giving up.
func New(cfg *config.Config) (*gorm.DB, error) {
	log.Printf("[Database] Connecting to postgres at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("[Database] Connection attempt %d/%d failed: %v", attempt, maxConnectAttempts, err)
		if attempt == maxConnectAttempts {
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxConnectAttempts, err)
		}
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("[Database] Successfully connected to database %s", cfg.DBName)
	return db, nil
}
