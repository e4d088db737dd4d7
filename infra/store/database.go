package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Preferences are a handful of rows; a small pool is plenty.
const (
	maxOpenConns    = 5
	maxIdleConns    = 2
	connMaxLifetime = 30 * time.Minute
)

var errNoDatabaseURL = errors.New("PREFERENCES_DATABASE_URL is not set")

// NewDBConnection opens the preferences database. SQL is logged only in
// development.
func NewDBConnection(databaseURL, appEnv string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, errNoDatabaseURL
	}

	level := gormlogger.Silent
	if appEnv == "development" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(level),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	pool.SetMaxOpenConns(maxOpenConns)
	pool.SetMaxIdleConns(maxIdleConns)
	pool.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}
