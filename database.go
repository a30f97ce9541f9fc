package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// openDB connects to PostgreSQL, waiting for the server to come up.
func openDB(cfg Config) (*sql.DB, error) {
	config, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	maxRetries := cfg.DBMaxRetries
	retryDelay := cfg.DBRetryDelay

	for i := 0; i < maxRetries; i++ {
		db := stdlib.OpenDB(*config)
		err := db.Ping()
		if err == nil {
			log.Println("Database connection established")
			db.SetMaxOpenConns(20)
			db.SetConnMaxIdleTime(5 * time.Minute)
			return db, nil
		}
		db.Close()
		if i == maxRetries-1 {
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
		}
		// Log the actual error for the first few attempts and every 10th after
		if i%10 == 0 || i < 5 {
			log.Printf("Database not ready, retrying in %v... (attempt %d/%d) Error: %v", retryDelay, i+1, maxRetries, err)
		} else {
			log.Printf("Database not ready, retrying in %v... (attempt %d/%d)", retryDelay, i+1, maxRetries)
		}
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to database")
}
