package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shop-api/internal/config"

	"github.com/jackc/pgx/v5"
)

// Standalone database connection check with the same retry behavior as the
// API startup. Useful when bringing an environment up.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	retryDelay := time.Duration(cfg.Database.PingRetryDelay) * time.Second

	for attempt := 1; attempt <= cfg.Database.PingAttempts; attempt++ {
		conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
		if err == nil {
			var dbName string
			if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
				fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
				conn.Close(ctx)
				os.Exit(1)
			}
			fmt.Printf("Successfully connected to database: %s\n", dbName)
			conn.Close(ctx)
			return
		}

		if attempt < cfg.Database.PingAttempts {
			fmt.Printf("Attempt %d failed, retrying in %s: %v\n", attempt, retryDelay, err)
			time.Sleep(retryDelay)
		} else {
			fmt.Fprintf(os.Stderr, "Failed to connect after %d attempts: %v\n", attempt, err)
			os.Exit(1)
		}
	}
}
