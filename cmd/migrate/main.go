// Command migrate applies the gallery schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"gallery/internal/config"
	"gallery/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|ping>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		log.Println("schema applied")
	case "ping":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
		log.Println("database reachable")
	default:
		return usage()
	}
	return nil
}
