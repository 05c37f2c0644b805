package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"libraryapi/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", config.RedactDSN(cfg.DatabaseDSN), err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := run(db, cfg.MigrationsDir, *command, *name); err != nil {
		log.Fatal(err)
	}
}

func run(db *sql.DB, dir, command, name string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("failed to rollback migrations: %w", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
	case "create":
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		fmt.Printf("Migration created: %s\n", name)
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
	}
	return nil
}
