package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	seed := flag.Bool("seed", false, "Seed the default spices after migrating")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migrations")
	flag.Parse()

	logr := logger.New(logger.Config{Level: "info", Format: "console"})
	defer logr.Sync()

	dsn, err := resolveDSN()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		logr.Fatal("failed to reach database", zap.Error(err))
	}

	if *rollback {
		name, err := database.Rollback(ctx, db, *dir, logr)
		if err != nil {
			logr.Fatal("rollback failed", zap.Error(err))
		}
		fmt.Printf("Successfully rolled back migration: %s\n", name)
		return
	}

	applied, err := database.RunMigrations(ctx, db, *dir, logr)
	if err != nil {
		logr.Fatal("migration failed", zap.Error(err))
	}
	fmt.Printf("Applied %d migration(s)\n", len(applied))

	if *seed {
		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			logr.Fatal("failed to open gorm session", zap.Error(err))
		}
		inserted, err := database.SeedSpices(ctx, gormDB)
		if err != nil {
			logr.Fatal("seeding failed", zap.Error(err))
		}
		fmt.Printf("Seeded %d spice(s)\n", inserted)
	}
}

// resolveDSN prefers DATABASE_URL and otherwise builds the DSN from the
// application configuration.
func resolveDSN() (string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", fmt.Errorf("DATABASE_URL is not set and configuration is invalid: %w", err)
	}
	if cfg.DBDriver != "postgres" {
		return "", fmt.Errorf("migrations only run against postgres, DB_DRIVER is %q", cfg.DBDriver)
	}
	return cfg.PostgresDSN(), nil
}
