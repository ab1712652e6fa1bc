package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealwise/backend/internal/model"
)

// Migrate brings the schema up to date. SQLite uses GORM auto-migration,
// postgres applies the SQL files in migrationsDir.
func Migrate(ctx context.Context, db *gorm.DB, migrationsDir string, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using GORM auto-migration for SQLite")
		return db.WithContext(ctx).AutoMigrate(model.All()...)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	_, err = RunMigrations(ctx, sqlDB, migrationsDir, log)
	return err
}

// RunMigrations executes every .sql file in dir that is not yet recorded in
// schema_migrations, in file name order, each inside its own transaction.
// Files ending in _rollback.sql are skipped. It returns the applied names.
func RunMigrations(ctx context.Context, db *sql.DB, dir string, log *zap.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, "_rollback.sql") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var applied []string
	for _, name := range files {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE name = $1", name).Scan(&count); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("skipping migration", zap.String("name", name))
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		if err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name)
			return err
		}); err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", name, err)
		}

		log.Info("applied migration", zap.String("name", name))
		applied = append(applied, name)
	}

	return applied, nil
}

// Rollback reverts the most recently applied migration using its
// <name>_rollback.sql companion.
func Rollback(ctx context.Context, db *sql.DB, dir string, log *zap.Logger) (string, error) {
	var name string
	err := db.QueryRowContext(ctx, "SELECT name FROM schema_migrations ORDER BY applied_at DESC, name DESC LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("no migrations to rollback")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	rollbackPath := filepath.Join(dir, strings.TrimSuffix(name, ".sql")+"_rollback.sql")
	content, err := os.ReadFile(rollbackPath)
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file: %w", err)
	}

	if err := inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE name = $1", name)
		return err
	}); err != nil {
		return "", fmt.Errorf("failed to roll back %s: %w", name, err)
	}

	log.Info("rolled back migration", zap.String("name", name))
	return name, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SeedSpices inserts the default spices, leaving existing names untouched.
func SeedSpices(ctx context.Context, db *gorm.DB) (int64, error) {
	spices := model.DefaultSpices()
	for i := range spices {
		spices[i].ID = 0
	}
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&spices)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to seed spices: %w", result.Error)
	}
	return result.RowsAffected, nil
}
