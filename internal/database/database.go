package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drink365/estate-tax-app/internal/config"
	"github.com/drink365/estate-tax-app/internal/models"
	"github.com/drink365/estate-tax-app/internal/session"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Connect opens the embedded SQLite database and runs auto-migration.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %q: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(resolveLogLevel(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Warn
	}
	return logger.Silent
}

// migrate runs GORM auto-migration for all models.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.SessionRecord{},
	)
}

// Seed upserts operator-provisioned accounts from the config file. Seeding is
// idempotent: an existing username gets its profile and validity window
// refreshed, never a second row.
func Seed(db *gorm.DB, users []config.SeedUser, log *zap.Logger) error {
	for _, u := range users {
		account := session.NormalizeAccount(u.Username)

		validFrom, err := parseDay(u.ValidFrom)
		if err != nil {
			return fmt.Errorf("seed user %q: valid_from: %w", account, err)
		}
		validUntil, err := parseDay(u.ValidUntil)
		if err != nil {
			return fmt.Errorf("seed user %q: valid_until: %w", account, err)
		}
		if validUntil != nil {
			// Inclusive end date: the account works through the whole day.
			end := validUntil.Add(24*time.Hour - time.Second)
			validUntil = &end
		}

		row := models.UserModel{
			Username:   account,
			Name:       u.Name,
			Password:   u.PasswordHash,
			ValidFrom:  validFrom,
			ValidUntil: validUntil,
		}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "password", "valid_from", "valid_until"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("seed user %q: %w", account, err)
		}
		log.Info("seeded user", zap.String("username", account))
	}
	return nil
}

func parseDay(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
