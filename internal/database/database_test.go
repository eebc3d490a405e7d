package database

import (
	"testing"

	"github.com/drink365/estate-tax-app/internal/config"
	"github.com/drink365/estate-tax-app/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	if err := migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	log := zap.NewNop()

	users := []config.SeedUser{
		{Username: "Alice", Name: "Alice Wang", PasswordHash: "$2a$04$hash"},
	}
	if err := Seed(db, users, log); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	users[0].Name = "Alice W."
	if err := Seed(db, users, log); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var rows []models.UserModel
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("query users: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row after reseeding, got %d", len(rows))
	}
	if rows[0].Username != "alice" {
		t.Fatalf("username must be normalized, got %q", rows[0].Username)
	}
	if rows[0].Name != "Alice W." {
		t.Fatalf("reseeding must refresh the profile, got %q", rows[0].Name)
	}
}

func TestSeedValidityWindow(t *testing.T) {
	db := openTestDB(t)

	users := []config.SeedUser{
		{Username: "bob", PasswordHash: "$2a$04$hash", ValidFrom: "2026-01-01", ValidUntil: "2026-12-31"},
	}
	if err := Seed(db, users, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var u models.UserModel
	if err := db.Where("username = ?", "bob").First(&u).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if u.ValidFrom == nil || u.ValidUntil == nil {
		t.Fatal("validity window must be set")
	}
	if !u.ValidUntil.After(*u.ValidFrom) {
		t.Fatalf("window inverted: %v .. %v", u.ValidFrom, u.ValidUntil)
	}
	// End of day, not midnight: the last day remains usable.
	if u.ValidUntil.Hour() != 23 {
		t.Fatalf("valid_until should extend to end of day, got %v", u.ValidUntil)
	}
}

func TestSeedRejectsBadDate(t *testing.T) {
	db := openTestDB(t)
	users := []config.SeedUser{
		{Username: "carol", PasswordHash: "$2a$04$hash", ValidFrom: "01/02/2026"},
	}
	if err := Seed(db, users, zap.NewNop()); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
