package session

import (
	"testing"
	"time"

	"github.com/drink365/estate-tax-app/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.SessionRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormStore(db)
}

func TestGormStoreUpsert(t *testing.T) {
	store := newTestGormStore(t)
	now := time.Unix(time.Now().Unix(), 0)

	if err := store.Put("alice", Record{Account: "alice", Token: "t1", LastSeen: now}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put("alice", Record{Account: "alice", Token: "t2", LastSeen: now.Add(time.Minute)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rec, ok, err := store.Get("alice")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if rec.Token != "t2" {
		t.Fatalf("expected overwritten token t2, got %q", rec.Token)
	}
	if !rec.LastSeen.Equal(now.Add(time.Minute)) {
		t.Fatalf("expected last_seen %v, got %v", now.Add(time.Minute), rec.LastSeen)
	}

	recs, err := store.ScanAll()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("upsert must keep a single row per account, got %d", len(recs))
	}
}

func TestGormStoreDelete(t *testing.T) {
	store := newTestGormStore(t)

	if err := store.Delete("ghost"); err != nil {
		t.Fatalf("delete absent must be a no-op: %v", err)
	}

	if err := store.Put("bob", Record{Account: "bob", Token: "t", LastSeen: time.Now()}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete("bob"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get("bob"); ok {
		t.Fatal("record must be gone after delete")
	}
}

func TestGormStoreWithRegistry(t *testing.T) {
	store := newTestGormStore(t)
	reg := NewRegistry(store, time.Hour)

	t1, err := reg.Login("carol")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	t2, err := reg.Login("carol")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if reg.IsValid("carol", t1) {
		t.Fatal("old token must be invalid after takeover")
	}
	if !reg.IsValid("carol", t2) {
		t.Fatal("new token must be valid")
	}
}
