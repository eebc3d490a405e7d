package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/drink365/estate-tax-app/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists session records in the embedded database so sessions
// survive restarts and are shared across workers on the same host. Timestamps
// are stored as epoch seconds.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over an opened gorm connection. The
// session_records table is created by database auto-migration.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Put(account string, rec Record) error {
	row := models.SessionRecord{
		Account:  account,
		Token:    rec.Token,
		LastSeen: rec.LastSeen.Unix(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "last_seen"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: put: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormStore) Get(account string) (Record, bool, error) {
	var row models.SessionRecord
	err := s.db.Where("account = ?", account).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: get: %v", ErrStoreUnavailable, err)
	}
	return recordFromRow(row), true, nil
}

func (s *GormStore) Delete(account string) error {
	err := s.db.Where("account = ?", account).Delete(&models.SessionRecord{}).Error
	if err != nil {
		return fmt.Errorf("%w: delete: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormStore) ScanAll() ([]Record, error) {
	var rows []models.SessionRecord
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: scan: %v", ErrStoreUnavailable, err)
	}
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = recordFromRow(row)
	}
	return out, nil
}

func recordFromRow(row models.SessionRecord) Record {
	return Record{
		Account:  row.Account,
		Token:    row.Token,
		LastSeen: time.Unix(row.LastSeen, 0),
	}
}
