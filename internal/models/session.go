package models

// SessionRecord is the persisted single-active-session row. The account is
// the primary key, so every login for an account overwrites the previous row
// and there is never more than one live session per account.
type SessionRecord struct {
	Account  string `json:"account"   gorm:"primaryKey;size:191"`
	Token    string `json:"-"         gorm:"size:128;not null"`
	LastSeen int64  `json:"last_seen" gorm:"not null"` // epoch seconds
}

func (SessionRecord) TableName() string { return "session_records" }
