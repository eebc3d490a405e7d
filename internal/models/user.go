package models

import "time"

// UserModel represents a provisioned platform account. Accounts are seeded by
// the operator (no self-registration) and may carry a validity window outside
// of which login is refused.
type UserModel struct {
	Base
	Username      string     `json:"username"         gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Password      string     `json:"-"                gorm:"not null"` // bcrypt hash
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }
