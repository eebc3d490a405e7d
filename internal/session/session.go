// Package session enforces the single-active-session rule: every account has
// at most one live session, a new login unconditionally replaces the previous
// one, and idle sessions expire after a fixed TTL.
package session

import (
	"errors"
	"strings"
	"time"
)

// ErrStoreUnavailable wraps failures of the backing store. Callers must treat
// it as a failed operation, never as an authenticated state.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Record is the current session of one account.
type Record struct {
	Account  string
	Token    string
	LastSeen time.Time
}

// Store is the account -> Record mapping underneath the Registry.
//
// Put unconditionally overwrites, Get never mutates, Delete is a no-op when
// the record is absent, and ScanAll returns a snapshot for the expiry sweep.
// Implementations wrap backing-medium failures in ErrStoreUnavailable.
type Store interface {
	Put(account string, rec Record) error
	Get(account string) (Record, bool, error)
	Delete(account string) error
	ScanAll() ([]Record, error)
}

// NormalizeAccount fixes the account key policy once: trimmed, lower-cased.
// Everything entering the registry goes through this.
func NormalizeAccount(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}
