package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// DefaultTTL is the idle-expiry window when none is configured.
const DefaultTTL = 2 * time.Hour

const tokenBytes = 32 // 256-bit tokens

// Registry wraps a Store with the session business rules. All operations on
// the same account are linearized by a single mutex; the store never sees a
// half-written record.
type Registry struct {
	mu    sync.Mutex
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates a Registry over the given store. A non-positive ttl
// falls back to DefaultTTL.
func NewRegistry(store Store, ttl time.Duration, opts ...Option) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	r := &Registry{store: store, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TTL returns the configured idle-expiry window.
func (r *Registry) TTL() time.Duration { return r.ttl }

// Login issues a fresh token for the account and overwrites any previous
// session, which becomes permanently invalid. A failed login leaves the prior
// session exactly as it was.
func (r *Registry) Login(account string) (string, error) {
	account = NormalizeAccount(account)
	if account == "" {
		return "", fmt.Errorf("login: empty account")
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Put(account, Record{Account: account, Token: token, LastSeen: r.now()}); err != nil {
		return "", fmt.Errorf("login %q: %w", account, err)
	}
	return token, nil
}

// IsValid reports whether token is the account's current session token and
// the idle window has not elapsed. Absent record, token mismatch, expiry and
// store read failure all collapse to false; the caller's remediation is the
// same in every case. IsValid never mutates state.
func (r *Registry) IsValid(account, token string) bool {
	account = NormalizeAccount(account)
	if account == "" || token == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok, err := r.store.Get(account)
	if err != nil || !ok {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(rec.Token), []byte(token)) != 1 {
		return false
	}
	return r.now().Sub(rec.LastSeen) <= r.ttl
}

// Touch marks the account's current session as seen now, extending the idle
// window. No-op when no session exists.
func (r *Registry) Touch(account string) error {
	account = NormalizeAccount(account)

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok, err := r.store.Get(account)
	if err != nil {
		return fmt.Errorf("touch %q: %w", account, err)
	}
	if !ok {
		return nil
	}
	rec.LastSeen = r.now()
	if err := r.store.Put(account, rec); err != nil {
		return fmt.Errorf("touch %q: %w", account, err)
	}
	return nil
}

// Logout deletes the account's session only when token matches the current
// one. A stale token is a silent no-op: an old credential must never destroy
// a newer session. Safe to call repeatedly.
func (r *Registry) Logout(account, token string) error {
	account = NormalizeAccount(account)

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok, err := r.store.Get(account)
	if err != nil {
		return fmt.Errorf("logout %q: %w", account, err)
	}
	if !ok {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(rec.Token), []byte(token)) != 1 {
		return nil
	}
	if err := r.store.Delete(account); err != nil {
		return fmt.Errorf("logout %q: %w", account, err)
	}
	return nil
}

// SweepExpired deletes every record whose idle window has elapsed and returns
// how many were removed. Pure housekeeping: IsValid checks timestamps itself
// and never depends on the sweep having run.
func (r *Registry) SweepExpired() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs, err := r.store.ScanAll()
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for _, rec := range recs {
		if rec.LastSeen.Before(cutoff) {
			if err := r.store.Delete(rec.Account); err != nil {
				return removed, fmt.Errorf("sweep %q: %w", rec.Account, err)
			}
			removed++
		}
	}
	return removed, nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
