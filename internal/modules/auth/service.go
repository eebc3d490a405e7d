package auth

import (
	"errors"
	"time"

	"github.com/drink365/estate-tax-app/internal/models"
	"github.com/drink365/estate-tax-app/internal/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	reg    *session.Registry
	logger *zap.Logger
}

func NewService(db *gorm.DB, reg *session.Registry, logger *zap.Logger) *Service {
	return &Service{db: db, reg: reg, logger: logger}
}

// Login verifies credentials and, on success, issues a fresh session token.
// Any previously active session for the account is kicked unconditionally;
// confirmation UX, if any, belongs to the client.
func (s *Service) Login(username, password, ip string) (string, *models.UserModel, error) {
	account := session.NormalizeAccount(username)

	var u models.UserModel
	if err := s.db.Where("username = ?", account).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errUserNotFound
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errWrongPassword
	}

	now := time.Now()
	if u.ValidFrom != nil && now.Before(*u.ValidFrom) {
		return "", nil, errOutsideWindow
	}
	if u.ValidUntil != nil && now.After(*u.ValidUntil) {
		return "", nil, errOutsideWindow
	}

	token, err := s.reg.Login(account)
	if err != nil {
		return "", nil, err
	}

	// Best-effort bookkeeping; the login already succeeded.
	if err := s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error; err != nil {
		s.logger.Warn("update last login failed", zap.String("account", account), zap.Error(err))
	}
	if removed, err := s.reg.SweepExpired(); err != nil {
		s.logger.Warn("session sweep failed", zap.Error(err))
	} else if removed > 0 {
		s.logger.Info("swept expired sessions", zap.Int("removed", removed))
	}

	return token, &u, nil
}

// Logout ends the session identified by token. Stale or unknown tokens are a
// silent no-op; the client ends up logged out either way.
func (s *Service) Logout(account, token string) error {
	return s.reg.Logout(account, token)
}

// Profile loads the display profile of an account, or nil when absent.
func (s *Service) Profile(account string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("username = ?", session.NormalizeAccount(account)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
