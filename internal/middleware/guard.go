package middleware

import (
	"strings"

	"github.com/drink365/estate-tax-app/internal/pkg/response"
	"github.com/drink365/estate-tax-app/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyAccount = "account"
	ContextKeyToken   = "session_token"

	// SessionCookie carries the account:token credential between requests.
	SessionCookie = "etx_session"
)

// Guard returns a middleware that admits only requests presenting the
// account's current session credential. Validity is checked first and the
// session is touched only on success (check-then-heartbeat). Any invalid
// credential gets the one generic 401, whatever the internal cause.
func Guard(reg *session.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, token := ParseCredential(ExtractCredential(c))
		if !reg.IsValid(account, token) {
			response.Unauthorized(c)
			return
		}
		if err := reg.Touch(account); err != nil {
			// The credential already proved valid; a failed heartbeat only
			// shortens the idle window.
			logger.Warn("session touch failed", zap.String("account", account), zap.Error(err))
		}
		c.Set(ContextKeyAccount, account)
		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// OptionalGuard sets the account if a valid credential is present, but does
// not block the request.
func OptionalGuard(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if account, token := ParseCredential(ExtractCredential(c)); reg.IsValid(account, token) {
			c.Set(ContextKeyAccount, account)
			c.Set(ContextKeyToken, token)
		}
		c.Next()
	}
}

// CurrentAccount extracts the authenticated account from context.
func CurrentAccount(c *gin.Context) string {
	v, _ := c.Get(ContextKeyAccount)
	account, _ := v.(string)
	return account
}

// CurrentToken extracts the presented session token from context.
func CurrentToken(c *gin.Context) string {
	v, _ := c.Get(ContextKeyToken)
	token, _ := v.(string)
	return token
}

// IsAuthenticated reports whether the request carries a valid session.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentAccount(c) != ""
}

// FormatCredential builds the client-held credential. The token is hex, so
// the last colon always separates account from token.
func FormatCredential(account, token string) string {
	return account + ":" + token
}

// ParseCredential splits a credential into account and token. Returns empty
// strings when the credential is malformed.
func ParseCredential(raw string) (account, token string) {
	i := strings.LastIndex(raw, ":")
	if i <= 0 || i == len(raw)-1 {
		return "", ""
	}
	return raw[:i], raw[i+1:]
}

// ExtractCredential resolves the raw credential from the request: the
// Authorization header wins, then the token query param, then the cookie.
// Every endpoint that reads a credential goes through this one resolution
// order, logout included.
func ExtractCredential(c *gin.Context) string {
	if auth := NormalizeBearer(c.GetHeader("Authorization")); auth != "" {
		return auth
	}
	if q := NormalizeBearer(c.Query("token")); q != "" {
		return q
	}
	if raw, err := c.Cookie(SessionCookie); err == nil {
		return NormalizeBearer(raw)
	}
	return ""
}

// NormalizeBearer trims spaces and strips an optional Bearer prefix.
func NormalizeBearer(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
