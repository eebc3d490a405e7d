package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/drink365/estate-tax-app/internal/config"
	"github.com/drink365/estate-tax-app/internal/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cfg := &config.AppConfig{
		Port:              2333,
		Env:               "production",
		DatabasePath:      filepath.Join(t.TempDir(), "test.db"),
		SessionTTLSeconds: 7200,
		SessionStore:      config.StoreMemory,
		Users: []config.SeedUser{
			{Username: "alice", Name: "Alice", PasswordHash: string(hash)},
		},
	}

	a, err := New(zap.NewNop(), cfg)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

func doJSON(t *testing.T, a *App, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func login(t *testing.T, a *App) string {
	t.Helper()
	w := doJSON(t, a, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "alice", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("login returned no token")
	}
	return "alice:" + out.Token
}

func TestHealthEndpoint(t *testing.T) {
	a := newTestApp(t)
	w := doJSON(t, a, http.MethodGet, "/api/v1/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}

func TestLoginAndGuardedEndpoint(t *testing.T) {
	a := newTestApp(t)
	credential := login(t, a)

	w := doJSON(t, a, http.MethodPost, "/api/v1/estate/calc", credential, map[string]interface{}{
		"total_assets": 5000,
		"family":       map[string]interface{}{"spouse": true},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("calc status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, a, http.MethodPost, "/api/v1/estate/calc", "", map[string]interface{}{
		"total_assets": 5000,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated calc status = %d", w.Code)
	}
}

func TestSecondLoginInvalidatesFirstCredential(t *testing.T) {
	a := newTestApp(t)
	first := login(t, a)
	second := login(t, a)

	w := doJSON(t, a, http.MethodPost, "/api/v1/gift/plan", first, map[string]interface{}{
		"change_year": 1,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("kicked credential status = %d, expected 401", w.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Message != response.SessionInvalidMessage {
		t.Fatalf("message = %q, expected the generic session message", body.Message)
	}

	w = doJSON(t, a, http.MethodPost, "/api/v1/gift/plan", second, map[string]interface{}{
		"change_year":  1,
		"cash_value_1": 5000000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("fresh credential status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	a := newTestApp(t)
	credential := login(t, a)

	w := doJSON(t, a, http.MethodPost, "/api/v1/auth/logout", credential, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", w.Code)
	}

	w = doJSON(t, a, http.MethodGet, "/api/v1/jobs", credential, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout status = %d, expected 401", w.Code)
	}
}

func TestLogoutViaQueryToken(t *testing.T) {
	a := newTestApp(t)
	credential := login(t, a)

	// Clients authenticating via ?token= must be able to end their session
	// the same way; logout resolves the credential like the guard does.
	w := doJSON(t, a, http.MethodPost, "/api/v1/auth/logout?token="+credential, "", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", w.Code)
	}

	w = doJSON(t, a, http.MethodGet, "/api/v1/jobs", credential, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout status = %d, expected 401", w.Code)
	}
}

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	a := newTestApp(t)
	w := doJSON(t, a, http.MethodGet, "/api/v1/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, expected 404", w.Code)
	}
}
