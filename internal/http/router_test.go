package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/auth"
	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/user"
	apphttp "github.com/TARUN062005/MERNNETFLIX/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func testConfig() config.Config {
	return config.Config{
		Env:                  "test",
		JWTSecret:            "router-test-secret",
		AdminTokenTTLMinutes: 60,
		UserTokenTTLMinutes:  120,
		CORSOrigins:          []string{"http://localhost:5173"},
	}
}

// Guard behavior is testable without a database: rejections happen before
// any repository call.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return apphttp.NewRouter(logger, nil, nil, testConfig(), prometheus.NewRegistry())
}

func tokenFor(t *testing.T, role user.Role) string {
	t.Helper()

	cfg := testConfig()
	m := auth.NewManager(cfg.JWTSecret, cfg.AdminTokenTTL(), cfg.UserTokenTTL())

	token, err := m.GenerateToken("subject-1", "a@x.com", role)

	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	return token
}

func TestGuardedRoutes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "admin_route_without_token",
			method:     http.MethodGet,
			path:       "/admin/allUsers",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "admin_route_with_user_token",
			method:     http.MethodGet,
			path:       "/admin/allUsers",
			authHeader: "Bearer " + tokenFor(t, user.RoleUser),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "user_route_without_token",
			method:     http.MethodGet,
			path:       "/user/movies",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "user_route_with_admin_token",
			method:     http.MethodGet,
			path:       "/user/movies",
			authHeader: "Bearer " + tokenFor(t, user.RoleAdmin),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "reset_password_with_user_token",
			method:     http.MethodPut,
			path:       "/admin/resetUserPass/u-1",
			authHeader: "Bearer " + tokenFor(t, user.RoleUser),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "payment_stub_is_open",
			method:     http.MethodGet,
			path:       "/payment/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "healthz",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t)

			req := httptest.NewRequest(tt.method, tt.path, nil)

			if tt.method == http.MethodPost || tt.method == http.MethodPut {
				req.Header.Set("Content-Type", "application/json")
			}

			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireJSONOnWriteRoutes(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
	req.Header.Set("Content-Type", "text/plain")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("got status %d, want 415", w.Code)
	}
}

// An expired token on a guarded route is indistinguishable from no token:
// both are a 401.
func TestExpiredTokenIsUnauthenticated(t *testing.T) {
	r := setupRouter(t)

	cfg := testConfig()
	expired := auth.NewManager(cfg.JWTSecret, -time.Minute, -time.Minute)

	token, err := expired.GenerateToken("subject-1", "a@x.com", user.RoleAdmin)

	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/allUsers", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", w.Code)
	}
}
