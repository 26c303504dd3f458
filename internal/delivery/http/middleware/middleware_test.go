package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/pkg/jwt"
	"go-clinic-scheduling/pkg/jwt/jwttest"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type authFixture struct {
	mr   *miniredis.Miniredis
	auth *middleware.AuthMiddleware
}

func newAuthFixture(t *testing.T) *authFixture {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: testSecret})
	return &authFixture{
		mr:   mr,
		auth: middleware.NewAuthMiddleware(jwtService, client, quietLogger()),
	}
}

// login mints a token and registers it the way the identity service does
func (f *authFixture) login(t *testing.T, userID uuid.UUID, roleID int) string {
	token, tokenID, err := jwttest.Sign(testSecret, userID, "someone@clinic.test", roleID, time.Hour)
	require.NoError(t, err)
	require.NoError(t, f.mr.Set(middleware.AccessTokenKey(userID, tokenID), "1"))
	return token
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()

	var seen struct {
		userID uuid.UUID
		roleID int
	}
	protected := f.auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.userID, _ = middleware.GetUserIDFromContext(r.Context())
		seen.roleID, _ = middleware.GetRoleIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec.Code
	}

	token := f.login(t, userID, entity.RoleIDPatient)

	t.Run("valid token", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, call("Bearer "+token))
		assert.Equal(t, userID, seen.userID)
		assert.Equal(t, entity.RoleIDPatient, seen.roleID)
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call(""))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Basic "+token))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer not-a-jwt"))
	})

	t.Run("revoked token", func(t *testing.T) {
		other := uuid.New()
		revoked := f.login(t, other, entity.RoleIDDoctor)
		f.mr.FlushAll()

		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+revoked))
	})

	t.Run("redis unavailable", func(t *testing.T) {
		token := f.login(t, userID, entity.RoleIDPatient)
		f.mr.Close()

		assert.Equal(t, http.StatusInternalServerError, call("Bearer "+token))
	})
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name       string
		guard      func(http.Handler) http.Handler
		roleID     *int
		wantStatus int
	}{
		{name: "admin on admin route", guard: middleware.RequireAdmin, roleID: intPtr(entity.RoleIDAdmin), wantStatus: http.StatusNoContent},
		{name: "doctor on admin route", guard: middleware.RequireAdmin, roleID: intPtr(entity.RoleIDDoctor), wantStatus: http.StatusForbidden},
		{name: "doctor on staff route", guard: middleware.RequireStaff, roleID: intPtr(entity.RoleIDDoctor), wantStatus: http.StatusNoContent},
		{name: "patient on staff route", guard: middleware.RequireStaff, roleID: intPtr(entity.RoleIDPatient), wantStatus: http.StatusForbidden},
		{name: "no identity", guard: middleware.RequireStaff, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.roleID != nil {
				req = req.WithContext(middleware.WithUser(context.Background(), uuid.New(), *tt.roleID))
			}

			rec := httptest.NewRecorder()
			tt.guard(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
	assert.Equal(t, got, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", got)
	assert.Equal(t, "trace-42", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRecover(t *testing.T) {
	m := middleware.NewLoggingMiddleware(quietLogger())
	h := m.Handle(m.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.NewCORSMiddleware("https://clinic.test").Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/appointments", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://clinic.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, middleware.RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
}

func intPtr(v int) *int { return &v }
