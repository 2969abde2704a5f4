package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefront/backoffice-backend/internal/auth/service"
	"github.com/platefront/backoffice-backend/internal/identity"
	"github.com/platefront/backoffice-backend/internal/user/repository"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/database"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

type fixedProvider struct {
	identityID string
	err        error
}

func (f *fixedProvider) Authenticate(ctx context.Context, email, password string) (*identity.Session, error) {
	return nil, f.err
}

func (f *fixedProvider) ResolveSession(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.identityID, nil
}

func newTestMiddleware(t *testing.T, provider *fixedProvider) (*Middleware, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "sqlmock")
	log := logger.New("test", "test")
	profiles := repository.NewProfileRepository(database.NewWithDB(sdb, log))

	return NewMiddleware(service.NewAuthService(provider, profiles, log), log), mock
}

func expectProfile(mock sqlmock.Sqlmock, identityID, companyCode, role string) {
	mock.ExpectQuery(`SELECT identity_id, company_code, role, store_name, user_group`).
		WithArgs(identityID).
		WillReturnRows(sqlmock.NewRows([]string{
			"identity_id", "company_code", "role", "store_name", "user_group", "created_at", "updated_at",
		}).AddRow(identityID, companyCode, role, nil, nil, time.Now(), time.Now()))
}

func callerEcho(t *testing.T, got **actor.Caller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = actor.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession(t *testing.T) {
	t.Run("bearer token resolves the caller", func(t *testing.T) {
		mw, mock := newTestMiddleware(t, &fixedProvider{identityID: "idp-123"})
		expectProfile(mock, "idp-123", "STORE1", "store")

		var caller *actor.Caller
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()

		mw.RequireSession(callerEcho(t, &caller)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, caller)
		assert.Equal(t, "STORE1", caller.CompanyCode)
	})

	t.Run("session cookie works as fallback", func(t *testing.T) {
		mw, mock := newTestMiddleware(t, &fixedProvider{identityID: "idp-123"})
		expectProfile(mock, "idp-123", "STORE1", "store")

		var caller *actor.Caller
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "token"})
		rec := httptest.NewRecorder()

		mw.RequireSession(callerEcho(t, &caller)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, caller)
	})

	t.Run("no credential is 401", func(t *testing.T) {
		mw, _ := newTestMiddleware(t, &fixedProvider{identityID: "idp-123"})

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()

		mw.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run without a session")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("role matches", func(t *testing.T) {
		mw, mock := newTestMiddleware(t, &fixedProvider{identityID: "idp-admin"})
		expectProfile(mock, "idp-admin", "HQ", "admin")

		var caller *actor.Caller
		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()

		mw.RequireRole(actor.RoleAdmin)(callerEcho(t, &caller)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, caller.IsAdmin())
	})

	t.Run("wrong role is 403", func(t *testing.T) {
		mw, mock := newTestMiddleware(t, &fixedProvider{identityID: "idp-123"})
		expectProfile(mock, "idp-123", "STORE1", "store")

		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()

		mw.RequireRole(actor.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run for the wrong role")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireStore(t *testing.T) {
	mw, mock := newTestMiddleware(t, &fixedProvider{identityID: "idp-admin"})
	expectProfile(mock, "idp-admin", "HQ", "admin")

	req := httptest.NewRequest(http.MethodGet, "/menu-items", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	mw.RequireStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("headquarters callers must not reach store routes")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		assert.Equal(t, "abc", TokenFromRequest(req))
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
		assert.Equal(t, "header-token", TokenFromRequest(req))
	})

	t.Run("malformed header falls back to cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
		assert.Equal(t, "cookie-token", TokenFromRequest(req))
	})

	t.Run("nothing present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", TokenFromRequest(req))
	})
}
