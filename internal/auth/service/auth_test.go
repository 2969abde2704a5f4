package service_test

import (
	"context"
	"database/sql"
	"fmt"
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
	"github.com/platefront/backoffice-backend/pkg/errors"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// fakeProvider answers authentication and session resolution from fixtures.
type fakeProvider struct {
	authErr    error
	session    *identity.Session
	resolveErr error
	identityID string
}

func (f *fakeProvider) Authenticate(ctx context.Context, email, password string) (*identity.Session, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.session, nil
}

func (f *fakeProvider) ResolveSession(token string) (string, error) {
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return f.identityID, nil
}

func newTestService(t *testing.T, provider *fakeProvider) (*service.AuthService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "sqlmock")
	log := logger.New("test", "test")
	profiles := repository.NewProfileRepository(database.NewWithDB(sdb, log))

	return service.NewAuthService(provider, profiles, log), mock
}

func profileRow(identityID, companyCode, role string, storeName *string) *sqlmock.Rows {
	var name interface{}
	if storeName != nil {
		name = *storeName
	}
	return sqlmock.NewRows([]string{
		"identity_id", "company_code", "role", "store_name", "user_group", "created_at", "updated_at",
	}).AddRow(identityID, companyCode, role, name, nil, time.Now(), time.Now())
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		provider := &fakeProvider{session: &identity.Session{IdentityID: "idp-123", Token: "session-token"}}
		svc, mock := newTestService(t, provider)

		mock.ExpectQuery(`SELECT identity_id, company_code, role, store_name, user_group`).
			WithArgs("idp-123").
			WillReturnRows(profileRow("idp-123", "STORE1", "store", nil))

		resp, err := svc.Login(context.Background(), &service.LoginRequest{
			Email:    "store1@stores.platefront.app",
			Password: "correct-password",
		})
		require.NoError(t, err)
		assert.Equal(t, "STORE1", resp.CompanyCode)
		assert.Equal(t, "session-token", resp.Token)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		provider := &fakeProvider{authErr: errors.InvalidCredentials()}
		svc, _ := newTestService(t, provider)

		_, err := svc.Login(context.Background(), &service.LoginRequest{
			Email:    "store1@stores.platefront.app",
			Password: "wrong-password",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
	})

	t.Run("identity without profile", func(t *testing.T) {
		provider := &fakeProvider{session: &identity.Session{IdentityID: "idp-orphan", Token: "session-token"}}
		svc, mock := newTestService(t, provider)

		mock.ExpectQuery(`SELECT identity_id, company_code, role, store_name, user_group`).
			WithArgs("idp-orphan").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.Login(context.Background(), &service.LoginRequest{
			Email:    "ghost@stores.platefront.app",
			Password: "correct-password",
		})
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

func TestAuthorize(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeProvider{})

		_, err := svc.Authorize(context.Background(), "", "")
		assert.True(t, errors.Is(err, errors.ErrUnauthorized))
	})

	t.Run("unresolvable token", func(t *testing.T) {
		provider := &fakeProvider{resolveErr: fmt.Errorf("bad signature")}
		svc, _ := newTestService(t, provider)

		_, err := svc.Authorize(context.Background(), "bad-token", "")
		assert.True(t, errors.Is(err, errors.ErrUnauthorized))
	})

	t.Run("no role requirement", func(t *testing.T) {
		provider := &fakeProvider{identityID: "idp-123"}
		svc, mock := newTestService(t, provider)

		mock.ExpectQuery(`SELECT identity_id, company_code, role, store_name, user_group`).
			WithArgs("idp-123").
			WillReturnRows(profileRow("idp-123", "STORE1", "store", strPtr("Main Street")))

		caller, err := svc.Authorize(context.Background(), "token", "")
		require.NoError(t, err)
		assert.Equal(t, "STORE1", caller.CompanyCode)
		assert.Equal(t, "Main Street", caller.StoreName)
		assert.True(t, caller.IsStore())
	})

	t.Run("role matches", func(t *testing.T) {
		provider := &fakeProvider{identityID: "idp-admin"}
		svc, mock := newTestService(t, provider)

		mock.ExpectQuery(`SELECT identity_id, company_code, role, store_name, user_group`).
			WithArgs("idp-admin").
			WillReturnRows(profileRow("idp-admin", "HQ", "admin", nil))

		caller, err := svc.Authorize(context.Background(), "token", actor.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, caller.IsAdmin())
	})

	t.Run("role mismatch", func(t *testing.T) {
		provider := &fakeProvider{identityID: "idp-123"}
		svc, mock := newTestService(t, provider)

		mock.ExpectQuery(`SELECT identity_id, company_code, role, store_name, user_group`).
			WithArgs("idp-123").
			WillReturnRows(profileRow("idp-123", "STORE1", "store", nil))

		_, err := svc.Authorize(context.Background(), "token", actor.RoleAdmin)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrForbidden))
	})

	t.Run("token for a deleted profile", func(t *testing.T) {
		provider := &fakeProvider{identityID: "idp-gone"}
		svc, mock := newTestService(t, provider)

		mock.ExpectQuery(`SELECT identity_id, company_code, role, store_name, user_group`).
			WithArgs("idp-gone").
			WillReturnError(sql.ErrNoRows)

		_, err := svc.Authorize(context.Background(), "token", "")
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

func strPtr(s string) *string { return &s }
