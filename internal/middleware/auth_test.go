package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libertysafety/liberty-server-go/internal/auth"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

type mockUserRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByEmailOrMobile(ctx context.Context, email, mobile string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindAll(ctx context.Context, limit, offset int) ([]model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindOfficerByStation(ctx context.Context, station string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindOfficersByStationID(ctx context.Context, stationID string) ([]model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id string, params model.UpdateUserStatusParams) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	return 0, nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role model.Role) (int, error) {
	return 0, nil
}

func (m *mockUserRepo) WithTx(tx *sqlx.Tx) repository.UserRepository {
	return m
}

func newTestAuthority(users repository.UserRepository) *auth.Authority {
	tokens := auth.NewTokens("test-secret-that-is-long-enough!", auth.DefaultTokenTTL)
	return auth.NewAuthority(users, tokens)
}

func okHandler(t *testing.T, sawUser **model.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawUser = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	users := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleWoman, IsActive: true}, nil
		},
	}
	authority := newTestAuthority(users)
	token, err := authority.IssueToken("user-1")
	require.NoError(t, err)

	var sawUser *model.User
	handler := NewAuthMiddleware(authority).Handler(okHandler(t, &sawUser))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sawUser)
	assert.Equal(t, "user-1", sawUser.ID)
}

func TestAuthMiddlewareMissingCookie(t *testing.T) {
	authority := newTestAuthority(&mockUserRepo{})
	handler := NewAuthMiddleware(authority).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	authority := newTestAuthority(&mockUserRepo{})
	handler := NewAuthMiddleware(authority).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInactiveUser(t *testing.T) {
	users := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleWoman, IsActive: false}, nil
		},
	}
	authority := newTestAuthority(users)
	token, err := authority.IssueToken("user-1")
	require.NoError(t, err)

	handler := NewAuthMiddleware(authority).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	users := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleWoman, IsActive: true}, nil
		},
	}
	authority := newTestAuthority(users)
	token, err := authority.IssueToken("user-1")
	require.NoError(t, err)

	mw := NewAuthMiddleware(authority)

	t.Run("matching role passes", func(t *testing.T) {
		var sawUser *model.User
		handler := mw.RequireRole(model.RoleWoman)(okHandler(t, &sawUser))

		req := httptest.NewRequest(http.MethodPost, "/api/incidents", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, sawUser)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		handler := mw.RequireRole(model.RolePolice)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAuthCookieLifetimeMatchesToken(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAuthCookie(rec, "token-value", false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, AuthCookieName, cookie.Name)
	assert.Equal(t, int(auth.DefaultTokenTTL/time.Second), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	rec = httptest.NewRecorder()
	ClearAuthCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
