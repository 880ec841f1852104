package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

type mockUserRepo struct {
	findByIDFunc            func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc         func(ctx context.Context, email string) (*model.User, error)
	findByEmailOrMobileFunc func(ctx context.Context, email, mobile string) (*model.User, error)
	createFunc              func(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	updateLastLoginFunc     func(ctx context.Context, id string, at time.Time) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmailOrMobile(ctx context.Context, email, mobile string) (*model.User, error) {
	if m.findByEmailOrMobileFunc != nil {
		return m.findByEmailOrMobileFunc(ctx, email, mobile)
	}
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
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if m.updateLastLoginFunc != nil {
		return m.updateLastLoginFunc(ctx, id, at)
	}
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

var pqUniqueViolation = pq.Error{Code: "23505", Constraint: "users_email_key"}

func testAuthority(users repository.UserRepository) *Authority {
	tokens := NewTokens("test-secret-that-is-long-enough!", DefaultTokenTTL)
	return NewAuthority(users, tokens)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAuthenticateSuccess(t *testing.T) {
	hash := mustHash(t, "secret123")
	var lastLoginSet bool
	users := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, PasswordHash: hash, Role: model.RoleWoman, IsActive: true}, nil
		},
		updateLastLoginFunc: func(ctx context.Context, id string, at time.Time) error {
			lastLoginSet = true
			return nil
		},
	}

	user, err := testAuthority(users).Authenticate(context.Background(), "priya@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, lastLoginSet)
}

func TestAuthenticateRejections(t *testing.T) {
	hash := mustHash(t, "secret123")

	t.Run("unknown email", func(t *testing.T) {
		users := &mockUserRepo{}
		user, err := testAuthority(users).Authenticate(context.Background(), "nobody@example.com", "secret123")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
				return &model.User{ID: "user-1", Email: email, PasswordHash: hash, IsActive: true}, nil
			},
		}
		user, err := testAuthority(users).Authenticate(context.Background(), "priya@example.com", "wrong")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestAuthenticateLastLoginFailureIgnored(t *testing.T) {
	hash := mustHash(t, "secret123")
	users := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, PasswordHash: hash, IsActive: true}, nil
		},
		updateLastLoginFunc: func(ctx context.Context, id string, at time.Time) error {
			return errors.New("connection reset")
		},
	}

	user, err := testAuthority(users).Authenticate(context.Background(), "priya@example.com", "secret123")
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestRegisterSuccess(t *testing.T) {
	var created model.CreateUserParams
	users := &mockUserRepo{
		createFunc: func(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
			created = params
			return &model.User{ID: "user-1", Email: params.Email, Role: params.Role, IsActive: true}, nil
		},
	}

	user, err := testAuthority(users).Register(context.Background(), model.CreateUserParams{
		Name:   "Priya",
		Email:  "priya@example.com",
		Mobile: "+919876543210",
		Role:   model.RoleWoman,
	}, "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.True(t, CheckPassword("secret123", created.PasswordHash))
}

func TestRegisterShortPassword(t *testing.T) {
	users := &mockUserRepo{
		createFunc: func(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
			t.Fatal("create should not be reached")
			return nil, nil
		},
	}

	_, err := testAuthority(users).Register(context.Background(), model.CreateUserParams{
		Email: "priya@example.com",
	}, "short")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	t.Run("pre-check hit", func(t *testing.T) {
		users := &mockUserRepo{
			findByEmailOrMobileFunc: func(ctx context.Context, email, mobile string) (*model.User, error) {
				return &model.User{ID: "existing"}, nil
			},
			createFunc: func(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
				t.Fatal("create should not be reached")
				return nil, nil
			},
		}
		_, err := testAuthority(users).Register(context.Background(), model.CreateUserParams{
			Email: "priya@example.com",
		}, "secret123")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeDuplicateIdentity, apperrors.GetCode(err))
	})

	t.Run("lost insert race", func(t *testing.T) {
		users := &mockUserRepo{
			createFunc: func(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
				return nil, &pqUniqueViolation
			},
		}
		_, err := testAuthority(users).Register(context.Background(), model.CreateUserParams{
			Email: "priya@example.com",
		}, "secret123")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeDuplicateIdentity, apperrors.GetCode(err))
	})
}

func TestAuthorize(t *testing.T) {
	active := &model.User{ID: "user-1", Role: model.RolePolice, IsActive: true}
	users := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			if id == "user-1" {
				return active, nil
			}
			return nil, nil
		},
	}
	authority := testAuthority(users)

	token, err := authority.IssueToken("user-1")
	require.NoError(t, err)

	t.Run("any role", func(t *testing.T) {
		user, err := authority.Authorize(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("matching role", func(t *testing.T) {
		user, err := authority.Authorize(context.Background(), token, model.RolePolice)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("wrong role", func(t *testing.T) {
		_, err := authority.Authorize(context.Background(), token, model.RoleParent)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := authority.Authorize(context.Background(), "not-a-token")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthenticated, apperrors.GetCode(err))
	})

	t.Run("vanished account", func(t *testing.T) {
		ghost, err := authority.IssueToken("user-gone")
		require.NoError(t, err)
		_, err = authority.Authorize(context.Background(), ghost)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthenticated, apperrors.GetCode(err))
	})
}

func TestAuthorizeInactiveAccount(t *testing.T) {
	users := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleWoman, IsActive: false}, nil
		},
	}
	authority := testAuthority(users)

	token, err := authority.IssueToken("user-1")
	require.NoError(t, err)

	// Deactivation reads as a missing session, not a permissions problem.
	_, err = authority.Authorize(context.Background(), token, model.RoleWoman)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthenticated, apperrors.GetCode(err))
}
