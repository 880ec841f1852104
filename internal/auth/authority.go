package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

// Authority owns credential verification, token issuance, and the mapping
// from a validated token to an account and role. Every privileged request
// path goes through Authorize; there is no other way to turn a token into
// an identity.
type Authority struct {
	users  repository.UserRepository
	tokens *Tokens
}

func NewAuthority(users repository.UserRepository, tokens *Tokens) *Authority {
	return &Authority{users: users, tokens: tokens}
}

// IssueToken mints a session token for the given account identifier.
func (a *Authority) IssueToken(userID string) (string, error) {
	return a.tokens.Issue(userID)
}

// Authenticate resolves email + password to an account. It returns nil, nil
// both when the email is unknown and when the password is wrong; the caller
// sees a single "invalid credentials" outcome. A dummy hash verification
// runs on the unknown-email path so the two cases take comparable time.
func (a *Authority) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if user == nil {
		CheckPassword(password, dummyHash)
		return nil, nil
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}

	if err := a.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		// Login still succeeds; the timestamp is best-effort.
		log.Warn().Err(err).Str("userId", user.ID).Msg("failed to update last login")
	}

	return user, nil
}

// Register creates an account with a freshly derived credential hash.
// A collision on email or mobile surfaces as DuplicateIdentity; the store's
// unique constraints serialize concurrent registrations, so the loser of a
// race gets the same error with no partial write.
func (a *Authority) Register(ctx context.Context, params model.CreateUserParams, password string) (*model.User, error) {
	if len(password) < MinPasswordLength {
		return nil, apperrors.InvalidInput("password", "must be at least 6 characters")
	}

	existing, err := a.users.FindByEmailOrMobile(ctx, params.Email, params.Mobile)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateIdentity()
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("failed to derive credential hash").WithCause(err)
	}
	params.PasswordHash = hash

	user, err := a.users.Create(ctx, params)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.DuplicateIdentity()
		}
		return nil, apperrors.Database(err)
	}

	return user, nil
}

// Authorize is the choke point: token verification, account lookup, active
// check, and role comparison in one call. Token problems, a vanished
// account, and an inactive account all collapse to Unauthenticated; a live
// account with the wrong role gets Forbidden. An empty role set admits any
// active account.
func (a *Authority) Authorize(ctx context.Context, token string, roles ...model.Role) (*model.User, error) {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Unauthenticated()
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.Unauthenticated()
	}

	if len(roles) == 0 {
		return user, nil
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, apperrors.Forbidden("Insufficient privileges")
}
