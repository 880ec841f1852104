package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/libertysafety/liberty-server-go/internal/audit"
	"github.com/libertysafety/liberty-server-go/internal/auth"
	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/httputil"
	"github.com/libertysafety/liberty-server-go/internal/model"
)

const (
	AuthCookieName = "auth-token"
	// AuthCookieMaxAge equals the token lifetime so the cookie never
	// outlives its token.
	AuthCookieMaxAge = auth.DefaultTokenTTL
)

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the authenticated account stashed by AuthMiddleware, or
// nil when the request never passed through it.
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserContextKey).(*model.User); ok {
		return user
	}
	return nil
}

// AuthMiddleware gates a route subtree on a valid session token. The token
// rides in the auth cookie; authorization itself is a single call into the
// credential authority, so no route can shortcut around the active check
// or the role comparison.
type AuthMiddleware struct {
	authority *auth.Authority
}

func NewAuthMiddleware(authority *auth.Authority) *AuthMiddleware {
	return &AuthMiddleware{authority: authority}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return m.require(next)
}

// RequireRole restricts the subtree to the given roles on top of a valid
// session.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.require(next, roles...)
	}
}

func (m *AuthMiddleware) require(next http.Handler, roles ...model.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AuthCookieName)
		if err != nil || cookie.Value == "" {
			httputil.WriteError(w, apperrors.Unauthenticated())
			return
		}

		user, err := m.authority.Authorize(r.Context(), cookie.Value, roles...)
		if err != nil {
			audit.LogFromRequest(r, audit.Event{
				Type: audit.EventAuthFailure,
				Details: map[string]interface{}{
					"path": r.URL.Path,
				},
			})
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SetAuthCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(AuthCookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   AuthCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
