package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/libertysafety/liberty-server-go/internal/audit"
	"github.com/libertysafety/liberty-server-go/internal/auth"
	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/middleware"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/util"
)

type AuthHandler struct {
	authority    *auth.Authority
	authMW       *middleware.AuthMiddleware
	loginLimiter *middleware.LoginRateLimiter
	isProduction bool
}

func NewAuthHandler(
	authority *auth.Authority,
	authMW *middleware.AuthMiddleware,
	loginLimiter *middleware.LoginRateLimiter,
	isProduction bool,
) *AuthHandler {
	return &AuthHandler{
		authority:    authority,
		authMW:       authMW,
		loginLimiter: loginLimiter,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.With(h.loginLimiter.Handler).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.With(h.authMW.Handler).Get("/me", h.Me)

	return r
}

type registerRequest struct {
	Email         string  `json:"email"`
	Mobile        string  `json:"mobile"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Password      string  `json:"password"`
	State         *string `json:"state,omitempty"`
	City          *string `json:"city,omitempty"`
	BadgeID       *string `json:"badgeId,omitempty"`
	PoliceStation *string `json:"policeStation,omitempty"`
	Relation      *string `json:"relation,omitempty"`
}

func (r registerRequest) validate() error {
	if !util.IsValidEmail(r.Email) {
		return apperrors.InvalidInput("email", "must be a valid email address")
	}
	if !util.IsValidMobile(r.Mobile) {
		return apperrors.InvalidInput("mobile", "must be a valid mobile number")
	}
	if len(r.Name) < 2 || len(r.Name) > 255 {
		return apperrors.InvalidInput("name", "must be between 2 and 255 characters")
	}
	if !model.ValidRole(r.Role) {
		return apperrors.InvalidInput("role", "must be one of woman, police, parent")
	}
	return nil
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.authority.Register(r.Context(), model.CreateUserParams{
		Email:         req.Email,
		Mobile:        req.Mobile,
		Name:          req.Name,
		Role:          model.Role(req.Role),
		State:         req.State,
		City:          req.City,
		BadgeID:       req.BadgeID,
		PoliceStation: req.PoliceStation,
		Relation:      req.Relation,
	}, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.authority.IssueToken(user.ID)
	if err != nil {
		log.Error().Err(err).Str("userId", user.ID).Msg("failed to issue token")
		writeError(w, apperrors.Internal("Registration failed"))
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventRegister,
		UserID: user.ID,
		Details: map[string]interface{}{
			"role": string(user.Role),
		},
	})

	middleware.SetAuthCookie(w, token, h.isProduction)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
		"message": "Registration successful",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperrors.MissingRequired("email and password"))
		return
	}

	user, err := h.authority.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		audit.LogFromRequest(r, audit.Event{
			Type: audit.EventLoginFailure,
			Details: map[string]interface{}{
				"email": req.Email,
			},
		})
		writeError(w, apperrors.InvalidCredentials())
		return
	}
	if !user.IsActive {
		audit.LogFromRequest(r, audit.Event{
			Type:   audit.EventLoginFailure,
			UserID: user.ID,
			Details: map[string]interface{}{
				"reason": "inactive",
			},
		})
		writeError(w, apperrors.Forbidden("Account is deactivated"))
		return
	}

	token, err := h.authority.IssueToken(user.ID)
	if err != nil {
		log.Error().Err(err).Str("userId", user.ID).Msg("failed to issue token")
		writeError(w, apperrors.Internal("Login failed"))
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventLoginSuccess,
		UserID: user.ID,
	})

	middleware.SetAuthCookie(w, token, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"message": "Login successful",
	})
}

// Logout clears the auth cookie. Tokens are not tracked server side, so
// there is nothing to revoke; the cookie removal ends the browser session
// and the token ages out on its own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		audit.LogFromRequest(r, audit.Event{
			Type:   audit.EventLogout,
			UserID: user.ID,
		})
	}

	middleware.ClearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeError(w, apperrors.Unauthenticated())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}
