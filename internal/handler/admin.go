package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/libertysafety/liberty-server-go/internal/audit"
	"github.com/libertysafety/liberty-server-go/internal/auth"
	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/middleware"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/service"
	"github.com/libertysafety/liberty-server-go/internal/util"
)

// AdminHandler serves the oversight dashboard. Except for the two auth
// endpoints, every route requires an active police account.
type AdminHandler struct {
	adminService    *service.AdminService
	incidentService *service.IncidentService
	authority       *auth.Authority
	authMW          *middleware.AuthMiddleware
	loginLimiter    *middleware.LoginRateLimiter
	adminSecretKey  string
	isProduction    bool
}

func NewAdminHandler(
	adminService *service.AdminService,
	incidentService *service.IncidentService,
	authority *auth.Authority,
	authMW *middleware.AuthMiddleware,
	loginLimiter *middleware.LoginRateLimiter,
	adminSecretKey string,
	isProduction bool,
) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		incidentService: incidentService,
		authority:       authority,
		authMW:          authMW,
		loginLimiter:    loginLimiter,
		adminSecretKey:  adminSecretKey,
		isProduction:    isProduction,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginLimiter.Handler).Post("/auth/login", h.Login)
	r.With(h.loginLimiter.Handler).Post("/auth/register", h.RegisterOfficer)

	r.Group(func(r chi.Router) {
		r.Use(h.authMW.RequireRole(model.RolePolice))

		r.Get("/stats", h.Stats)
		r.Get("/users", h.ListUsers)
		r.Patch("/users/{id}", h.UpdateUserStatus)
		r.Get("/incidents", h.ListIncidents)
		r.Patch("/incidents/{id}", h.UpdateIncident)
	})

	return r
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the same credential store as the public login
// but only admits police accounts.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
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
				"admin": true,
			},
		})
		writeError(w, apperrors.InvalidCredentials())
		return
	}
	if user.Role != model.RolePolice {
		audit.LogFromRequest(r, audit.Event{
			Type:   audit.EventLoginFailure,
			UserID: user.ID,
			Details: map[string]interface{}{
				"reason": "not police",
				"admin":  true,
			},
		})
		writeError(w, apperrors.Forbidden("Access denied. Admin privileges required."))
		return
	}
	if !user.IsActive {
		writeError(w, apperrors.Forbidden("Account is deactivated"))
		return
	}

	token, err := h.authority.IssueToken(user.ID)
	if err != nil {
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
		"message": "Admin login successful",
	})
}

type adminRegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	Password      string `json:"password"`
	SecretKey     string `json:"secretKey"`
	BadgeID       string `json:"badgeId"`
	PoliceStation string `json:"policeStation"`
	State         string `json:"state"`
	City          string `json:"city"`
}

func (r adminRegisterRequest) validate() error {
	if len(r.Name) < 2 || len(r.Name) > 255 {
		return apperrors.InvalidInput("name", "must be between 2 and 255 characters")
	}
	if !util.IsValidEmail(r.Email) {
		return apperrors.InvalidInput("email", "must be a valid email address")
	}
	if !util.IsValidMobile(r.Mobile) {
		return apperrors.InvalidInput("mobile", "must be a valid mobile number")
	}
	if r.SecretKey == "" {
		return apperrors.MissingRequired("secretKey")
	}
	if r.BadgeID == "" || r.PoliceStation == "" || r.State == "" || r.City == "" {
		return apperrors.MissingRequired("badgeId, policeStation, state and city")
	}
	return nil
}

// RegisterOfficer creates a police account. The shared secret key is the
// only gate, so it must be rotated out of its development default before
// the route is exposed.
func (h *AdminHandler) RegisterOfficer(w http.ResponseWriter, r *http.Request) {
	var req adminRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	if !util.ConstantTimeEqual(req.SecretKey, h.adminSecretKey) {
		audit.LogFromRequest(r, audit.Event{
			Type: audit.EventAuthFailure,
			Details: map[string]interface{}{
				"reason": "bad admin secret",
				"email":  req.Email,
			},
		})
		writeError(w, apperrors.Forbidden("Invalid admin secret key. Access denied."))
		return
	}

	user, err := h.authority.Register(r.Context(), model.CreateUserParams{
		Email:         req.Email,
		Mobile:        req.Mobile,
		Name:          req.Name,
		Role:          model.RolePolice,
		State:         &req.State,
		City:          &req.City,
		BadgeID:       &req.BadgeID,
		PoliceStation: &req.PoliceStation,
	}, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.authority.IssueToken(user.ID)
	if err != nil {
		writeError(w, apperrors.Internal("Registration failed"))
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventRegister,
		UserID: user.ID,
		Details: map[string]interface{}{
			"role":  string(user.Role),
			"admin": true,
		},
	})

	middleware.SetAuthCookie(w, token, h.isProduction)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
		"message": "Admin registration successful",
	})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	users, total, err := h.adminService.GetUsers(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   users,
		"total":   total,
	})
}

type updateUserStatusRequest struct {
	IsActive   *bool `json:"isActive,omitempty"`
	IsVerified *bool `json:"isVerified,omitempty"`
}

func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}

	user, err := h.adminService.UpdateUserStatus(r.Context(), id, model.UpdateUserStatusParams{
		IsActive:   req.IsActive,
		IsVerified: req.IsVerified,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventUserStatusChange,
		UserID: actor.ID,
		Details: map[string]interface{}{
			"targetUserId": id,
		},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (h *AdminHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	status := r.URL.Query().Get("status")

	incidents, total, err := h.adminService.GetIncidents(r.Context(), p.Limit, p.Offset, status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"incidents": incidents,
		"total":     total,
	})
}

type updateIncidentRequest struct {
	Status            *string `json:"status,omitempty"`
	Priority          *int    `json:"priority,omitempty"`
	AssignedOfficerID *string `json:"assignedOfficerId,omitempty"`
}

func (h *AdminHandler) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}

	params := model.UpdateIncidentParams{
		Priority:          req.Priority,
		AssignedOfficerID: req.AssignedOfficerID,
	}
	if req.Status != nil {
		status := model.IncidentStatus(*req.Status)
		params.Status = &status
	}

	incident, err := h.incidentService.Update(r.Context(), id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.GetUser(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventIncidentUpdate,
		UserID:     actor.ID,
		IncidentID: incident.ID,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"incident": incident,
	})
}
