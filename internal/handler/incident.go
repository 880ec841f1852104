package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/libertysafety/liberty-server-go/internal/audit"
	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/middleware"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/service"
)

type IncidentHandler struct {
	incidentService *service.IncidentService
	authMW          *middleware.AuthMiddleware
}

func NewIncidentHandler(incidentService *service.IncidentService, authMW *middleware.AuthMiddleware) *IncidentHandler {
	return &IncidentHandler{
		incidentService: incidentService,
		authMW:          authMW,
	}
}

func (h *IncidentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Tracking is public: the case number is the capability.
	r.Get("/track", h.Track)

	r.Group(func(r chi.Router) {
		r.Use(h.authMW.Handler)
		r.Get("/", h.List)
	})
	r.With(h.authMW.RequireRole(model.RoleWoman)).Post("/", h.Create)

	return r
}

func (h *IncidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.CreateIncidentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}

	incident, err := h.incidentService.Create(r.Context(), user, input)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventIncidentCreate,
		UserID:     user.ID,
		IncidentID: incident.ID,
		Details: map[string]interface{}{
			"caseNumber": incident.CaseNumber,
		},
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"incident": incident,
		"message":  "Incident reported successfully",
	})
}

func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	p := ParsePagination(r)

	incidents, err := h.incidentService.ListForUser(r.Context(), user, p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"incidents": incidents,
	})
}

func (h *IncidentHandler) Track(w http.ResponseWriter, r *http.Request) {
	caseNumber := r.URL.Query().Get("case_number")

	details, err := h.incidentService.TrackByCaseNumber(r.Context(), caseNumber)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"incident": details,
	})
}
