package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/libertysafety/liberty-server-go/internal/service"
)

type StationHandler struct {
	stationService *service.StationService
}

func NewStationHandler(stationService *service.StationService) *StationHandler {
	return &StationHandler{stationService: stationService}
}

func (h *StationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stationService.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"policeStations": stations,
	})
}
