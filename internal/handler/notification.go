package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/libertysafety/liberty-server-go/internal/middleware"
	"github.com/libertysafety/liberty-server-go/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	authMW              *middleware.AuthMiddleware
}

func NewNotificationHandler(notificationService *service.NotificationService, authMW *middleware.AuthMiddleware) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authMW:              authMW,
	}
}

func (h *NotificationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.authMW.Handler)

	r.Get("/", h.List)
	r.Patch("/", h.MarkAllRead)

	return r
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	notifications, unread, err := h.notificationService.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.notificationService.MarkAllRead(r.Context(), user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "All notifications marked as read",
	})
}
