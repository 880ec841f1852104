package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/libertysafety/liberty-server-go/internal/audit"
	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/middleware"
	"github.com/libertysafety/liberty-server-go/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
	authMW      *middleware.AuthMiddleware
}

func NewChatHandler(chatService *service.ChatService, authMW *middleware.AuthMiddleware) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		authMW:      authMW,
	}
}

func (h *ChatHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.authMW.Handler)

	r.Post("/rooms", h.OpenRoom)
	r.Get("/rooms", h.ListRooms)
	r.Post("/messages", h.SendMessage)
	r.Get("/messages", h.ListMessages)

	return r
}

type openRoomRequest struct {
	PoliceStationID string  `json:"policeStationId"`
	IncidentID      *string `json:"incidentId,omitempty"`
}

func (h *ChatHandler) OpenRoom(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req openRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}

	room, created, err := h.chatService.OpenRoom(r.Context(), user, req.PoliceStationID, req.IncidentID)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	message := "Chat room already exists"
	if created {
		status = http.StatusCreated
		message = "Chat room created successfully"
	}
	writeJSON(w, status, map[string]any{
		"success":  true,
		"chatRoom": room,
		"message":  message,
	})
}

func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	rooms, err := h.chatService.ListRooms(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"chatRooms": rooms,
	})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.SendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperrors.ValidationError("invalid request body"))
		return
	}

	msg, err := h.chatService.SendMessage(r.Context(), user, input)
	if err != nil {
		writeError(w, err)
		return
	}

	if msg.IsAlert {
		audit.LogFromRequest(r, audit.Event{
			Type:   audit.EventAlertMessage,
			UserID: user.ID,
			Details: map[string]interface{}{
				"chatRoomId": msg.ChatRoomID,
			},
		})
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": msg,
	})
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	chatRoomID := r.URL.Query().Get("chat_room_id")
	p := ParsePagination(r)

	messages, err := h.chatService.ListMessages(r.Context(), user, chatRoomID, p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"messages": messages,
	})
}
