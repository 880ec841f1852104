package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

type SendMessageInput struct {
	ChatRoomID  string   `json:"chatRoomId"`
	Content     *string  `json:"content,omitempty"`
	MessageType string   `json:"messageType"`
	FileURL     *string  `json:"fileUrl,omitempty"`
	LocationLat *float64 `json:"locationLat,omitempty"`
	LocationLng *float64 `json:"locationLng,omitempty"`
	IsAlert     bool     `json:"isAlert"`
}

type ChatService struct {
	roomRepo         repository.ChatRoomRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	stationRepo      repository.PoliceStationRepository
	notificationRepo repository.NotificationRepository
}

func NewChatService(
	roomRepo repository.ChatRoomRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	stationRepo repository.PoliceStationRepository,
	notificationRepo repository.NotificationRepository,
) *ChatService {
	return &ChatService{
		roomRepo:         roomRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		stationRepo:      stationRepo,
		notificationRepo: notificationRepo,
	}
}

// OpenRoom returns the caller's active room with the given station, creating
// it if none exists. A fresh room gets an officer assigned from the station
// and a greeting message from that officer.
func (s *ChatService) OpenRoom(ctx context.Context, user *model.User, stationID string, incidentID *string) (*model.ChatRoom, bool, error) {
	if stationID == "" {
		return nil, false, apperrors.MissingRequired("police_station_id")
	}

	existing, err := s.roomRepo.FindActiveByUserAndStation(ctx, user.ID, stationID)
	if err != nil {
		return nil, false, apperrors.Database(err)
	}
	if existing != nil {
		return existing, false, nil
	}

	station, err := s.stationRepo.FindByID(ctx, stationID)
	if err != nil {
		return nil, false, apperrors.Database(err)
	}
	if station == nil {
		return nil, false, apperrors.NotFound("Police station")
	}

	params := model.CreateChatRoomParams{
		UserID:          user.ID,
		PoliceStationID: &stationID,
		IncidentID:      incidentID,
	}

	officers, err := s.userRepo.FindOfficersByStationID(ctx, stationID)
	if err != nil {
		log.Warn().Err(err).Str("stationId", stationID).Msg("failed to look up station officers")
	}
	var officer *model.User
	if len(officers) > 0 {
		officer = &officers[0]
		params.OfficerID = &officer.ID
	}

	room, err := s.roomRepo.Create(ctx, params)
	if err != nil {
		return nil, false, apperrors.Database(err)
	}

	if officer != nil {
		greeting := fmt.Sprintf("Hello, this is Officer %s from %s. How can I assist you today?", officer.Name, station.Name)
		_, err := s.messageRepo.Create(ctx, model.CreateMessageParams{
			ChatRoomID:  room.ID,
			SenderID:    officer.ID,
			Content:     &greeting,
			MessageType: model.MessageTypeText,
		})
		if err != nil {
			log.Warn().Err(err).Str("roomId", room.ID).Msg("failed to send greeting message")
		}
	}

	log.Info().
		Str("roomId", room.ID).
		Str("userId", user.ID).
		Str("stationId", stationID).
		Msg("chat room opened")

	return room, true, nil
}

// ListRooms returns the caller's active rooms, most recently touched first.
func (s *ChatService) ListRooms(ctx context.Context, user *model.User) ([]model.ChatRoom, error) {
	rooms, err := s.roomRepo.FindByMemberID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return rooms, nil
}

// SendMessage appends a message to a room the sender belongs to. An alert
// message additionally raises an emergency notification for the other
// member of the room.
func (s *ChatService) SendMessage(ctx context.Context, sender *model.User, input SendMessageInput) (*model.Message, error) {
	if input.ChatRoomID == "" {
		return nil, apperrors.MissingRequired("chat_room_id")
	}
	msgType := input.MessageType
	if msgType == "" {
		msgType = string(model.MessageTypeText)
	}
	if !model.ValidMessageType(msgType) {
		return nil, apperrors.InvalidInput("message_type", "unknown message type")
	}

	room, err := s.roomRepo.FindByID(ctx, input.ChatRoomID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if room == nil || !room.IsActive || !room.Member(sender.ID) {
		return nil, apperrors.Forbidden("Access denied")
	}

	msg, err := s.messageRepo.Create(ctx, model.CreateMessageParams{
		ChatRoomID:  room.ID,
		SenderID:    sender.ID,
		Content:     input.Content,
		MessageType: model.MessageType(msgType),
		FileURL:     input.FileURL,
		LocationLat: input.LocationLat,
		LocationLng: input.LocationLng,
		IsAlert:     input.IsAlert,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if err := s.roomRepo.Touch(ctx, room.ID); err != nil {
		log.Warn().Err(err).Str("roomId", room.ID).Msg("failed to touch chat room")
	}

	if input.IsAlert {
		s.notifyAlert(ctx, room, sender.ID)
	}

	return msg, nil
}

func (s *ChatService) notifyAlert(ctx context.Context, room *model.ChatRoom, senderID string) {
	var recipientID string
	if room.UserID == senderID {
		if room.OfficerID != nil {
			recipientID = *room.OfficerID
		}
	} else {
		recipientID = room.UserID
	}
	if recipientID == "" {
		return
	}

	actionURL := "/chat/" + room.ID
	_, err := s.notificationRepo.Create(ctx, model.CreateNotificationParams{
		UserID:    recipientID,
		Title:     "Emergency Alert",
		Message:   "Emergency alert received in chat",
		Type:      "alert",
		ActionURL: &actionURL,
	})
	if err != nil {
		log.Warn().Err(err).Str("roomId", room.ID).Msg("failed to create alert notification")
	}
}

// ListMessages returns a room's messages oldest first and marks everything
// the caller has not sent as read.
func (s *ChatService) ListMessages(ctx context.Context, user *model.User, chatRoomID string, limit, offset int) ([]model.Message, error) {
	if chatRoomID == "" {
		return nil, apperrors.MissingRequired("chat_room_id")
	}

	room, err := s.roomRepo.FindByID(ctx, chatRoomID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if room == nil || !room.Member(user.ID) {
		return nil, apperrors.Forbidden("Access denied")
	}

	messages, err := s.messageRepo.FindByChatRoomID(ctx, chatRoomID, limit, offset)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if err := s.messageRepo.MarkRead(ctx, chatRoomID, user.ID); err != nil {
		log.Warn().Err(err).Str("roomId", chatRoomID).Msg("failed to mark messages read")
	}

	return messages, nil
}
