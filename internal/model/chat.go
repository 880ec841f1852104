package model

import (
	"time"
)

type ChatRoom struct {
	ID              string    `db:"id" json:"id"`
	IncidentID      *string   `db:"incident_id" json:"incidentId,omitempty"`
	UserID          string    `db:"user_id" json:"userId"`
	OfficerID       *string   `db:"officer_id" json:"officerId,omitempty"`
	PoliceStationID *string   `db:"police_station_id" json:"policeStationId,omitempty"`
	IsActive        bool      `db:"is_active" json:"isActive"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Member reports whether the given user participates in the room.
func (r *ChatRoom) Member(userID string) bool {
	if r.UserID == userID {
		return true
	}
	return r.OfficerID != nil && *r.OfficerID == userID
}

type CreateChatRoomParams struct {
	IncidentID      *string
	UserID          string
	OfficerID       *string
	PoliceStationID *string
}

type Message struct {
	ID          string      `db:"id" json:"id"`
	ChatRoomID  string      `db:"chat_room_id" json:"chatRoomId"`
	SenderID    string      `db:"sender_id" json:"senderId"`
	Content     *string     `db:"content" json:"content,omitempty"`
	MessageType MessageType `db:"message_type" json:"messageType"`
	FileURL     *string     `db:"file_url" json:"fileUrl,omitempty"`
	LocationLat *float64    `db:"location_lat" json:"locationLat,omitempty"`
	LocationLng *float64    `db:"location_lng" json:"locationLng,omitempty"`
	IsAlert     bool        `db:"is_alert" json:"isAlert"`
	IsRead      bool        `db:"is_read" json:"isRead"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

type CreateMessageParams struct {
	ChatRoomID  string
	SenderID    string
	Content     *string
	MessageType MessageType
	FileURL     *string
	LocationLat *float64
	LocationLng *float64
	IsAlert     bool
}
