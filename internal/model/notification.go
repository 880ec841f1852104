package model

import (
	"time"
)

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	IsRead    bool      `db:"is_read" json:"isRead"`
	ActionURL *string   `db:"action_url" json:"actionUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateNotificationParams struct {
	UserID    string
	Title     string
	Message   string
	Type      string
	ActionURL *string
}
