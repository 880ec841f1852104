package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/libertysafety/liberty-server-go/internal/model"
)

type MessageRepository interface {
	FindByChatRoomID(ctx context.Context, chatRoomID string, limit, offset int) ([]model.Message, error)
	CountByChatRoomID(ctx context.Context, chatRoomID string) (int, error)
	CountUnread(ctx context.Context, chatRoomID, excludeSenderID string) (int, error)
	Create(ctx context.Context, params model.CreateMessageParams) (*model.Message, error)
	MarkRead(ctx context.Context, chatRoomID, excludeSenderID string) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) MessageRepository
}

type messageRepo struct {
	db sqlxDB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) WithTx(tx *sqlx.Tx) MessageRepository {
	return &messageRepo{db: tx}
}

func (r *messageRepo) FindByChatRoomID(ctx context.Context, chatRoomID string, limit, offset int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.SelectContext(ctx, &msgs, `
		SELECT * FROM messages
		WHERE chat_room_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, chatRoomID, limit, offset)
	return msgs, err
}

func (r *messageRepo) CountByChatRoomID(ctx context.Context, chatRoomID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM messages WHERE chat_room_id = $1
	`, chatRoomID)
	return count, err
}

func (r *messageRepo) CountUnread(ctx context.Context, chatRoomID, excludeSenderID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM messages
		WHERE chat_room_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`, chatRoomID, excludeSenderID)
	return count, err
}

func (r *messageRepo) Create(ctx context.Context, params model.CreateMessageParams) (*model.Message, error) {
	var msg model.Message
	err := r.db.GetContext(ctx, &msg, `
		INSERT INTO messages
			(chat_room_id, sender_id, content, message_type, file_url,
			 location_lat, location_lng, is_alert)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	`, params.ChatRoomID, params.SenderID, params.Content, params.MessageType,
		params.FileURL, params.LocationLat, params.LocationLng, params.IsAlert)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, chatRoomID, excludeSenderID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE, updated_at = NOW()
		WHERE chat_room_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`, chatRoomID, excludeSenderID)
	return err
}
