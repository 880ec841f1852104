package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/libertysafety/liberty-server-go/internal/model"
)

type ChatRoomRepository interface {
	FindByID(ctx context.Context, id string) (*model.ChatRoom, error)
	FindActiveByUserAndStation(ctx context.Context, userID, stationID string) (*model.ChatRoom, error)
	FindByMemberID(ctx context.Context, memberID string) ([]model.ChatRoom, error)
	Create(ctx context.Context, params model.CreateChatRoomParams) (*model.ChatRoom, error)
	Touch(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
	DeactivateStale(ctx context.Context, resolvedBefore time.Time) (int64, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) ChatRoomRepository
}

type chatRoomRepo struct {
	db sqlxDB
}

func NewChatRoomRepository(db *sqlx.DB) ChatRoomRepository {
	return &chatRoomRepo{db: db}
}

func (r *chatRoomRepo) WithTx(tx *sqlx.Tx) ChatRoomRepository {
	return &chatRoomRepo{db: tx}
}

func (r *chatRoomRepo) FindByID(ctx context.Context, id string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.GetContext(ctx, &room, `
		SELECT * FROM chat_rooms WHERE id = $1
	`, id)
	return HandleNotFound(&room, err)
}

func (r *chatRoomRepo) FindActiveByUserAndStation(ctx context.Context, userID, stationID string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.GetContext(ctx, &room, `
		SELECT * FROM chat_rooms
		WHERE user_id = $1 AND police_station_id = $2 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, stationID)
	return HandleNotFound(&room, err)
}

func (r *chatRoomRepo) FindByMemberID(ctx context.Context, memberID string) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	err := r.db.SelectContext(ctx, &rooms, `
		SELECT * FROM chat_rooms
		WHERE (user_id = $1 OR officer_id = $1) AND is_active = TRUE
		ORDER BY updated_at DESC
	`, memberID)
	return rooms, err
}

func (r *chatRoomRepo) Create(ctx context.Context, params model.CreateChatRoomParams) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := r.db.GetContext(ctx, &room, `
		INSERT INTO chat_rooms (incident_id, user_id, officer_id, police_station_id)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.IncidentID, params.UserID, params.OfficerID, params.PoliceStationID)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRoomRepo) Touch(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE chat_rooms SET updated_at = $2 WHERE id = $1
	`, id, time.Now())
	return err
}

func (r *chatRoomRepo) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM chat_rooms WHERE is_active = TRUE
	`)
	return count, err
}

func (r *chatRoomRepo) DeactivateStale(ctx context.Context, resolvedBefore time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE chat_rooms SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE AND incident_id IN (
			SELECT id FROM incidents
			WHERE status IN ('resolved', 'closed') AND updated_at < $1
		)
	`, resolvedBefore)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
