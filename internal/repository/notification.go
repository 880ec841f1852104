package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/libertysafety/liberty-server-go/internal/model"
)

type NotificationRepository interface {
	FindByUserID(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, params model.CreateNotificationParams) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationRepo struct {
	db sqlxDB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) FindByUserID(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	var notifs []model.Notification
	err := r.db.SelectContext(ctx, &notifs, `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	return notifs, err
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
	`, userID)
	return count, err
}

func (r *notificationRepo) Create(ctx context.Context, params model.CreateNotificationParams) (*model.Notification, error) {
	var notif model.Notification
	err := r.db.GetContext(ctx, &notif, `
		INSERT INTO notifications (user_id, title, message, type, action_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.UserID, params.Title, params.Message, params.Type, params.ActionURL)
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE
	`, userID)
	return err
}

func (r *notificationRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE is_read = TRUE AND created_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
