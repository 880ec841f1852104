package service

import (
	"context"

	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

const notificationPageSize = 50

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the caller's most recent notifications along with the
// unread count.
func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, int, error) {
	notifications, err := s.notificationRepo.FindByUserID(ctx, userID, notificationPageSize)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return notifications, unread, nil
}

// MarkAllRead flips every unread notification the caller owns.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
