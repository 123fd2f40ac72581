package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
)

type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify stores an alert for recipientID triggered by actorID. Callers treat
// failures as best-effort: a lost notification never fails the operation
// that triggered it.
func (s *NotificationService) Notify(recipientID, actorID, notificationType, title, message, relatedType, relatedID string) error {
	notification := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    recipientID,
		ActorID:   actorID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if relatedType != "" {
		notification.RelatedEntityType = &relatedType
	}
	if relatedID != "" {
		notification.RelatedEntityID = &relatedID
	}

	err := s.repo.Create(notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (s *NotificationService) List(userID string, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	limit = clampPageSize(limit)
	if offset < 0 {
		offset = 0
	}
	return s.repo.ForUser(userID, unreadOnly, limit, offset)
}

func (s *NotificationService) MarkRead(userID, id string) error {
	err := s.repo.MarkRead(userID, id)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return apperr.NotFound("notification not found")
	}
	return err
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.repo.MarkAllRead(userID)
}

func (s *NotificationService) UnreadCount(userID string) (int, error) {
	return s.repo.UnreadCount(userID)
}
