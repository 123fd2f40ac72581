package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
)

type ActivityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Log appends one activity record. data is marshalled to JSON; a nil data
// logs an empty payload.
func (s *ActivityService) Log(userID, activityType string, data any, relatedType, relatedID string) error {
	payload := "{}"
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode activity data: %w", err)
		}
		payload = string(raw)
	}

	activity := &model.Activity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      activityType,
		Data:      payload,
		CreatedAt: time.Now(),
	}
	if relatedType != "" {
		activity.RelatedEntityType = &relatedType
	}
	if relatedID != "" {
		activity.RelatedEntityID = &relatedID
	}

	err := s.repo.Create(activity)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	return nil
}

func (s *ActivityService) History(userID string, limit, offset int) ([]*model.Activity, error) {
	limit = clampPageSize(limit)
	if offset < 0 {
		offset = 0
	}
	return s.repo.ForUser(userID, limit, offset)
}

func (s *ActivityService) CountByType(userID, activityType string) (int, error) {
	return s.repo.CountByType(userID, activityType)
}
