package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/validation"
)

// GoalInput carries fields for creating or updating a goal. On update, nil
// pointers leave the current value untouched.
type GoalInput struct {
	Title        *string
	Description  *string
	Category     *string
	TargetValue  *float64
	CurrentValue *float64
	Unit         *string
	Status       *string
	Priority     *string
	TargetDate   *time.Time
}

type GoalService struct {
	repo            repository.GoalRepository
	activityService *ActivityService
}

func NewGoalService(repo repository.GoalRepository, activityService *ActivityService) *GoalService {
	return &GoalService{
		repo:            repo,
		activityService: activityService,
	}
}

func (s *GoalService) Create(userID string, input GoalInput) (*model.Goal, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if input.Category == nil {
		return nil, apperr.Validation("category is required")
	}
	if input.TargetValue == nil || *input.TargetValue <= 0 {
		return nil, apperr.Validation("target value must be a positive number")
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		TargetValue: *input.TargetValue,
		Unit:        "units",
		Status:      model.GoalStatusActive,
		Priority:    model.GoalPriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := applyGoalInput(goal, input)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.logGoalActivity(userID, model.ActivityGoalCreated, goal, map[string]any{
		"title":    goal.Title,
		"category": goal.Category,
	})

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			// Not revealing whether the goal exists under another owner.
			return nil, apperr.NotFound("goal not found")
		}
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Goals(userID string, filter repository.GoalFilter) ([]*model.Goal, error) {
	filter.Limit = clampPageSize(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.Goals(userID, filter)
}

func (s *GoalService) Update(userID, goalID string, input GoalInput) (*model.Goal, error) {
	goal, err := s.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	err = applyGoalInput(goal, input)
	if err != nil {
		return nil, err
	}
	if input.CurrentValue != nil {
		if *input.CurrentValue < 0 {
			return nil, apperr.Validation("current value must be a positive number")
		}
		goal.CurrentValue = *input.CurrentValue
	}
	goal.UpdatedAt = time.Now()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.logGoalActivity(userID, model.ActivityGoalUpdated, goal, map[string]any{
		"title": goal.Title,
	})

	return goal, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	goal, err := s.ByID(userID, goalID)
	if err != nil {
		return err
	}

	err = s.repo.Delete(userID, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.logGoalActivity(userID, model.ActivityGoalDeleted, goal, map[string]any{
		"title": goal.Title,
	})

	return nil
}

// ApplyProgress sets the goal's current value. A goal still active whose new
// value reaches the target completes in the same update. Exactly one
// activity record is written per successful call: goal_completed on the
// completing call, goal_progress otherwise. Values above the target are
// accepted as-is; manual updates do not clamp.
func (s *GoalService) ApplyProgress(goalID, userID string, newValue float64, notes string) (*model.Goal, error) {
	if newValue < 0 {
		return nil, apperr.Validation("current value must be a positive number")
	}
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > validation.GoalNotesMax {
		return nil, apperr.Validation("notes cannot exceed 500 characters")
	}

	goal, err := s.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	previousValue := goal.CurrentValue
	goal.CurrentValue = newValue
	if notes != "" {
		goal.Notes = &notes
	}

	completed := goal.Status == model.GoalStatusActive && newValue >= goal.TargetValue
	if completed {
		goal.Status = model.GoalStatusCompleted
	}
	goal.UpdatedAt = time.Now()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	activityType := model.ActivityGoalProgress
	if completed {
		activityType = model.ActivityGoalCompleted
	}
	err = s.activityService.Log(userID, activityType, map[string]any{
		"title":          goal.Title,
		"previous_value": previousValue,
		"new_value":      newValue,
		"target_value":   goal.TargetValue,
		"unit":           goal.Unit,
	}, "goal", goal.ID)
	if err != nil {
		// The activity record is part of the progress contract, so this
		// failure surfaces unlike the best-effort logging elsewhere.
		return nil, fmt.Errorf("failed to log goal progress: %w", err)
	}

	return goal, nil
}

func applyGoalInput(goal *model.Goal, input GoalInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || utf8.RuneCountInString(title) > validation.GoalTitleMax {
			return apperr.Validation("title must be between 1 and 200 characters")
		}
		goal.Title = title
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if utf8.RuneCountInString(desc) > validation.DescriptionMax {
			return apperr.Validation("description must be less than 1000 characters")
		}
		if desc == "" {
			goal.Description = nil
		} else {
			goal.Description = &desc
		}
	}
	if input.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*input.Category))
		if !model.GoalCategories[category] {
			return apperr.Validation("invalid category")
		}
		goal.Category = category
	}
	if input.TargetValue != nil {
		if *input.TargetValue <= 0 {
			return apperr.Validation("target value must be a positive number")
		}
		goal.TargetValue = *input.TargetValue
	}
	if input.Unit != nil {
		unit := strings.TrimSpace(*input.Unit)
		if unit != "" {
			if utf8.RuneCountInString(unit) > 50 {
				return apperr.Validation("unit must be between 1 and 50 characters")
			}
			goal.Unit = unit
		}
	}
	if input.Status != nil {
		switch *input.Status {
		case model.GoalStatusActive, model.GoalStatusCompleted, model.GoalStatusPaused, model.GoalStatusCancelled:
			goal.Status = *input.Status
		default:
			return apperr.Validation("status must be active, completed, paused, or cancelled")
		}
	}
	if input.Priority != nil {
		switch *input.Priority {
		case model.GoalPriorityLow, model.GoalPriorityMedium, model.GoalPriorityHigh:
			goal.Priority = *input.Priority
		default:
			return apperr.Validation("priority must be low, medium, or high")
		}
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	return nil
}

func (s *GoalService) logGoalActivity(userID, activityType string, goal *model.Goal, data map[string]any) {
	err := s.activityService.Log(userID, activityType, data, "goal", goal.ID)
	if err != nil {
		slog.Error("failed to log goal activity", "error", err, "type", activityType, "goal_id", goal.ID)
	}
}
