package model

import "time"

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

const (
	GoalPriorityLow    = "low"
	GoalPriorityMedium = "medium"
	GoalPriorityHigh   = "high"
)

// GoalCategories is the set of accepted goal categories.
var GoalCategories = map[string]bool{
	"weight_loss":   true,
	"weight_gain":   true,
	"muscle_gain":   true,
	"cardio":        true,
	"flexibility":   true,
	"nutrition":     true,
	"mental_health": true,
	"sleep":         true,
	"hydration":     true,
	"other":         true,
}

type Goal struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	Title        string     `db:"title"`
	Description  *string    `db:"description"`
	Category     string     `db:"category"`
	TargetValue  float64    `db:"target_value"`
	CurrentValue float64    `db:"current_value"`
	Unit         string     `db:"unit"`
	Status       string     `db:"status"`
	Priority     string     `db:"priority"`
	Notes        *string    `db:"notes"`
	TargetDate   *time.Time `db:"target_date"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type GoalView struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Category     string     `json:"category"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Notes        *string    `json:"notes,omitempty"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (g *Goal) View() *GoalView {
	return &GoalView{
		ID:           g.ID,
		UserID:       g.UserID,
		Title:        g.Title,
		Description:  g.Description,
		Category:     g.Category,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Unit:         g.Unit,
		Status:       g.Status,
		Priority:     g.Priority,
		Notes:        g.Notes,
		TargetDate:   g.TargetDate,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
