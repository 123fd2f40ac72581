package model

import (
	"encoding/json"
	"time"
)

const (
	ActivityGoalCreated        = "goal_created"
	ActivityGoalUpdated        = "goal_updated"
	ActivityGoalDeleted        = "goal_deleted"
	ActivityGoalProgress       = "goal_progress"
	ActivityGoalCompleted      = "goal_completed"
	ActivityProfileUpdated     = "profile_updated"
	ActivityConnectionAccepted = "connection_accepted"
)

// Activity is an append-only record of a notable user action. Rows are never
// mutated after creation.
type Activity struct {
	ID                string    `db:"id"`
	UserID            string    `db:"user_id"`
	Type              string    `db:"type"`
	Data              string    `db:"data"` // opaque JSON payload
	RelatedEntityType *string   `db:"related_entity_type"`
	RelatedEntityID   *string   `db:"related_entity_id"`
	CreatedAt         time.Time `db:"created_at"`
}

type ActivityView struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	Type              string          `json:"type"`
	Data              json.RawMessage `json:"data"`
	RelatedEntityType *string         `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string         `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (a *Activity) View() *ActivityView {
	data := json.RawMessage(a.Data)
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	return &ActivityView{
		ID:                a.ID,
		UserID:            a.UserID,
		Type:              a.Type,
		Data:              data,
		RelatedEntityType: a.RelatedEntityType,
		RelatedEntityID:   a.RelatedEntityID,
		CreatedAt:         a.CreatedAt,
	}
}
