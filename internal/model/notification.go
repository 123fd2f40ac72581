package model

import "time"

const (
	NotificationConnectionRequest  = "connection_request"
	NotificationConnectionAccepted = "connection_accepted"
	NotificationPostLike           = "post_like"
	NotificationPostComment        = "post_comment"
)

type Notification struct {
	ID                string    `db:"id"`
	UserID            string    `db:"user_id"` // recipient
	ActorID           string    `db:"actor_id"`
	Type              string    `db:"type"`
	Title             string    `db:"title"`
	Message           string    `db:"message"`
	Read              bool      `db:"read"`
	RelatedEntityType *string   `db:"related_entity_type"`
	RelatedEntityID   *string   `db:"related_entity_id"`
	CreatedAt         time.Time `db:"created_at"`
}

type NotificationView struct {
	ID                string    `json:"id"`
	ActorID           string    `json:"actor_id"`
	Type              string    `json:"type"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Read              bool      `json:"read"`
	RelatedEntityType *string   `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string   `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (n *Notification) View() *NotificationView {
	return &NotificationView{
		ID:                n.ID,
		ActorID:           n.ActorID,
		Type:              n.Type,
		Title:             n.Title,
		Message:           n.Message,
		Read:              n.Read,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		CreatedAt:         n.CreatedAt,
	}
}
