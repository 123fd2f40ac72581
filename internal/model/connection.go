package model

import (
	"strings"
	"time"
)

const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
	ConnectionStatusRejected = "rejected"
	ConnectionStatusBlocked  = "blocked"
)

// Connection is a relationship between two users. A single row exists per
// unordered pair, keyed by PairKey, regardless of who requested it.
type Connection struct {
	ID          string    `db:"id"`
	RequesterID string    `db:"requester_id"`
	ReceiverID  string    `db:"receiver_id"`
	PairKey     string    `db:"pair_key"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ConnectionPairKey returns the canonical key for an unordered user pair.
// The UNIQUE constraint on this column is what makes concurrent duplicate
// requests impossible.
func ConnectionPairKey(userA, userB string) string {
	if strings.Compare(userA, userB) > 0 {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

// CounterpartID returns the other participant's user id.
func (c *Connection) CounterpartID(userID string) string {
	if c.RequesterID == userID {
		return c.ReceiverID
	}
	return c.RequesterID
}

// Involves reports whether userID is a participant of the connection.
func (c *Connection) Involves(userID string) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}

type ConnectionView struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	ReceiverID  string    `json:"receiver_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// User is the counterpart from the requesting user's perspective,
	// populated for listing endpoints.
	User *UserView `json:"user,omitempty"`
}

func (c *Connection) View() *ConnectionView {
	return &ConnectionView{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		ReceiverID:  c.ReceiverID,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
