package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zhihungchen/FittedIn/internal/model"
)

type ConnectionRepository interface {
	Create(conn *model.Connection) error
	ByID(id string) (*model.Connection, error)
	ByPair(userA, userB string) (*model.Connection, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	AcceptedUserIDs(userID string) ([]string, error)
	AcceptedFor(userID string) ([]*model.Connection, error)
	PendingFor(receiverID string) ([]*model.Connection, error)
}

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// Create inserts the row. The UNIQUE constraint on pair_key makes the
// check-then-write race safe: the loser of a concurrent duplicate request
// gets ErrConnectionExists instead of a second row.
func (r *connectionRepository) Create(conn *model.Connection) error {
	query := `INSERT INTO connections (id, requester_id, receiver_id, pair_key, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		conn.ID,
		conn.RequesterID,
		conn.ReceiverID,
		conn.PairKey,
		conn.Status,
		conn.CreatedAt,
		conn.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConnectionExists
		}
		return err
	}

	return nil
}

func (r *connectionRepository) ByID(id string) (*model.Connection, error) {
	conn := &model.Connection{}
	query := `SELECT * FROM connections WHERE id = $1`

	err := r.db.Get(conn, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrConnectionNotFound
	}

	return conn, err
}

func (r *connectionRepository) ByPair(userA, userB string) (*model.Connection, error) {
	conn := &model.Connection{}
	query := `SELECT * FROM connections WHERE pair_key = $1`

	err := r.db.Get(conn, query, model.ConnectionPairKey(userA, userB))
	if err == sql.ErrNoRows {
		return nil, ErrConnectionNotFound
	}

	return conn, err
}

func (r *connectionRepository) UpdateStatus(id, status string) error {
	query := `UPDATE connections SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, status, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrConnectionNotFound
	}

	return nil
}

func (r *connectionRepository) Delete(id string) error {
	query := `DELETE FROM connections WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrConnectionNotFound
	}

	return nil
}

// AcceptedUserIDs returns the ids of all users with an accepted connection
// to userID, in either direction. This is the visibility set the feed joins
// against.
func (r *connectionRepository) AcceptedUserIDs(userID string) ([]string, error) {
	query := `SELECT CASE WHEN requester_id = $1 THEN receiver_id ELSE requester_id END
	          FROM connections
	          WHERE (requester_id = $1 OR receiver_id = $1) AND status = $2`

	var ids []string
	err := r.db.Select(&ids, query, userID, model.ConnectionStatusAccepted)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *connectionRepository) AcceptedFor(userID string) ([]*model.Connection, error) {
	query := `SELECT * FROM connections
	          WHERE (requester_id = $1 OR receiver_id = $1) AND status = $2
	          ORDER BY updated_at DESC`

	var conns []*model.Connection
	err := r.db.Select(&conns, query, userID, model.ConnectionStatusAccepted)
	if err != nil {
		return nil, err
	}

	return conns, nil
}

func (r *connectionRepository) PendingFor(receiverID string) ([]*model.Connection, error) {
	query := `SELECT * FROM connections WHERE receiver_id = $1 AND status = $2 ORDER BY created_at DESC`

	var conns []*model.Connection
	err := r.db.Select(&conns, query, receiverID, model.ConnectionStatusPending)
	if err != nil {
		return nil, err
	}

	return conns, nil
}
