package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/zhihungchen/FittedIn/internal/model"
)

// ActivityRepository is append-only: records are inserted and listed, never
// updated or deleted individually.
type ActivityRepository interface {
	Create(activity *model.Activity) error
	ForUser(userID string, limit, offset int) ([]*model.Activity, error)
	CountByType(userID, activityType string) (int, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	query := `INSERT INTO activities (id, user_id, type, data, related_entity_type, related_entity_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		activity.ID,
		activity.UserID,
		activity.Type,
		activity.Data,
		activity.RelatedEntityType,
		activity.RelatedEntityID,
		activity.CreatedAt,
	)

	return err
}

func (r *activityRepository) ForUser(userID string, limit, offset int) ([]*model.Activity, error) {
	query := `SELECT * FROM activities WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	var activities []*model.Activity
	err := r.db.Select(&activities, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) CountByType(userID, activityType string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM activities WHERE user_id = $1 AND type = $2`
	err := r.db.QueryRow(query, userID, activityType).Scan(&count)
	return count, err
}
