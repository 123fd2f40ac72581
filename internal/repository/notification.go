package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/zhihungchen/FittedIn/internal/model"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	ForUser(userID string, unreadOnly bool, limit, offset int) ([]*model.Notification, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	UnreadCount(userID string) (int, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	query := `INSERT INTO notifications (id, user_id, actor_id, type, title, message, read, related_entity_type, related_entity_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		notification.ID,
		notification.UserID,
		notification.ActorID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.Read,
		notification.RelatedEntityType,
		notification.RelatedEntityID,
		notification.CreatedAt,
	)

	return err
}

func (r *notificationRepository) ForUser(userID string, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	query := `SELECT * FROM notifications WHERE user_id = ?`
	args := []any{userID}

	if unreadOnly {
		query += ` AND read = ?`
		args = append(args, false)
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var notifications []*model.Notification
	err := r.db.Select(&notifications, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(userID, id string) error {
	query := `UPDATE notifications SET read = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, true, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(userID string) error {
	query := `UPDATE notifications SET read = $1 WHERE user_id = $2 AND read = $3`

	_, err := r.db.Exec(query, true, userID, false)
	return err
}

func (r *notificationRepository) UnreadCount(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = $2`
	err := r.db.QueryRow(query, userID, false).Scan(&count)
	return count, err
}
