package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/zhihungchen/FittedIn/internal/model"
)

// CommentRow is a comment joined with its author.
type CommentRow struct {
	model.PostComment
	AuthorName   string  `db:"author_name"`
	AuthorAvatar *string `db:"author_avatar"`
}

// EngagementRepository persists likes and comments attached to posts.
type EngagementRepository interface {
	CreateLike(like *model.PostLike) error
	DeleteLike(postID, userID string) error
	LikeCount(postID string) (int, error)
	CreateComment(comment *model.PostComment) error
	CommentByID(id string) (*model.PostComment, error)
	DeleteComment(userID, commentID string) error
	Comments(postID string, limit, offset int) ([]*CommentRow, error)
	CommentsForPosts(postIDs []string, perPost int) ([]*CommentRow, error)
}

type engagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// CreateLike relies on UNIQUE(post_id, user_id) so double likes lose the
// race at the storage layer, not in application code.
func (r *engagementRepository) CreateLike(like *model.PostLike) error {
	query := `INSERT INTO post_likes (id, post_id, user_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, like.ID, like.PostID, like.UserID, like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyLiked
		}
		return err
	}

	return nil
}

func (r *engagementRepository) DeleteLike(postID, userID string) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, postID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrLikeNotFound
	}

	return nil
}

func (r *engagementRepository) LikeCount(postID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`
	err := r.db.QueryRow(query, postID).Scan(&count)
	return count, err
}

func (r *engagementRepository) CreateComment(comment *model.PostComment) error {
	query := `INSERT INTO post_comments (id, post_id, user_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		comment.ID,
		comment.PostID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	)

	return err
}

func (r *engagementRepository) CommentByID(id string) (*model.PostComment, error) {
	comment := &model.PostComment{}
	query := `SELECT * FROM post_comments WHERE id = $1`

	err := r.db.Get(comment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}

	return comment, err
}

func (r *engagementRepository) DeleteComment(userID, commentID string) error {
	query := `DELETE FROM post_comments WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, commentID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// Comments lists a post's comments oldest first, the order they read in.
func (r *engagementRepository) Comments(postID string, limit, offset int) ([]*CommentRow, error) {
	query := `SELECT c.*, u.display_name AS author_name, u.avatar_url AS author_avatar
	          FROM post_comments c
	          JOIN users u ON u.id = c.user_id
	          WHERE c.post_id = $1
	          ORDER BY c.created_at ASC, c.id ASC
	          LIMIT $2 OFFSET $3`

	var rows []*CommentRow
	err := r.db.Select(&rows, query, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// CommentsForPosts returns the newest perPost comments for each post in the
// page, newest first. The bound runs in SQL so a heavily commented post does
// not drag its full thread through every feed query.
func (r *engagementRepository) CommentsForPosts(postIDs []string, perPost int) ([]*CommentRow, error) {
	if len(postIDs) == 0 {
		return []*CommentRow{}, nil
	}

	query := `SELECT id, post_id, user_id, content, created_at, author_name, author_avatar
	          FROM (
	              SELECT c.*, u.display_name AS author_name, u.avatar_url AS author_avatar,
	                     ROW_NUMBER() OVER (PARTITION BY c.post_id ORDER BY c.created_at DESC, c.id DESC) AS rn
	              FROM post_comments c
	              JOIN users u ON u.id = c.user_id
	              WHERE c.post_id IN (?)
	          ) recent
	          WHERE rn <= ?
	          ORDER BY created_at DESC, id DESC`

	query, args, err := sqlx.In(query, postIDs, perPost)
	if err != nil {
		return nil, err
	}

	var rows []*CommentRow
	err = r.db.Select(&rows, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
