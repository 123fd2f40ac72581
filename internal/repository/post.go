package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zhihungchen/FittedIn/internal/model"
)

// PostRow is a post joined with its author and per-viewer engagement state.
type PostRow struct {
	model.Post
	AuthorName   string  `db:"author_name"`
	AuthorAvatar *string `db:"author_avatar"`
	LikeCount    int     `db:"like_count"`
	CommentCount int     `db:"comment_count"`
	Liked        int     `db:"liked"`
}

type PostRepository interface {
	Create(post *model.Post) error
	ByID(id string) (*model.Post, error)
	Update(post *model.Post) error
	Delete(userID, postID string) error
	Page(authorIDs []string, viewerID string, limit, offset int) ([]*PostRow, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (id, user_id, content, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		post.ID,
		post.UserID,
		post.Content,
		post.ImageURL,
		post.CreatedAt,
		post.UpdatedAt,
	)

	return err
}

func (r *postRepository) ByID(id string) (*model.Post, error) {
	post := &model.Post{}
	query := `SELECT * FROM posts WHERE id = $1`

	err := r.db.Get(post, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

func (r *postRepository) Update(post *model.Post) error {
	query := `UPDATE posts SET content = $1, image_url = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query, post.Content, post.ImageURL, time.Now(), post.ID, post.UserID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete removes the post; likes and comments go with it via ON DELETE
// CASCADE.
func (r *postRepository) Delete(userID, postID string) error {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, postID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Page returns one page of posts authored by authorIDs, newest first with id
// as tiebreaker so pagination is stable, annotated with engagement counts
// and whether viewerID liked each post.
func (r *postRepository) Page(authorIDs []string, viewerID string, limit, offset int) ([]*PostRow, error) {
	if len(authorIDs) == 0 {
		return []*PostRow{}, nil
	}

	query := `SELECT p.*,
	            u.display_name AS author_name,
	            u.avatar_url AS author_avatar,
	            (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
	            (SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id) AS comment_count,
	            (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id AND l.user_id = ?) AS liked
	          FROM posts p
	          JOIN users u ON u.id = p.user_id
	          WHERE p.user_id IN (?)
	          ORDER BY p.created_at DESC, p.id DESC
	          LIMIT ? OFFSET ?`

	query, args, err := sqlx.In(query, viewerID, authorIDs, limit, offset)
	if err != nil {
		return nil, err
	}

	var rows []*PostRow
	err = r.db.Select(&rows, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
