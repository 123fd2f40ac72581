package model

import "time"

type Post struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	ImageURL  *string   `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type PostLike struct {
	ID        string    `db:"id"`
	PostID    string    `db:"post_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type PostComment struct {
	ID        string    `db:"id"`
	PostID    string    `db:"post_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// PostView is a post as seen by a specific viewer: engagement counts, the
// viewer's own like state and a bounded preview of recent comments.
type PostView struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Content      string         `json:"content"`
	ImageURL     *string        `json:"image_url,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	User         *Author        `json:"user"`
	LikeCount    int            `json:"like_count"`
	CommentCount int            `json:"comment_count"`
	IsLiked      bool           `json:"is_liked"`
	Comments     []*CommentView `json:"comments"`
}

// View projects a post without engagement data, as returned from writes.
// Reads go through the feed queries, which fill counts and like state.
func (p *Post) View(author *Author) *PostView {
	return &PostView{
		ID:        p.ID,
		UserID:    p.UserID,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		User:      author,
		Comments:  []*CommentView{},
	}
}

type CommentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      *Author   `json:"user"`
}
