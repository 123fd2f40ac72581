package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash *string   `db:"password_hash"` // Never serialized; see UserView
	DisplayName  string    `db:"display_name"`
	AvatarURL    *string   `db:"avatar_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserView is the public projection of a User. The internal entity is never
// serialized directly so the credential hash cannot leak.
type UserView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// View returns the owner-facing projection, including the email address.
func (u *User) View() *UserView {
	return &UserView{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
	}
}

// PublicView returns the projection shown to other users.
func (u *User) PublicView() *UserView {
	v := u.View()
	v.Email = ""
	return v
}

// Author is the embedded author summary attached to posts and comments.
type Author struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}
