package repository

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrConnectionExists     = errors.New("connection already exists")
	ErrPostNotFound         = errors.New("post not found")
	ErrAlreadyLiked         = errors.New("post already liked")
	ErrLikeNotFound         = errors.New("like not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// isUniqueViolation detects a unique constraint error from either SQLite or
// PostgreSQL. The storage-layer constraint is the atomicity guarantee for
// pair and like uniqueness, so this check is what turns a lost race into a
// clean conflict.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
