package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	PostContentMax    = 5000
	CommentContentMax = 1000
	GoalTitleMax      = 200
	GoalNotesMax      = 500
	DescriptionMax    = 1000
)

// ValidatePostContent validates post body text (after trimming)
func ValidatePostContent(content string) error {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return errors.New("post content cannot be empty")
	}

	if utf8.RuneCountInString(trimmed) > PostContentMax {
		return fmt.Errorf("post content cannot exceed %d characters", PostContentMax)
	}

	return nil
}

// ValidateCommentContent validates comment body text (after trimming)
func ValidateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return errors.New("comment content cannot be empty")
	}

	if utf8.RuneCountInString(trimmed) > CommentContentMax {
		return fmt.Errorf("comment content cannot exceed %d characters", CommentContentMax)
	}

	return nil
}

// ValidateImageRef accepts an http(s) URL or an inline data: image reference
func ValidateImageRef(ref string) error {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return nil
	}

	if strings.HasPrefix(ref, "data:image/") {
		return nil
	}

	return errors.New("image must be an http(s) URL or an inline image")
}
