package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/validation"
)

type PostService struct {
	repo                repository.PostRepository
	engagementRepo      repository.EngagementRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
}

func NewPostService(
	repo repository.PostRepository,
	engagementRepo repository.EngagementRepository,
	userRepo repository.UserRepository,
	notificationService *NotificationService,
) *PostService {
	return &PostService{
		repo:                repo,
		engagementRepo:      engagementRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *PostService) Create(userID, content, imageRef string) (*model.Post, error) {
	err := validation.ValidatePostContent(content)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	post := &model.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if imageRef != "" {
		err = validation.ValidateImageRef(imageRef)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		post.ImageURL = &imageRef
	}

	err = s.repo.Create(post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (s *PostService) Update(postID, userID, content string) (*model.Post, error) {
	err := validation.ValidatePostContent(content)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	post, err := s.ownedPost(postID, userID)
	if err != nil {
		return nil, err
	}

	post.Content = strings.TrimSpace(content)
	post.UpdatedAt = time.Now()

	err = s.repo.Update(post)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

func (s *PostService) Delete(postID, userID string) error {
	_, err := s.ownedPost(postID, userID)
	if err != nil {
		return err
	}

	err = s.repo.Delete(userID, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// Like records that userID liked postID. The storage-layer uniqueness on
// (post, user) turns a double like into a conflict. The author gets a
// best-effort notification unless they liked their own post.
func (s *PostService) Like(postID, userID string) error {
	post, err := s.postByID(postID)
	if err != nil {
		return err
	}

	like := &model.PostLike{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	err = s.engagementRepo.CreateLike(like)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return apperr.Conflict("post already liked")
		}
		return fmt.Errorf("failed to like post: %w", err)
	}

	if post.UserID != userID {
		s.notifyEngagement(post, userID, model.NotificationPostLike, "liked your post")
	}

	return nil
}

func (s *PostService) Unlike(postID, userID string) error {
	err := s.engagementRepo.DeleteLike(postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrLikeNotFound) {
			return apperr.InvalidOperation("post not liked")
		}
		return fmt.Errorf("failed to unlike post: %w", err)
	}

	return nil
}

func (s *PostService) Comment(postID, userID, content string) (*model.CommentView, error) {
	err := validation.ValidateCommentContent(content)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	post, err := s.postByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &model.PostComment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}

	err = s.engagementRepo.CreateComment(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if post.UserID != userID {
		s.notifyEngagement(post, userID, model.NotificationPostComment, "commented on your post")
	}

	view := &model.CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	author, err := s.userRepo.ByID(userID)
	if err == nil {
		view.User = &model.Author{ID: author.ID, DisplayName: author.DisplayName, AvatarURL: author.AvatarURL}
	}

	return view, nil
}

func (s *PostService) Comments(postID string, limit, offset int) ([]*model.CommentView, error) {
	_, err := s.postByID(postID)
	if err != nil {
		return nil, err
	}

	limit = clampPageSize(limit)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.engagementRepo.Comments(postID, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*model.CommentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, commentRowView(row))
	}
	return views, nil
}

func (s *PostService) DeleteComment(commentID, userID string) error {
	err := s.engagementRepo.DeleteComment(userID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperr.NotFound("comment not found")
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (s *PostService) ownedPost(postID, userID string) (*model.Post, error) {
	post, err := s.postByID(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		// Ownership failures read the same as missing posts.
		return nil, apperr.NotFound("post not found")
	}
	return post, nil
}

func (s *PostService) postByID(postID string) (*model.Post, error) {
	post, err := s.repo.ByID(postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) notifyEngagement(post *model.Post, actorID, notificationType, verb string) {
	actor, err := s.userRepo.ByID(actorID)
	if err == nil {
		err = s.notificationService.Notify(
			post.UserID,
			actorID,
			notificationType,
			"New activity on your post",
			fmt.Sprintf("%s %s", actor.DisplayName, verb),
			"post",
			post.ID,
		)
	}
	if err != nil {
		slog.Error("failed to send engagement notification", "error", err, "post_id", post.ID, "type", notificationType)
	}
}

func commentRowView(row *repository.CommentRow) *model.CommentView {
	return &model.CommentView{
		ID:        row.ID,
		PostID:    row.PostID,
		UserID:    row.UserID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		User: &model.Author{
			ID:          row.UserID,
			DisplayName: row.AuthorName,
			AvatarURL:   row.AuthorAvatar,
		},
	}
}
