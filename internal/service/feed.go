package service

import (
	"errors"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
)

// commentPreviewLimit bounds the number of comments attached to each post in
// a feed page. The full list stays behind the comments endpoint.
const commentPreviewLimit = 5

// FeedService assembles the posts visible to a viewer: their own posts plus
// posts by accepted connections, newest first, annotated with engagement
// counts and the viewer's like state.
type FeedService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
	connectionRepo repository.ConnectionRepository
	userRepo       repository.UserRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	engagementRepo repository.EngagementRepository,
	connectionRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
	}
}

// Feed returns one page of the viewer's feed. An unknown viewer is an error
// rather than an empty feed, so a bad token cannot masquerade as a user with
// no posts.
func (s *FeedService) Feed(viewerID string, limit, offset int) ([]*model.PostView, error) {
	if offset < 0 {
		return nil, apperr.Validation("offset must be a non-negative integer")
	}
	if limit < 0 {
		return nil, apperr.Validation("limit must be a non-negative integer")
	}
	limit = clampPageSize(limit)

	_, err := s.userRepo.ByID(viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	connected, err := s.connectionRepo.AcceptedUserIDs(viewerID)
	if err != nil {
		return nil, err
	}
	authorIDs := append([]string{viewerID}, connected...)

	return s.page(authorIDs, viewerID, limit, offset)
}

// UserPosts returns one page of a single author's posts, annotated for the
// viewer the same way the feed is.
func (s *FeedService) UserPosts(authorID, viewerID string, limit, offset int) ([]*model.PostView, error) {
	limit = clampPageSize(limit)
	if offset < 0 {
		offset = 0
	}

	_, err := s.userRepo.ByID(authorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	return s.page([]string{authorID}, viewerID, limit, offset)
}

func (s *FeedService) page(authorIDs []string, viewerID string, limit, offset int) ([]*model.PostView, error) {
	rows, err := s.postRepo.Page(authorIDs, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		postIDs = append(postIDs, row.ID)
	}

	previews, err := s.commentPreviews(postIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*model.PostView, 0, len(rows))
	for _, row := range rows {
		view := &model.PostView{
			ID:        row.ID,
			UserID:    row.UserID,
			Content:   row.Content,
			ImageURL:  row.ImageURL,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			User: &model.Author{
				ID:          row.UserID,
				DisplayName: row.AuthorName,
				AvatarURL:   row.AuthorAvatar,
			},
			LikeCount:    row.LikeCount,
			CommentCount: row.CommentCount,
			IsLiked:      row.Liked > 0,
			Comments:     previews[row.ID],
		}
		if view.Comments == nil {
			view.Comments = []*model.CommentView{}
		}
		views = append(views, view)
	}

	return views, nil
}

// commentPreviews groups the page's comments by post. The repository already
// bounds each post to the preview size, newest first.
func (s *FeedService) commentPreviews(postIDs []string) (map[string][]*model.CommentView, error) {
	previews := make(map[string][]*model.CommentView, len(postIDs))
	if len(postIDs) == 0 {
		return previews, nil
	}

	rows, err := s.engagementRepo.CommentsForPosts(postIDs, commentPreviewLimit)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		previews[row.PostID] = append(previews[row.PostID], commentRowView(row))
	}

	return previews, nil
}
