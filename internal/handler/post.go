package handler

import (
	"net/http"

	"github.com/zhihungchen/FittedIn/internal/ctxkeys"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/service"
)

func authorOf(user *model.User) *model.Author {
	return &model.Author{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}

type PostHandler struct {
	postService *service.PostService
	feedService *service.FeedService
}

func NewPostHandler(postService *service.PostService, feedService *service.FeedService) *PostHandler {
	return &PostHandler{
		postService: postService,
		feedService: feedService,
	}
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	posts, err := h.feedService.Feed(user.ID, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"posts": posts,
	})
}

func (h *PostHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	posts, err := h.feedService.UserPosts(r.PathValue("userId"), user.ID, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"posts": posts,
	})
}

type createPostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createPostRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	post, err := h.postService.Create(user.ID, req.Content, req.ImageURL)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, map[string]any{
		"post": post.View(authorOf(user)),
	})
}

type updatePostRequest struct {
	Content string `json:"content"`
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updatePostRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	post, err := h.postService.Update(r.PathValue("id"), user.ID, req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"post": post.View(authorOf(user)),
	})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.postService.Delete(r.PathValue("id"), user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message": "post deleted",
	})
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.postService.Like(r.PathValue("id"), user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, map[string]any{
		"message": "post liked",
	})
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.postService.Unlike(r.PathValue("id"), user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message": "post unliked",
	})
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createCommentRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	comment, err := h.postService.Comment(r.PathValue("id"), user.ID, req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, map[string]any{
		"comment": comment,
	})
}

func (h *PostHandler) Comments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.postService.Comments(r.PathValue("id"), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"comments": comments,
	})
}

func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.postService.DeleteComment(r.PathValue("id"), user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message": "comment deleted",
	})
}
