package handler

import (
	"net/http"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/ctxkeys"
	"github.com/zhihungchen/FittedIn/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	respond(w, http.StatusOK, map[string]any{
		"user": user.View(),
	})
}

func (h *UserHandler) ByID(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	user, err := h.userService.ByID(userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"user": user.PublicView(),
	})
}

type updateUserRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateUserRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if req.DisplayName == nil && req.AvatarURL == nil {
		respondError(w, r, apperr.Validation("no fields to update"))
		return
	}

	updated := user
	if req.DisplayName != nil {
		u, err := h.userService.UpdateDisplayName(user.ID, *req.DisplayName)
		if err != nil {
			respondError(w, r, err)
			return
		}
		updated = u
	}
	if req.AvatarURL != nil {
		u, err := h.userService.UpdateAvatarURL(user.ID, *req.AvatarURL)
		if err != nil {
			respondError(w, r, err)
			return
		}
		updated = u
	}

	respond(w, http.StatusOK, map[string]any{
		"user": updated.View(),
	})
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, r, apperr.Validation("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, r, apperr.Validation("avatar file is required"))
		return
	}
	defer file.Close()

	avatarURL, err := h.userService.UploadAvatar(user.ID, file, header)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"avatar_url": avatarURL,
	})
}
