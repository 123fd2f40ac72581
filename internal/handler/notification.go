package handler

import (
	"net/http"

	"github.com/zhihungchen/FittedIn/internal/ctxkeys"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.notificationService.List(user.ID, unreadOnly, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, r, err)
		return
	}

	views := make([]*model.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, n.View())
	}

	respond(w, http.StatusOK, map[string]any{
		"notifications": views,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.notificationService.MarkRead(user.ID, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message": "notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.notificationService.MarkAllRead(user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message": "all notifications marked as read",
	})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	count, err := h.notificationService.UnreadCount(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"count": count,
	})
}
