package handler

import (
	"net/http"

	"github.com/zhihungchen/FittedIn/internal/ctxkeys"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	activities, err := h.activityService.History(user.ID, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		respondError(w, r, err)
		return
	}

	views := make([]*model.ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, a.View())
	}

	respond(w, http.StatusOK, map[string]any{
		"activities": views,
	})
}
