package handler

import (
	"net/http"
	"time"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/ctxkeys"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Unit         *string  `json:"unit"`
	Status       *string  `json:"status"`
	Priority     *string  `json:"priority"`
	TargetDate   *string  `json:"target_date"` // YYYY-MM-DD
}

func (req *goalRequest) input() (service.GoalInput, error) {
	input := service.GoalInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Status:       req.Status,
		Priority:     req.Priority,
	}

	if req.TargetDate != nil {
		d, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			return input, apperr.Validation("target_date must be YYYY-MM-DD")
		}
		input.TargetDate = &d
	}

	return input, nil
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	filter := repository.GoalFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Limit:    queryInt(r, "limit", 0),
		Offset:   queryInt(r, "offset", 0),
	}

	goals, err := h.goalService.Goals(user.ID, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	views := make([]*model.GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, g.View())
	}

	respond(w, http.StatusOK, map[string]any{
		"goals": views,
		"pagination": map[string]any{
			"limit":  filter.Limit,
			"offset": filter.Offset,
			"count":  len(views),
		},
	})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	input, err := req.input()
	if err != nil {
		respondError(w, r, err)
		return
	}

	goal, err := h.goalService.Create(user.ID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, map[string]any{
		"goal": goal.View(),
	})
}

func (h *GoalHandler) ByID(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"goal": goal.View(),
	})
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	input, err := req.input()
	if err != nil {
		respondError(w, r, err)
		return
	}

	goal, err := h.goalService.Update(user.ID, r.PathValue("id"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"goal": goal.View(),
	})
}

type progressRequest struct {
	CurrentValue *float64 `json:"current_value"`
	Notes        string   `json:"notes"`
}

func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req progressRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if req.CurrentValue == nil {
		respondError(w, r, apperr.Validation("current_value is required"))
		return
	}

	goal, err := h.goalService.ApplyProgress(r.PathValue("id"), user.ID, *req.CurrentValue, req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"goal": goal.View(),
	})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.goalService.Delete(user.ID, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message": "goal deleted",
	})
}
