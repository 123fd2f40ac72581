package handler

import (
	"net/http"
	"time"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/ctxkeys"
	"github.com/zhihungchen/FittedIn/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"profile": profile.View(),
	})
}

type updateProfileRequest struct {
	Bio          *string  `json:"bio"`
	Location     *string  `json:"location"`
	Pronouns     *string  `json:"pronouns"`
	DateOfBirth  *string  `json:"date_of_birth"` // YYYY-MM-DD
	HeightCm     *int     `json:"height_cm"`
	WeightKg     *float64 `json:"weight_kg"`
	FitnessLevel *string  `json:"fitness_level"`
	CoverPhoto   *string  `json:"cover_photo"`
	IsPrivate    *bool    `json:"is_private"`
}

func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateProfileRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	update := service.ProfileUpdate{
		Bio:          req.Bio,
		Location:     req.Location,
		Pronouns:     req.Pronouns,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		FitnessLevel: req.FitnessLevel,
		CoverPhoto:   req.CoverPhoto,
		IsPrivate:    req.IsPrivate,
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			respondError(w, r, apperr.Validation("date_of_birth must be YYYY-MM-DD"))
			return
		}
		update.DateOfBirth = &dob
	}

	profile, err := h.profileService.Update(user.ID, update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"profile": profile.View(),
	})
}

func (h *ProfileHandler) ByUserID(w http.ResponseWriter, r *http.Request) {
	viewer := ctxkeys.User(r.Context())
	userID := r.PathValue("userId")

	view, err := h.profileService.PublicProfile(viewer.ID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"profile": view,
	})
}
