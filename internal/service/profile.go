package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/validation"
)

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	Bio          *string
	Location     *string
	Pronouns     *string
	DateOfBirth  *time.Time
	HeightCm     *int
	WeightKg     *float64
	FitnessLevel *string
	CoverPhoto   *string
	IsPrivate    *bool
}

type ProfileService struct {
	profileRepo     repository.ProfileRepository
	connectionRepo  repository.ConnectionRepository
	activityService *ActivityService
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	connectionRepo repository.ConnectionRepository,
	activityService *ActivityService,
) *ProfileService {
	return &ProfileService{
		profileRepo:     profileRepo,
		connectionRepo:  connectionRepo,
		activityService: activityService,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Update(userID string, update ProfileUpdate) (*model.Profile, error) {
	err := validateProfileUpdate(update)
	if err != nil {
		return nil, err
	}

	profile, err := s.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	if update.Bio != nil {
		profile.Bio = trimmedOrNil(*update.Bio)
	}
	if update.Location != nil {
		profile.Location = trimmedOrNil(*update.Location)
	}
	if update.Pronouns != nil {
		profile.Pronouns = trimmedOrNil(*update.Pronouns)
	}
	if update.DateOfBirth != nil {
		profile.DateOfBirth = update.DateOfBirth
	}
	if update.HeightCm != nil {
		profile.HeightCm = update.HeightCm
	}
	if update.WeightKg != nil {
		profile.WeightKg = update.WeightKg
	}
	if update.FitnessLevel != nil {
		level := strings.ToLower(strings.TrimSpace(*update.FitnessLevel))
		profile.FitnessLevel = &level
	}
	if update.CoverPhoto != nil {
		profile.CoverPhoto = trimmedOrNil(*update.CoverPhoto)
	}
	if update.IsPrivate != nil {
		profile.IsPrivate = *update.IsPrivate
	}

	err = s.profileRepo.Update(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	err = s.activityService.Log(userID, model.ActivityProfileUpdated, nil, "profile", profile.ID)
	if err != nil {
		slog.Error("failed to log profile update activity", "error", err, "user_id", userID)
	}

	return profile, nil
}

// PublicProfile returns userID's profile as seen by viewerID. Private
// profiles are only visible to their owner and accepted connections.
func (s *ProfileService) PublicProfile(viewerID, userID string) (*model.ProfileView, error) {
	profile, err := s.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	if viewerID == userID {
		return profile.View(), nil
	}

	if profile.IsPrivate {
		conn, err := s.connectionRepo.ByPair(viewerID, userID)
		if err != nil || conn.Status != model.ConnectionStatusAccepted {
			return nil, apperr.Forbidden("this profile is private")
		}
	}

	return profile.PublicView(), nil
}

func validateProfileUpdate(update ProfileUpdate) error {
	if update.Bio != nil && utf8.RuneCountInString(strings.TrimSpace(*update.Bio)) > 1000 {
		return apperr.Validation("bio cannot exceed 1000 characters")
	}
	if update.Location != nil && utf8.RuneCountInString(strings.TrimSpace(*update.Location)) > 100 {
		return apperr.Validation("location cannot exceed 100 characters")
	}
	if update.Pronouns != nil && utf8.RuneCountInString(strings.TrimSpace(*update.Pronouns)) > 50 {
		return apperr.Validation("pronouns cannot exceed 50 characters")
	}
	if update.CoverPhoto != nil {
		if ref := strings.TrimSpace(*update.CoverPhoto); ref != "" {
			if err := validation.ValidateImageRef(ref); err != nil {
				return apperr.Validation("cover photo must be an http(s) URL or an inline image")
			}
		}
	}
	if update.HeightCm != nil && (*update.HeightCm < 50 || *update.HeightCm > 300) {
		return apperr.Validation("height must be between 50 and 300 cm")
	}
	if update.WeightKg != nil && (*update.WeightKg < 10 || *update.WeightKg > 500) {
		return apperr.Validation("weight must be between 10 and 500 kg")
	}
	if update.FitnessLevel != nil {
		switch strings.ToLower(strings.TrimSpace(*update.FitnessLevel)) {
		case model.FitnessLevelBeginner, model.FitnessLevelIntermediate, model.FitnessLevelAdvanced:
		default:
			return apperr.Validation("fitness level must be beginner, intermediate or advanced")
		}
	}
	return nil
}

func trimmedOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
