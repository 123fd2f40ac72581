package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/zhihungchen/FittedIn/internal/apperr"
	"github.com/zhihungchen/FittedIn/internal/model"
	"github.com/zhihungchen/FittedIn/internal/repository"
	"github.com/zhihungchen/FittedIn/internal/storage"
	"github.com/zhihungchen/FittedIn/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
	fileStorage    storage.Storage
}

func NewUserService(userRepository repository.UserRepository, fileStorage storage.Storage) *UserService {
	return &UserService{
		userRepository: userRepository,
		fileStorage:    fileStorage,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateDisplayName(userID, displayName string) (*model.User, error) {
	displayName = strings.TrimSpace(displayName)
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	user, err := s.ByID(userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName
	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) UpdateAvatarURL(userID, avatarURL string) (*model.User, error) {
	if avatarURL != "" {
		if err := validation.ValidateImageRef(avatarURL); err != nil {
			return nil, apperr.Validation(err.Error())
		}
	}

	user, err := s.ByID(userID)
	if err != nil {
		return nil, err
	}

	if avatarURL == "" {
		user.AvatarURL = nil
	} else {
		user.AvatarURL = &avatarURL
	}

	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UploadAvatar stores the image in object storage under a per-user key and
// saves the resulting public URL on the user.
func (s *UserService) UploadAvatar(userID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.fileStorage == nil {
		return "", apperr.InvalidOperation("avatar storage is not configured")
	}

	err := validation.ValidateImageUpload(header)
	if err != nil {
		return "", apperr.Validation(err.Error())
	}

	user, err := s.ByID(userID)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("avatars/%s%s", userID, extensionOf(header.Filename))
	err = s.fileStorage.Save(path, file)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	url := s.fileStorage.PublicURL(path)
	user.AvatarURL = &url
	err = s.userRepository.Update(user)
	if err != nil {
		return "", fmt.Errorf("failed to update user: %w", err)
	}

	return url, nil
}

func extensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}
