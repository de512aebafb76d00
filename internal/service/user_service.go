package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"userhub/internal/cache"
	"userhub/internal/images"
	"userhub/internal/model"
	"userhub/internal/repository"
	"userhub/internal/upload"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes operations on the authenticated user.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint, avatar *upload.File) (avatarURL string, err error)
}

type userService struct {
	users     repository.UserRepository
	cache     *cache.Client
	avatarDir string
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(users repository.UserRepository, cache *cache.Client, avatarDir string) UserService {
	return &userService{users: users, cache: cache, avatarDir: avatarDir}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser loads a user by id, serving from cache when possible. The guard
// hits this on every authenticated request.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateAvatar resizes the uploaded image in place, moves it into the avatar
// directory and points the user record at it. The sequence is not
// transactional; a failure after the move leaves the stored file orphaned.
func (s *userService) UpdateAvatar(ctx context.Context, userID uint, avatar *upload.File) (string, error) {
	if err := images.Normalize(avatar.Path); err != nil {
		return "", fmt.Errorf("normalize avatar: %w", err)
	}

	dest := filepath.Join(s.avatarDir, avatar.Filename)
	if err := os.Rename(avatar.Path, dest); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	avatarURL := "/avatars/" + avatar.Filename
	if err := s.users.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		return "", fmt.Errorf("update avatar url: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return avatarURL, nil
}
