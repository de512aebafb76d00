package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"userhub/internal/auth"
	apperrors "userhub/internal/errors"
	"userhub/internal/gravatar"
	"userhub/internal/model"
	"userhub/internal/repository"
	"userhub/internal/upload"
)

const bcryptCost = 12

// AuthService handles signup and login.
type AuthService interface {
	SignUp(ctx context.Context, email, password string, avatar *upload.File) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	avatarDir  string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, avatarDir string) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		avatarDir:  avatarDir,
	}
}

// SignUp creates a user with a hashed password. An uploaded avatar file takes
// precedence over the gravatar URL derived from the email.
func (s *authService) SignUp(ctx context.Context, email, password string, avatar *upload.File) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailInUse
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}

	avatarURL := gravatar.URL(email)
	if avatar != nil {
		dest := filepath.Join(s.avatarDir, avatar.Filename)
		if err := os.Rename(avatar.Path, dest); err != nil {
			return nil, fmt.Errorf("store avatar: %w", err)
		}
		avatarURL = "/avatars/" + avatar.Filename
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Subscription: model.SubscriptionStarter,
		AvatarURL:    avatarURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}
