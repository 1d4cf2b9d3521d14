package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ecomshop/backend/internal/events"
	"github.com/ecomshop/backend/internal/hash"
	"github.com/ecomshop/backend/internal/logging"
	"github.com/ecomshop/backend/internal/models"
	"github.com/ecomshop/backend/internal/repo"
	"github.com/ecomshop/backend/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Producer  *events.Producer
}

type LoginResult struct {
	AccessToken string
	Role        string
}

// Register creates an account with the "user" role. The role is never taken
// from the caller; admin accounts come from EnsureAdmin only.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user already exists: %w", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return &user, nil
}

// Login deliberately reports the same error for an unknown username and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.NewAccessToken(user.ID, user.Role, s.TokenTTL, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return &LoginResult{AccessToken: token, Role: user.Role}, nil
}

// EnsureAdmin is the privileged provisioning path: it seeds an admin account
// at startup. An existing account with that username is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "admin",
	}

	if err := s.Repo.CreateUser(ctx, &admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	logging.FromContext(ctx).Info("admin_provisioned", "username", username)
	return nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "topic", topic, "error", err)
	}
}
