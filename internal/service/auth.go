package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lvieira/catalogo-api/internal/hash"
	"github.com/lvieira/catalogo-api/internal/logging"
	"github.com/lvieira/catalogo-api/internal/models"
	"github.com/lvieira/catalogo-api/internal/repo"
	"github.com/lvieira/catalogo-api/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, name, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" {
		return nil, errors.New("username is required")
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         name,
		Username:     username,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("register_error", "reason", "username already taken", "username", username)
			return nil, ErrUserExists
		}
		l.Error("register_error", "reason", "cannot create user", "error", err)
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown username")
			return "", ErrUserNotFound
		}
		l.Error("login_failed", "error", err)
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return "", ErrInvalidCredentials
	}

	token, err := tokens.Issue(fmt.Sprint(user.ID), s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return "", err
	}

	return token, nil
}
