package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// Authenticate returns the user without credential material when email and
// password match, and nil (not an error) when they do not.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth.Authenticate get user: %w", err)
	}

	ok, err := s.passwords.Matches(user.PasswordHash, password)
	if err != nil {
		s.log.ErrorContext(ctx, "stored password hash unusable",
			slog.String("user_id", user.ID.String()), slog.String("error", err.Error()))
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	public := user.Public()
	return &public, nil
}

// Login authenticates with email + password and opens a session.
// Wrong credentials yield domain.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if user == nil {
		s.log.InfoContext(ctx, "login rejected")
		return nil, domain.ErrUnauthorized
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
	return result, nil
}
