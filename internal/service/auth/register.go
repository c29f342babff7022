package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// AddUser creates an account. A case-insensitive duplicate email returns
// Success=false with MsgEmailTaken.
func (s *Service) AddUser(ctx context.Context, input NewUserInput) (*AddUserResult, error) {
	input = input.normalized()

	if err := input.Validate(s.cfg.MinPasswordLen); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return &AddUserResult{Success: false, Message: MsgEmailTaken}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.AddUser lookup email: %w", err)
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.AddUser: %w", err)
	}

	// The unique index still guards against a concurrent signup.
	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.New(),
		Fullname:     input.Fullname,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return &AddUserResult{Success: false, Message: MsgEmailTaken}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth.AddUser create: %w", err)
	}

	s.log.InfoContext(ctx, "user created", slog.String("user_id", created.ID.String()))

	public := created.Public()
	return &AddUserResult{Success: true, User: &public}, nil
}

// Register creates an account and opens a session for it.
// A duplicate email yields an error wrapping domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input NewUserInput) (*AuthResult, error) {
	var result *AuthResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		added, err := s.AddUser(txCtx, input)
		if err != nil {
			return err
		}
		if !added.Success {
			return fmt.Errorf("%s: %w", added.Message, domain.ErrAlreadyExists)
		}

		result, err = s.issueTokens(txCtx, added.User)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return result, nil
}
