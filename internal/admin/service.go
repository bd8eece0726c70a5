package admin

import (
	"context"
	"errors"

	"floramia-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, email, password string) (string, *Operator, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Login verifies credentials and issues a session token. A missing operator
// and a wrong password produce the same error so the response does not reveal
// which emails have accounts.
func (s *service) Login(ctx context.Context, email, password string) (string, *Operator, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	op, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrOperatorNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to load operator", zap.Error(err))
		return "", nil, err
	}

	if !CheckPasswordHash(password, op.PasswordHash) {
		log.Warn("password mismatch", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(op.ID, op.Email)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return "", nil, err
	}

	return token, op, nil
}
