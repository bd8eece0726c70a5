package admin

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Operator, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Operator, error) {
	query := `
		SELECT id, email, password_hash, name, created_at
		FROM operators
		WHERE lower(email) = lower($1)
	`

	var op Operator
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&op.ID, &op.Email, &op.PasswordHash, &op.Name, &op.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOperatorNotFound
	}
	if err != nil {
		return nil, err
	}

	return &op, nil
}
