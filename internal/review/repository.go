package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, approvedOnly bool) ([]*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	Create(ctx context.Context, rv *Review) error
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const reviewColumns = `id, name, email, rating, comment, approved, created_at`

func scanReview(row interface {
	Scan(dest ...any) error
}) (*Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.Name, &rv.Email, &rv.Rating,
		&rv.Comment, &rv.Approved, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) List(ctx context.Context, approvedOnly bool) ([]*Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	if approvedOnly {
		query += ` WHERE approved = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Review, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)

	rv, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, name, email, rating, comment, approved, created_at)
		VALUES ($1,$2,$3,$4,$5,FALSE,NOW())
	`, rv.ID, rv.Name, rv.Email, rv.Rating, rv.Comment)
	return err
}

func (r *repository) SetApproved(ctx context.Context, id string, approved bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
