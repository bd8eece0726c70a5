package promo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Promo, error)
	List(ctx context.Context) ([]*Promo, error)
	Create(ctx context.Context, p *Promo) error
	Update(ctx context.Context, p *Promo) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetByCode matches the code case-insensitively; uniqueness is enforced by
// this lookup, not by schema.
func (r *repository) GetByCode(ctx context.Context, code string) (*Promo, error) {
	query := `
		SELECT id, title, description, code, discount_percentage, discount_amount,
		       active, start_date, end_date, created_at
		FROM promos
		WHERE upper(code) = upper($1)
		ORDER BY created_at DESC
		LIMIT 1
	`

	var p Promo
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&p.ID, &p.Title, &p.Description, &p.Code,
		&p.DiscountPercentage, &p.DiscountAmount,
		&p.Active, &p.StartDate, &p.EndDate, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Promo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, code, discount_percentage, discount_amount,
		       active, start_date, end_date, created_at
		FROM promos
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []*Promo
	for rows.Next() {
		var p Promo
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Code,
			&p.DiscountPercentage, &p.DiscountAmount,
			&p.Active, &p.StartDate, &p.EndDate, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		promos = append(promos, &p)
	}

	return promos, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Promo) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO promos (
			id, title, description, code, discount_percentage, discount_amount,
			active, start_date, end_date, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
	`,
		p.ID, p.Title, p.Description, p.Code,
		p.DiscountPercentage, p.DiscountAmount,
		p.Active, p.StartDate, p.EndDate,
	)
	return err
}

func (r *repository) Update(ctx context.Context, p *Promo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE promos
		SET title = $1, description = $2, code = $3,
		    discount_percentage = $4, discount_amount = $5,
		    active = $6, start_date = $7, end_date = $8
		WHERE id = $9
	`,
		p.Title, p.Description, p.Code,
		p.DiscountPercentage, p.DiscountAmount,
		p.Active, p.StartDate, p.EndDate, p.ID,
	)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrPromoNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE promos SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrPromoNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promos WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrPromoNotFound
	}
	return nil
}
