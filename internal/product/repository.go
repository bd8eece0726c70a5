package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	SetImage(ctx context.Context, id, url string) error
	SetSortOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, title, description, price, image, category,
	in_stock, quantity, featured, sort_order, created_at, updated_at
`

func scanProduct(row interface {
	Scan(dest ...any) error
}) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Category,
		&p.InStock, &p.Quantity, &p.Featured, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Category != nil && *filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, *filter.Category)
		argIndex++
	}
	if filter.Featured != nil {
		query += fmt.Sprintf(" AND featured = $%d", argIndex)
		args = append(args, *filter.Featured)
		argIndex++
	}
	if filter.InStock != nil {
		query += fmt.Sprintf(" AND in_stock = $%d", argIndex)
		args = append(args, *filter.InStock)
		argIndex++
	}

	query += " ORDER BY sort_order ASC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, title, description, price, image, category,
			in_stock, quantity, featured, sort_order, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
	`,
		p.ID, p.Title, p.Description, p.Price, p.Image, p.Category,
		p.InStock, p.Quantity, p.Featured, p.SortOrder,
	)
	return err
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET title = $1, description = $2, price = $3, image = $4,
		    category = $5, in_stock = $6, quantity = $7, featured = $8,
		    sort_order = $9, updated_at = NOW()
		WHERE id = $10
	`,
		p.Title, p.Description, p.Price, p.Image,
		p.Category, p.InStock, p.Quantity, p.Featured,
		p.SortOrder, p.ID,
	)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) SetImage(ctx context.Context, id, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET image = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) SetSortOrder(ctx context.Context, id string, order int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET sort_order = $1, updated_at = NOW() WHERE id = $2`, order, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
