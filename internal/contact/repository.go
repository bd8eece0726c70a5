package contact

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	CreateInquiry(ctx context.Context, in *Inquiry) error
	ListInquiries(ctx context.Context) ([]*Inquiry, error)
	SetInquiryStatus(ctx context.Context, id string, status InquiryStatus) error
	DeleteInquiry(ctx context.Context, id string) error

	CreateSubscriber(ctx context.Context, sub *Subscriber) error
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)
	DeleteSubscriber(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateInquiry(ctx context.Context, in *Inquiry) error {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inquiries (id, name, email, phone, message, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
	`, in.ID, in.Name, in.Email, in.Phone, in.Message, in.Status)
	return err
}

func (r *repository) ListInquiries(ctx context.Context) ([]*Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, message, status, created_at
		FROM inquiries ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []*Inquiry
	for rows.Next() {
		var in Inquiry
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Phone,
			&in.Message, &in.Status, &in.CreatedAt); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, &in)
	}
	return inquiries, rows.Err()
}

func (r *repository) SetInquiryStatus(ctx context.Context, id string, status InquiryStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

func (r *repository) DeleteInquiry(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

// CreateSubscriber relies on the unique index on lower(email); a duplicate
// maps to ErrAlreadySubscribed.
func (r *repository) CreateSubscriber(ctx context.Context, sub *Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscribers (id, email, created_at) VALUES ($1,$2,NOW())
	`, sub.ID, sub.Email)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrAlreadySubscribed
	}
	return err
}

func (r *repository) ListSubscribers(ctx context.Context) ([]*Subscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, created_at FROM subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*Subscriber
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

func (r *repository) DeleteSubscriber(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}
