package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetSection(ctx context.Context, section string) (*SiteContent, error)
	ListSections(ctx context.Context) ([]*SiteContent, error)
	UpsertSection(ctx context.Context, section string, payload json.RawMessage) error

	ListStories(ctx context.Context, publishedOnly bool) ([]*Story, error)
	GetStory(ctx context.Context, id string) (*Story, error)
	CreateStory(ctx context.Context, st *Story) error
	UpdateStory(ctx context.Context, st *Story) error
	SetStoryPublished(ctx context.Context, id string, published bool) error
	DeleteStory(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetSection(ctx context.Context, section string) (*SiteContent, error) {
	var c SiteContent
	err := r.db.QueryRowContext(ctx, `
		SELECT section, payload, updated_at FROM site_content WHERE section = $1
	`, section).Scan(&c.Section, &c.Payload, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListSections(ctx context.Context) ([]*SiteContent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT section, payload, updated_at FROM site_content ORDER BY section`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*SiteContent
	for rows.Next() {
		var c SiteContent
		if err := rows.Scan(&c.Section, &c.Payload, &c.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, &c)
	}
	return sections, rows.Err()
}

func (r *repository) UpsertSection(ctx context.Context, section string, payload json.RawMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_content (section, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (section) DO UPDATE SET payload = $2, updated_at = NOW()
	`, section, payload)
	return err
}

const storyColumns = `id, title, content, image, published, created_at, updated_at`

func scanStory(row interface {
	Scan(dest ...any) error
}) (*Story, error) {
	var st Story
	err := row.Scan(&st.ID, &st.Title, &st.Content, &st.Image,
		&st.Published, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) ListStories(ctx context.Context, publishedOnly bool) ([]*Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*Story
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, st)
	}
	return stories, rows.Err()
}

func (r *repository) GetStory(ctx context.Context, id string) (*Story, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+storyColumns+` FROM stories WHERE id = $1`, id)

	st, err := scanStory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (r *repository) CreateStory(ctx context.Context, st *Story) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stories (id, title, content, image, published, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
	`, st.ID, st.Title, st.Content, st.Image, st.Published)
	return err
}

func (r *repository) UpdateStory(ctx context.Context, st *Story) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stories
		SET title = $1, content = $2, image = $3, updated_at = NOW()
		WHERE id = $4
	`, st.Title, st.Content, st.Image, st.ID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func (r *repository) SetStoryPublished(ctx context.Context, id string, published bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stories SET published = $1, updated_at = NOW() WHERE id = $2`, published, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func (r *repository) DeleteStory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrStoryNotFound
	}
	return nil
}
