package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/validate"
)

// MediaRepo manages the `media_photos` table.
type MediaRepo struct {
	DB      *sql.DB
	nowFunc func() time.Time
}

func NewMediaRepo(db *sql.DB) *MediaRepo { return &MediaRepo{DB: db, nowFunc: time.Now} }

const mediaColumns = "id,url,alt_text,is_press,display_order,created_at,updated_at"

// Create validates and inserts a photo, filling id and timestamps.
func (r *MediaRepo) Create(ctx context.Context, p *model.MediaPhoto) error {
	if ferr := validate.MediaPhoto(p); ferr != nil {
		return ferr
	}
	p.ID = uuid.NewString()
	p.CreatedAt = r.nowFunc().UTC().Truncate(time.Second)
	p.UpdatedAt = p.CreatedAt
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO media_photos (id,url,alt_text,is_press,display_order,created_at,updated_at) VALUES (?,?,?,?,?,?,?)",
		p.ID, p.URL, p.AltText, p.IsPress, p.DisplayOrder, p.CreatedAt, p.UpdatedAt)
	return translate(err)
}

// Update validates and rewrites a photo row.
func (r *MediaRepo) Update(ctx context.Context, p *model.MediaPhoto) error {
	if ferr := validate.MediaPhoto(p); ferr != nil {
		return ferr
	}
	p.UpdatedAt = r.nowFunc().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE media_photos SET url=?,alt_text=?,is_press=?,display_order=?,updated_at=? WHERE id=?",
		p.URL, p.AltText, p.IsPress, p.DisplayOrder, p.UpdatedAt, p.ID)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a photo by id.
func (r *MediaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM media_photos WHERE id=?", id)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every photo ordered for rendering.
func (r *MediaRepo) List(ctx context.Context) ([]model.MediaPhoto, error) {
	return r.query(ctx, "SELECT "+mediaColumns+" FROM media_photos ORDER BY display_order ASC")
}

// Press returns press-kit photos only.
func (r *MediaRepo) Press(ctx context.Context) ([]model.MediaPhoto, error) {
	return r.query(ctx, "SELECT "+mediaColumns+" FROM media_photos WHERE is_press=1 ORDER BY display_order ASC")
}

// Reorder applies display-order changes transactionally.
func (r *MediaRepo) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return reorderRows(ctx, r.DB, "media_photos", updates, r.nowFunc)
}

func (r *MediaRepo) query(ctx context.Context, q string, args ...any) ([]model.MediaPhoto, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var out []model.MediaPhoto
	for rows.Next() {
		var p model.MediaPhoto
		if err := rows.Scan(&p.ID, &p.URL, &p.AltText, &p.IsPress, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, p)
	}
	return out, translate(rows.Err())
}
