package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/validate"
)

// MixRepo manages the `mixes` table.  Lists are always ordered by
// display_order ascending; the order is an explicit integer maintained by
// the admin UI, not a timestamp.
type MixRepo struct {
	DB      *sql.DB
	nowFunc func() time.Time
}

func NewMixRepo(db *sql.DB) *MixRepo { return &MixRepo{DB: db, nowFunc: time.Now} }

const mixColumns = "id,title,platform,url,featured,display_order,created_at,updated_at"

// Create validates and inserts a mix, filling id and timestamps on the
// passed struct.
func (r *MixRepo) Create(ctx context.Context, m *model.Mix) error {
	if ferr := validate.Mix(m); ferr != nil {
		return ferr
	}
	m.ID = uuid.NewString()
	m.CreatedAt = r.nowFunc().UTC().Truncate(time.Second)
	m.UpdatedAt = m.CreatedAt
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO mixes (id,title,platform,url,featured,display_order,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?)",
		m.ID, m.Title, m.Platform, m.URL, m.Featured, m.DisplayOrder, m.CreatedAt, m.UpdatedAt)
	return translate(err)
}

// Update validates and rewrites a mix row.
func (r *MixRepo) Update(ctx context.Context, m *model.Mix) error {
	if ferr := validate.Mix(m); ferr != nil {
		return ferr
	}
	m.UpdatedAt = r.nowFunc().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE mixes SET title=?,platform=?,url=?,featured=?,display_order=?,updated_at=? WHERE id=?",
		m.Title, m.Platform, m.URL, m.Featured, m.DisplayOrder, m.UpdatedAt, m.ID)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a mix by id.
func (r *MixRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM mixes WHERE id=?", id)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all mixes ordered for rendering.
func (r *MixRepo) List(ctx context.Context) ([]model.Mix, error) {
	return r.query(ctx, "SELECT "+mixColumns+" FROM mixes ORDER BY display_order ASC")
}

// Featured returns only featured mixes, same ordering.
func (r *MixRepo) Featured(ctx context.Context) ([]model.Mix, error) {
	return r.query(ctx, "SELECT "+mixColumns+" FROM mixes WHERE featured=1 ORDER BY display_order ASC")
}

// OrderUpdate pairs a row id with its new display order.
type OrderUpdate struct {
	ID           string `json:"id"`
	DisplayOrder int    `json:"display_order"`
}

// Reorder applies a batch of display-order changes inside one transaction,
// so a partial failure leaves no rows reordered.
func (r *MixRepo) Reorder(ctx context.Context, updates []OrderUpdate) error {
	return reorderRows(ctx, r.DB, "mixes", updates, r.nowFunc)
}

func (r *MixRepo) query(ctx context.Context, q string, args ...any) ([]model.Mix, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var out []model.Mix
	for rows.Next() {
		var m model.Mix
		if err := rows.Scan(&m.ID, &m.Title, &m.Platform, &m.URL, &m.Featured, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, m)
	}
	return out, translate(rows.Err())
}

// reorderRows is shared by the mixes and media_photos repositories.  One
// UPDATE per pair, all inside a single transaction.
func reorderRows(ctx context.Context, db *sql.DB, table string, updates []OrderUpdate, now func() time.Time) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return translate(err)
	}
	stamp := now().UTC().Truncate(time.Second)
	for _, u := range updates {
		if _, err := tx.ExecContext(ctx,
			"UPDATE "+table+" SET display_order=?, updated_at=? WHERE id=?",
			u.DisplayOrder, stamp, u.ID); err != nil {
			_ = tx.Rollback()
			return translate(err)
		}
	}
	return translate(tx.Commit())
}
