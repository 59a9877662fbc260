package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/validate"
)

// EventRepo manages the `events` table.  Reads are chronological: the
// admin list is newest-first, the public upcoming strip oldest-first.
type EventRepo struct {
	DB      *sql.DB
	nowFunc func() time.Time
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db, nowFunc: time.Now} }

const eventColumns = "id,title,start_at,end_at,venue,city,is_public,status,created_at,updated_at"

// Create validates and inserts an event, filling id and timestamps.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	if e.Status == "" {
		e.Status = model.EventScheduled
	}
	if ferr := validate.Event(e); ferr != nil {
		return ferr
	}
	e.ID = uuid.NewString()
	e.CreatedAt = r.nowFunc().UTC().Truncate(time.Second)
	e.UpdatedAt = e.CreatedAt
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (id,title,start_at,end_at,venue,city,is_public,status,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?,?,?)",
		e.ID, e.Title, e.StartAt, e.EndAt, e.Venue, e.City, e.IsPublic, e.Status, e.CreatedAt, e.UpdatedAt)
	return translate(err)
}

// Update validates and rewrites an event row.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	if ferr := validate.Event(e); ferr != nil {
		return ferr
	}
	e.UpdatedAt = r.nowFunc().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE events SET title=?,start_at=?,end_at=?,venue=?,city=?,is_public=?,status=?,updated_at=? WHERE id=?",
		e.Title, e.StartAt, e.EndAt, e.Venue, e.City, e.IsPublic, e.Status, e.UpdatedAt, e.ID)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event by id.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every event, newest first, for the admin table.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	return r.query(ctx, "SELECT "+eventColumns+" FROM events ORDER BY start_at DESC")
}

// Upcoming returns public events that have not started yet, soonest first.
// A limit of 0 means no cap.
func (r *EventRepo) Upcoming(ctx context.Context, limit int) ([]model.Event, error) {
	q := "SELECT " + eventColumns + " FROM events WHERE is_public=1 AND start_at>=? ORDER BY start_at ASC"
	args := []any{r.nowFunc().UTC()}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	return r.query(ctx, q, args...)
}

// Search matches the query against title, venue and city.
func (r *EventRepo) Search(ctx context.Context, query string) ([]model.Event, error) {
	like := "%" + query + "%"
	return r.query(ctx,
		"SELECT "+eventColumns+" FROM events WHERE title LIKE ? OR venue LIKE ? OR city LIKE ? ORDER BY start_at DESC",
		like, like, like)
}

func (r *EventRepo) query(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.StartAt, &e.EndAt, &e.Venue, &e.City, &e.IsPublic, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, e)
	}
	return out, translate(rows.Err())
}
