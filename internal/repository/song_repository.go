package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/validate"
)

// SongRepo manages the `song_requests` table.
type SongRepo struct {
	DB      *sql.DB
	nowFunc func() time.Time
}

func NewSongRepo(db *sql.DB) *SongRepo { return &SongRepo{DB: db, nowFunc: time.Now} }

const songColumns = "id,requester_name,artist,track,dedication,event_id,approved,created_at,updated_at"

// Create validates and inserts a song request.  Requests always enter
// unapproved.
func (r *SongRepo) Create(ctx context.Context, s *model.SongRequest) error {
	s.Approved = false
	if ferr := validate.SongRequest(s); ferr != nil {
		return ferr
	}
	s.ID = uuid.NewString()
	s.CreatedAt = r.nowFunc().UTC().Truncate(time.Second)
	s.UpdatedAt = s.CreatedAt
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO song_requests (id,requester_name,artist,track,dedication,event_id,approved,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?,?)",
		s.ID, s.RequesterName, s.Artist, s.Track, s.Dedication, s.EventID, s.Approved, s.CreatedAt, s.UpdatedAt)
	return translate(err)
}

// List returns song requests newest first, optionally filtered by event.
func (r *SongRepo) List(ctx context.Context, eventID string) ([]model.SongRequest, error) {
	q := "SELECT " + songColumns + " FROM song_requests"
	var args []any
	if eventID != "" {
		q += " WHERE event_id=?"
		args = append(args, eventID)
	}
	q += " ORDER BY created_at DESC"
	return r.query(ctx, q, args...)
}

// SetApproval toggles the admin approval flag and returns the updated row.
func (r *SongRepo) SetApproval(ctx context.Context, id string, approved bool) (model.SongRequest, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE song_requests SET approved=?, updated_at=? WHERE id=?",
		approved, r.nowFunc().UTC().Truncate(time.Second), id)
	if err != nil {
		return model.SongRequest{}, translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.SongRequest{}, ErrNotFound
	}
	rows, err := r.query(ctx, "SELECT "+songColumns+" FROM song_requests WHERE id=? LIMIT 1", id)
	if err != nil {
		return model.SongRequest{}, err
	}
	if len(rows) == 0 {
		return model.SongRequest{}, ErrNotFound
	}
	return rows[0], nil
}

// CountUnapproved counts requests awaiting review.
func (r *SongRepo) CountUnapproved(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM song_requests WHERE approved=0").Scan(&n)
	return n, translate(err)
}

// Recent returns the n newest requests for the dashboard activity feed.
func (r *SongRepo) Recent(ctx context.Context, n int) ([]model.SongRequest, error) {
	return r.query(ctx, "SELECT "+songColumns+" FROM song_requests ORDER BY created_at DESC LIMIT ?", n)
}

func (r *SongRepo) query(ctx context.Context, q string, args ...any) ([]model.SongRequest, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var out []model.SongRequest
	for rows.Next() {
		var s model.SongRequest
		if err := rows.Scan(&s.ID, &s.RequesterName, &s.Artist, &s.Track, &s.Dedication, &s.EventID, &s.Approved, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, s)
	}
	return out, translate(rows.Err())
}
