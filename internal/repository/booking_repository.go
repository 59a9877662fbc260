package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/validate"
)

// BookingRepo manages the `booking_requests` table.  Rows are created by
// the public form and only ever mutated by admin status updates; the
// application never deletes them.
type BookingRepo struct {
	DB      *sql.DB
	nowFunc func() time.Time
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db, nowFunc: time.Now} }

const bookingColumns = "id,name,email,phone,event_date,venue,attendees,budget_range,message,status,internal_notes,created_at,updated_at"

// Create validates and inserts a booking request.  Status always starts
// as "new" regardless of the submitted payload.
func (r *BookingRepo) Create(ctx context.Context, b *model.BookingRequest) error {
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
	b.Status = model.BookingNew
	if ferr := validate.BookingRequest(b, r.nowFunc()); ferr != nil {
		return ferr
	}
	b.ID = uuid.NewString()
	b.CreatedAt = r.nowFunc().UTC().Truncate(time.Second)
	b.UpdatedAt = b.CreatedAt
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO booking_requests (id,name,email,phone,event_date,venue,attendees,budget_range,message,status,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		b.ID, b.Name, b.Email, b.Phone, b.EventDate, b.Venue, b.Attendees, b.BudgetRange, b.Message, b.Status, b.CreatedAt, b.UpdatedAt)
	return translate(err)
}

// List returns booking requests newest first, optionally filtered by
// status.
func (r *BookingRepo) List(ctx context.Context, status string) ([]model.BookingRequest, error) {
	q := "SELECT " + bookingColumns + " FROM booking_requests"
	var args []any
	if status != "" {
		q += " WHERE status=?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"
	return r.query(ctx, q, args...)
}

// UpdateStatus moves a request through the workflow and optionally
// replaces the internal notes.  Returns the updated row.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string, notes *string) (model.BookingRequest, error) {
	if !validStatus(status) {
		return model.BookingRequest{}, &validate.FieldError{Field: "status", Message: "Invalid booking status"}
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE booking_requests SET status=?, internal_notes=?, updated_at=? WHERE id=?",
		status, notes, r.nowFunc().UTC().Truncate(time.Second), id)
	if err != nil {
		return model.BookingRequest{}, translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.BookingRequest{}, ErrNotFound
	}
	return r.get(ctx, id)
}

// CountByStatus counts requests in the given workflow state.
func (r *BookingRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM booking_requests WHERE status=?", status).Scan(&n)
	return n, translate(err)
}

// Recent returns the n newest requests for the dashboard activity feed.
func (r *BookingRepo) Recent(ctx context.Context, n int) ([]model.BookingRequest, error) {
	return r.query(ctx, "SELECT "+bookingColumns+" FROM booking_requests ORDER BY created_at DESC LIMIT ?", n)
}

func (r *BookingRepo) get(ctx context.Context, id string) (model.BookingRequest, error) {
	rows, err := r.query(ctx, "SELECT "+bookingColumns+" FROM booking_requests WHERE id=? LIMIT 1", id)
	if err != nil {
		return model.BookingRequest{}, err
	}
	if len(rows) == 0 {
		return model.BookingRequest{}, ErrNotFound
	}
	return rows[0], nil
}

func (r *BookingRepo) query(ctx context.Context, q string, args ...any) ([]model.BookingRequest, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	var out []model.BookingRequest
	for rows.Next() {
		var b model.BookingRequest
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.EventDate, &b.Venue, &b.Attendees, &b.BudgetRange, &b.Message, &b.Status, &b.InternalNotes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, b)
	}
	return out, translate(rows.Err())
}

func validStatus(s string) bool {
	return s == model.BookingNew || s == model.BookingApproved || s == model.BookingDeclined
}
