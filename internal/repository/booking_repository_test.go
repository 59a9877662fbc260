package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/validate"
)

func newBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := NewBookingRepo(db)
	repo.nowFunc = func() time.Time { return testNow }
	return repo, mock
}

func TestBookingCreateRejectsInvalidBeforeWrite(t *testing.T) {
	repo, mock := newBookingRepo(t)

	cases := []*model.BookingRequest{
		{Name: "", Email: "ada@example.com"},
		{Name: "Ada", Email: "not-an-email"},
	}
	for _, b := range cases {
		err := repo.Create(context.Background(), b)
		var ferr *validate.FieldError
		if !errors.As(err, &ferr) {
			t.Fatalf("expected validation error for %+v, got %v", b, err)
		}
	}
	// No expectations registered: invalid payloads must never hit the DB.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestBookingCreateForcesNewStatus(t *testing.T) {
	repo, mock := newBookingRepo(t)

	b := &model.BookingRequest{Name: "Ada", Email: "Ada@Example.com", Status: model.BookingApproved}
	mock.ExpectExec("INSERT INTO booking_requests").
		WithArgs(sqlmock.AnyArg(), "Ada", "ada@example.com", nil, nil, nil, nil, nil, nil, model.BookingNew, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if b.Status != model.BookingNew {
		t.Fatalf("status must be reset to new, got %q", b.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBookingUpdateStatusRejectsUnknownState(t *testing.T) {
	repo, mock := newBookingRepo(t)

	_, err := repo.UpdateStatus(context.Background(), "id-1", "archived", nil)
	var ferr *validate.FieldError
	if !errors.As(err, &ferr) || ferr.Field != "status" {
		t.Fatalf("expected status validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestBookingUpdateStatusNotFound(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec("UPDATE booking_requests SET status").
		WithArgs(model.BookingApproved, nil, testNow, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateStatus(context.Background(), "missing", model.BookingApproved, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingListNewestFirst(t *testing.T) {
	repo, mock := newBookingRepo(t)

	cols := []string{"id", "name", "email", "phone", "event_date", "venue", "attendees", "budget_range", "message", "status", "internal_notes", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .* FROM booking_requests ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b2", "Beta", "b@example.com", nil, nil, nil, nil, nil, nil, "new", nil, testNow, testNow).
			AddRow("b1", "Alpha", "a@example.com", nil, nil, nil, nil, nil, nil, "approved", nil, testNow.Add(-time.Hour), testNow.Add(-time.Hour)))

	got, err := repo.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b2" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestBookingListFiltersByStatus(t *testing.T) {
	repo, mock := newBookingRepo(t)

	cols := []string{"id", "name", "email", "phone", "event_date", "venue", "attendees", "budget_range", "message", "status", "internal_notes", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .* FROM booking_requests WHERE status").
		WithArgs("new").
		WillReturnRows(sqlmock.NewRows(cols))

	if _, err := repo.List(context.Background(), "new"); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
