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

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMixRepo(t *testing.T) (*MixRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := NewMixRepo(db)
	repo.nowFunc = func() time.Time { return testNow }
	return repo, mock
}

func TestMixCreateAndListRoundTrip(t *testing.T) {
	repo, mock := newMixRepo(t)

	m := &model.Mix{
		Title:        "Test Mix",
		Platform:     model.PlatformYoutube,
		URL:          "https://youtube.com/watch?v=abc12345678",
		Featured:     true,
		DisplayOrder: 1,
	}

	mock.ExpectExec("INSERT INTO mixes").
		WithArgs(sqlmock.AnyArg(), "Test Mix", "youtube", "https://youtube.com/watch?v=abc12345678", true, 1, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("Create() must fill the id")
	}

	cols := []string{"id", "title", "platform", "url", "featured", "display_order", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .* FROM mixes ORDER BY display_order ASC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(m.ID, m.Title, m.Platform, m.URL, m.Featured, m.DisplayOrder, m.CreatedAt, m.UpdatedAt))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 mix, got %d", len(got))
	}
	if got[0] != *m {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got[0], *m)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMixCreateValidatesBeforeWrite(t *testing.T) {
	repo, mock := newMixRepo(t)

	m := &model.Mix{Title: "Test Mix", Platform: "spotify", URL: "https://example.com/x"}
	err := repo.Create(context.Background(), m)
	var ferr *validate.FieldError
	if !errors.As(err, &ferr) || ferr.Field != "platform" {
		t.Fatalf("expected platform validation error, got %v", err)
	}
	// No SQL expectations were registered: the write must never reach the DB.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestMixReorderTransactional(t *testing.T) {
	repo, mock := newMixRepo(t)

	updates := []OrderUpdate{
		{ID: "a", DisplayOrder: 2},
		{ID: "b", DisplayOrder: 3},
		{ID: "c", DisplayOrder: 1},
	}

	mock.ExpectBegin()
	for _, u := range updates {
		mock.ExpectExec("UPDATE mixes SET display_order").
			WithArgs(u.DisplayOrder, testNow, u.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := repo.Reorder(context.Background(), updates); err != nil {
		t.Fatalf("Reorder() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMixReorderRollsBackOnFailure(t *testing.T) {
	repo, mock := newMixRepo(t)

	updates := []OrderUpdate{
		{ID: "a", DisplayOrder: 2},
		{ID: "b", DisplayOrder: 3},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE mixes SET display_order").
		WithArgs(2, testNow, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE mixes SET display_order").
		WithArgs(3, testNow, "b").
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	if err := repo.Reorder(context.Background(), updates); err == nil {
		t.Fatalf("expected error from failed reorder")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMixUpdateNotFound(t *testing.T) {
	repo, mock := newMixRepo(t)

	m := &model.Mix{ID: "missing", Title: "T", Platform: model.PlatformMixcloud, URL: "https://mixcloud.com/a/b"}
	mock.ExpectExec("UPDATE mixes SET").
		WithArgs(m.Title, m.Platform, m.URL, m.Featured, m.DisplayOrder, testNow, m.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), m); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
