package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/queue"
	"github.com/mixtapemassey/site/internal/spam"
	"github.com/mixtapemassey/site/internal/validate"
)

// fakeBookingRepo records Create calls and scripts the result.
type fakeBookingRepo struct {
	created *model.BookingRequest
	err     error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *model.BookingRequest) error {
	if f.err != nil {
		return f.err
	}
	b.ID = "b-1"
	b.Status = model.BookingNew
	f.created = b
	return nil
}

// spamServer scripts the siteverify response.
func spamServer(t *testing.T, success bool) *spam.Verifier {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if success {
			w.Write([]byte(`{"success":true}`))
		} else {
			w.Write([]byte(`{"success":false}`))
		}
	}))
	t.Cleanup(srv.Close)
	v := spam.NewVerifier("secret")
	v.Endpoint = srv.URL
	return v
}

func postBooking(t *testing.T, h *BookingHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.CreateBooking(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	return rec
}

func TestCreateBookingSuccessPublishesEvent(t *testing.T) {
	repo := &fakeBookingRepo{}
	var published *queue.BookingReceivedEvent
	h := &BookingHandler{
		Repo: repo,
		Spam: spamServer(t, true),
		Publish: func(ctx context.Context, evt queue.BookingReceivedEvent) error {
			published = &evt
			return nil
		},
	}

	rec := postBooking(t, h, `{"name":"Ada","email":"ada@example.com","spam_token":"tok"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if repo.created == nil {
		t.Fatal("booking was not stored")
	}
	if published == nil {
		t.Fatal("notification event was not published")
	}
	if published.BookingID != "b-1" || published.Name != "Ada" {
		t.Fatalf("published event = %+v", published)
	}
}

func TestCreateBookingSpamFailureSkipsStore(t *testing.T) {
	repo := &fakeBookingRepo{}
	h := &BookingHandler{Repo: repo, Spam: spamServer(t, false)}

	rec := postBooking(t, h, `{"name":"Ada","email":"ada@example.com","spam_token":"tok"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed spam verification") {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if repo.created != nil {
		t.Fatal("spam-rejected booking reached the repository")
	}
}

func TestCreateBookingMissingTokenFails(t *testing.T) {
	repo := &fakeBookingRepo{}
	// No secret configured, but an absent token still fails the gate.
	h := &BookingHandler{Repo: repo, Spam: spam.NewVerifier("")}

	rec := postBooking(t, h, `{"name":"Ada","email":"ada@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if repo.created != nil {
		t.Fatal("tokenless booking reached the repository")
	}
}

func TestCreateBookingValidationErrorSurfacesField(t *testing.T) {
	repo := &fakeBookingRepo{err: &validate.FieldError{Field: "email", Message: "Please enter a valid email address"}}
	h := &BookingHandler{Repo: repo, Spam: spamServer(t, true)}

	rec := postBooking(t, h, `{"name":"Ada","email":"bad","spam_token":"tok"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Please enter a valid email address") || !strings.Contains(body, `"field":"email"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestCreateBookingPublishFailureStillSucceeds(t *testing.T) {
	repo := &fakeBookingRepo{}
	h := &BookingHandler{
		Repo: repo,
		Spam: spamServer(t, true),
		Publish: func(ctx context.Context, evt queue.BookingReceivedEvent) error {
			return context.DeadlineExceeded
		},
	}

	rec := postBooking(t, h, `{"name":"Ada","email":"ada@example.com","spam_token":"tok"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 despite publish failure", rec.Code)
	}
}
