package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func captureServer(t *testing.T, status int, got *message) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer re_test" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(status)
		w.Write([]byte(`{"id":"msg_1"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSender(url string) *Sender {
	s := NewSender("re_test", "Bookings <notifications@example.com>", "dj@example.com")
	s.Endpoint = url
	return s
}

func TestSendBookingNotification(t *testing.T) {
	var got message
	srv := captureServer(t, http.StatusOK, &got)
	s := testSender(srv.URL)

	venue := "The Warehouse"
	attendees := 250
	msg := `Looking forward <script>alert("x")</script>`
	when := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	evt := BookingNotice{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		EventDate: &when,
		Venue:     &venue,
		Attendees: &attendees,
		Message:   &msg,
	}
	if err := s.SendBookingNotification(context.Background(), evt); err != nil {
		t.Fatalf("SendBookingNotification() error: %v", err)
	}

	if got.Subject != "New booking request from Ada Lovelace" {
		t.Errorf("subject = %q", got.Subject)
	}
	if got.ReplyTo != "ada@example.com" {
		t.Errorf("reply_to = %q", got.ReplyTo)
	}
	if len(got.To) != 1 || got.To[0] != "dj@example.com" {
		t.Errorf("to = %v", got.To)
	}
	if strings.Contains(got.HTML, "<script>") {
		t.Error("user message was not HTML-escaped")
	}
	if !strings.Contains(got.HTML, "&lt;script&gt;") {
		t.Error("escaped message missing from body")
	}
	if !strings.Contains(got.HTML, "The Warehouse") {
		t.Error("venue missing from body")
	}
}

func TestSendSignInLink(t *testing.T) {
	var got message
	srv := captureServer(t, http.StatusOK, &got)
	s := testSender(srv.URL)

	evt := SignInNotice{
		Email:     "dj@example.com",
		Link:      "https://djmassey.example/api/auth/callback?code=abc123",
		ExpiresAt: time.Date(2026, 3, 1, 12, 15, 0, 0, time.UTC),
	}
	if err := s.SendSignInLink(context.Background(), evt); err != nil {
		t.Fatalf("SendSignInLink() error: %v", err)
	}
	if len(got.To) != 1 || got.To[0] != "dj@example.com" {
		t.Errorf("to = %v", got.To)
	}
	if !strings.Contains(got.HTML, "code=abc123") {
		t.Error("sign-in link missing from body")
	}
}

func TestSendDisabledIsNoOp(t *testing.T) {
	s := NewSender("", "from@example.com", "to@example.com")
	s.Endpoint = "http://127.0.0.1:1"
	if s.Enabled() {
		t.Fatal("Enabled() = true without API key")
	}
	if err := s.SendBookingNotification(context.Background(), BookingNotice{}); err != nil {
		t.Fatalf("disabled send returned error: %v", err)
	}
}

func TestSendAPIErrorSurfaces(t *testing.T) {
	var got message
	srv := captureServer(t, http.StatusUnprocessableEntity, &got)
	s := testSender(srv.URL)
	err := s.SendBookingNotification(context.Background(), BookingNotice{Name: "x", Email: "x@example.com"})
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Fatalf("error = %v, want 422 surfaced", err)
	}
}
