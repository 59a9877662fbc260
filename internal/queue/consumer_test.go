package queue

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mixtapemassey/site/internal/email"
)

func testSender(t *testing.T, got *map[string]any) *email.Sender {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{"id":"msg_1"}`))
	}))
	t.Cleanup(srv.Close)
	s := email.NewSender("re_test", "notifications@example.com", "dj@example.com")
	s.Endpoint = srv.URL
	return s
}

func TestHandleBookingDeliversEmailAndAuditLine(t *testing.T) {
	t.Chdir(t.TempDir())
	var got map[string]any
	sender := testSender(t, &got)

	venue := "The Warehouse"
	when := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	ev := BookingReceivedEvent{
		BookingID:  "b-1",
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		EventDate:  &when,
		Venue:      &venue,
		ReceivedAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := handleBooking(body, sender); err != nil {
		t.Fatalf("handleBooking() error: %v", err)
	}

	if subj, _ := got["subject"].(string); subj != "New booking request from Ada Lovelace" {
		t.Errorf("subject = %q", subj)
	}
	if reply, _ := got["reply_to"].(string); reply != "ada@example.com" {
		t.Errorf("reply_to = %q", reply)
	}

	logged, err := os.ReadFile(filepath.Join("logs", "booking.log"))
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	line := string(logged)
	if !strings.Contains(line, "booking_id=b-1") || !strings.Contains(line, "event_date=2026-06-20") {
		t.Errorf("audit line = %q", line)
	}
}

func TestHandleSignInDeliversLink(t *testing.T) {
	var got map[string]any
	sender := testSender(t, &got)

	ev := SignInLinkEvent{
		Email:     "dj@example.com",
		Link:      "https://djmassey.example/api/auth/callback?code=abc123",
		ExpiresAt: time.Date(2026, 3, 1, 12, 15, 0, 0, time.UTC),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := handleSignIn(body, sender); err != nil {
		t.Fatalf("handleSignIn() error: %v", err)
	}

	html, _ := got["html"].(string)
	if !strings.Contains(html, "code=abc123") {
		t.Errorf("html = %q, want sign-in link included", html)
	}
	to, _ := got["to"].([]any)
	if len(to) != 1 || to[0] != "dj@example.com" {
		t.Errorf("to = %v", to)
	}
}

func TestHandleBookingRejectsMalformedPayload(t *testing.T) {
	var got map[string]any
	sender := testSender(t, &got)
	if err := handleBooking([]byte("{not json"), sender); err == nil {
		t.Fatal("handleBooking() accepted malformed payload")
	}
}
