package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/mixtapemassey/site/internal/model"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validBooking() *model.BookingRequest {
	return &model.BookingRequest{Name: "Ada", Email: "ada@example.com"}
}

func TestBookingRequestRequiredFields(t *testing.T) {
	b := validBooking()
	b.Name = "   "
	ferr := BookingRequest(b, now)
	if ferr == nil || ferr.Field != "name" {
		t.Fatalf("expected error on name, got %+v", ferr)
	}

	b = validBooking()
	b.Email = "not-an-email"
	ferr = BookingRequest(b, now)
	if ferr == nil || ferr.Field != "email" {
		t.Fatalf("expected error on email, got %+v", ferr)
	}

	if ferr := BookingRequest(validBooking(), now); ferr != nil {
		t.Fatalf("valid booking rejected: %v", ferr)
	}
}

func TestBookingRequestAttendeeBounds(t *testing.T) {
	cases := []struct {
		attendees int
		ok        bool
	}{
		{0, false},
		{1, true},
		{100000, true},
		{100001, false},
	}
	for _, tc := range cases {
		b := validBooking()
		b.Attendees = intPtr(tc.attendees)
		ferr := BookingRequest(b, now)
		if tc.ok && ferr != nil {
			t.Fatalf("attendees=%d: unexpected error %v", tc.attendees, ferr)
		}
		if !tc.ok && (ferr == nil || ferr.Field != "attendees") {
			t.Fatalf("attendees=%d: expected attendees error, got %+v", tc.attendees, ferr)
		}
	}
}

func TestBookingRequestEventDateStrictlyFuture(t *testing.T) {
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	b := validBooking()
	b.EventDate = &yesterday
	if ferr := BookingRequest(b, now); ferr == nil || ferr.Field != "event_date" {
		t.Fatalf("yesterday should fail, got %+v", ferr)
	}

	// Equal to now fails: the rule is strict greater-than.
	b = validBooking()
	exactlyNow := now
	b.EventDate = &exactlyNow
	if ferr := BookingRequest(b, now); ferr == nil || ferr.Field != "event_date" {
		t.Fatalf("event_date == now should fail, got %+v", ferr)
	}

	b = validBooking()
	b.EventDate = &tomorrow
	if ferr := BookingRequest(b, now); ferr != nil {
		t.Fatalf("tomorrow should pass, got %v", ferr)
	}
}

func TestBookingRequestLengthCeilings(t *testing.T) {
	b := validBooking()
	b.Name = strings.Repeat("a", 101)
	if ferr := BookingRequest(b, now); ferr == nil || ferr.Field != "name" {
		t.Fatalf("expected name length error, got %+v", ferr)
	}

	b = validBooking()
	b.Message = strPtr(strings.Repeat("m", 2001))
	if ferr := BookingRequest(b, now); ferr == nil || ferr.Field != "message" {
		t.Fatalf("expected message length error, got %+v", ferr)
	}
}

func TestBookingRequestPhone(t *testing.T) {
	b := validBooking()
	b.Phone = strPtr("+1 (555) 123-4567")
	if ferr := BookingRequest(b, now); ferr != nil {
		t.Fatalf("formatted phone rejected: %v", ferr)
	}
	b.Phone = strPtr("call me maybe")
	if ferr := BookingRequest(b, now); ferr == nil || ferr.Field != "phone" {
		t.Fatalf("expected phone error, got %+v", ferr)
	}
}

func TestSongRequestRequiredFields(t *testing.T) {
	s := &model.SongRequest{Artist: "Daft Punk", Track: "Around the World"}
	if ferr := SongRequest(s); ferr != nil {
		t.Fatalf("valid song request rejected: %v", ferr)
	}
	s.Artist = ""
	if ferr := SongRequest(s); ferr == nil || ferr.Field != "artist" {
		t.Fatalf("expected artist error, got %+v", ferr)
	}
	s.Artist = "Daft Punk"
	s.Track = ""
	if ferr := SongRequest(s); ferr == nil || ferr.Field != "track" {
		t.Fatalf("expected track error, got %+v", ferr)
	}
	s.Track = "Around the World"
	s.EventID = strPtr("not-a-uuid")
	if ferr := SongRequest(s); ferr == nil || ferr.Field != "event_id" {
		t.Fatalf("expected event_id error, got %+v", ferr)
	}
}

func TestEventEndAfterStart(t *testing.T) {
	start := now.Add(48 * time.Hour)
	before := start.Add(-time.Hour)
	equal := start
	after := start.Add(2 * time.Hour)

	for _, end := range []*time.Time{&before, &equal} {
		e := &model.Event{Title: "Club Night", StartAt: start, EndAt: end, Status: model.EventScheduled}
		ferr := Event(e)
		if ferr == nil || ferr.Field != "end_at" {
			t.Fatalf("end_at <= start_at must fail on end_at, got %+v", ferr)
		}
	}

	e := &model.Event{Title: "Club Night", StartAt: start, EndAt: &after, Status: model.EventScheduled}
	if ferr := Event(e); ferr != nil {
		t.Fatalf("valid event rejected: %v", ferr)
	}
}

func TestEventStatusEnum(t *testing.T) {
	e := &model.Event{Title: "Club Night", StartAt: now, Status: "postponed"}
	if ferr := Event(e); ferr == nil || ferr.Field != "status" {
		t.Fatalf("expected status error, got %+v", ferr)
	}
}

func TestMixPlatformAndURL(t *testing.T) {
	m := &model.Mix{Title: "Test Mix", Platform: model.PlatformYoutube, URL: "https://youtube.com/watch?v=abc12345678"}
	if ferr := Mix(m); ferr != nil {
		t.Fatalf("valid mix rejected: %v", ferr)
	}
	m.Platform = "spotify"
	if ferr := Mix(m); ferr == nil || ferr.Field != "platform" {
		t.Fatalf("expected platform error, got %+v", ferr)
	}
	m.Platform = model.PlatformYoutube
	m.URL = "not a url"
	if ferr := Mix(m); ferr == nil || ferr.Field != "url" {
		t.Fatalf("expected url error, got %+v", ferr)
	}
	m.URL = "ftp://youtube.com/watch"
	if ferr := Mix(m); ferr == nil || ferr.Field != "url" {
		t.Fatalf("non-http scheme must fail, got %+v", ferr)
	}
}

func TestSettingsOptionalURLFields(t *testing.T) {
	s := &model.Settings{Theme: model.ThemeDark, LogoURL: strPtr("")}
	if ferr := Settings(s); ferr != nil {
		t.Fatalf("empty optional URL must be treated as absent, got %v", ferr)
	}
	s.LogoURL = strPtr("nope")
	if ferr := Settings(s); ferr == nil || ferr.Field != "logo_url" {
		t.Fatalf("expected logo_url error, got %+v", ferr)
	}
	s.LogoURL = nil
	s.Socials = map[string]string{"instagram": "not-a-url"}
	if ferr := Settings(s); ferr == nil || ferr.Field != "socials.instagram" {
		t.Fatalf("expected socials error, got %+v", ferr)
	}
	s.Socials = nil
	s.Theme = "neon"
	if ferr := Settings(s); ferr == nil || ferr.Field != "theme" {
		t.Fatalf("expected theme error, got %+v", ferr)
	}
}

func TestMediaPhoto(t *testing.T) {
	p := &model.MediaPhoto{URL: "https://cdn.example.com/img.jpg"}
	if ferr := MediaPhoto(p); ferr != nil {
		t.Fatalf("valid photo rejected: %v", ferr)
	}
	p.AltText = strPtr(strings.Repeat("x", 201))
	if ferr := MediaPhoto(p); ferr == nil || ferr.Field != "alt_text" {
		t.Fatalf("expected alt_text error, got %+v", ferr)
	}
}
