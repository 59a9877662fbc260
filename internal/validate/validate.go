// Package validate checks entity payloads before they reach the database.
// Every function is a pure check: it returns nil when the value is valid,
// or a *FieldError describing the first violated rule.  Callers in the
// repository layer treat a non-nil result as a hard precondition failure
// and never issue the write.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mixtapemassey/site/internal/model"
)

// FieldError reports the first violated rule for a payload.  Message is
// user-facing and surfaced verbatim to the submitter; Field is the path of
// the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Message }

// Length ceilings shared across entities.
const (
	maxName       = 100
	maxTitle      = 200
	maxVenue      = 200
	maxCity       = 100
	maxMessage    = 2000
	maxDedication = 500
	maxBio        = 5000
	maxHeroSub    = 500
	maxAltText    = 200

	maxAttendees = 100000
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// BookingRequest validates a public booking submission.  The future-date
// rule is strict: an event date equal to now fails.
func BookingRequest(b *model.BookingRequest, now time.Time) *FieldError {
	if strings.TrimSpace(b.Name) == "" {
		return &FieldError{"name", "Name is required"}
	}
	if len(b.Name) > maxName {
		return &FieldError{"name", "Name must be less than 100 characters"}
	}
	if !emailRe.MatchString(b.Email) {
		return &FieldError{"email", "Please enter a valid email address"}
	}
	if b.Phone != nil && *b.Phone != "" && !validPhone(*b.Phone) {
		return &FieldError{"phone", "Please enter a valid phone number"}
	}
	if b.EventDate != nil && !b.EventDate.After(now) {
		return &FieldError{"event_date", "Event date must be in the future"}
	}
	if b.Venue != nil && len(*b.Venue) > maxVenue {
		return &FieldError{"venue", "Venue name must be less than 200 characters"}
	}
	if b.Attendees != nil && (*b.Attendees < 1 || *b.Attendees > maxAttendees) {
		return &FieldError{"attendees", "Number of attendees must be between 1 and 100,000"}
	}
	if b.Message != nil && len(*b.Message) > maxMessage {
		return &FieldError{"message", "Message must be less than 2000 characters"}
	}
	if b.Status != "" && !oneOf(b.Status, model.BookingNew, model.BookingApproved, model.BookingDeclined) {
		return &FieldError{"status", "Invalid booking status"}
	}
	return nil
}

// SongRequest validates a public song request.
func SongRequest(s *model.SongRequest) *FieldError {
	if s.RequesterName != nil && len(*s.RequesterName) > maxName {
		return &FieldError{"requester_name", "Name must be less than 100 characters"}
	}
	if strings.TrimSpace(s.Artist) == "" {
		return &FieldError{"artist", "Artist name is required"}
	}
	if len(s.Artist) > maxTitle {
		return &FieldError{"artist", "Artist name must be less than 200 characters"}
	}
	if strings.TrimSpace(s.Track) == "" {
		return &FieldError{"track", "Track name is required"}
	}
	if len(s.Track) > maxTitle {
		return &FieldError{"track", "Track name must be less than 200 characters"}
	}
	if s.Dedication != nil && len(*s.Dedication) > maxDedication {
		return &FieldError{"dedication", "Dedication must be less than 500 characters"}
	}
	if s.EventID != nil && *s.EventID != "" {
		if _, err := uuid.Parse(*s.EventID); err != nil {
			return &FieldError{"event_id", "Invalid event reference"}
		}
	}
	return nil
}

// Settings validates the CMS settings payload.  Optional URL fields treat
// the empty string as absent.
func Settings(s *model.Settings) *FieldError {
	if s.SiteTitle != nil && len(*s.SiteTitle) > maxName {
		return &FieldError{"site_title", "Site title must be less than 100 characters"}
	}
	if s.HeroHeading != nil && len(*s.HeroHeading) > maxTitle {
		return &FieldError{"hero_heading", "Hero heading must be less than 200 characters"}
	}
	if s.HeroSub != nil && len(*s.HeroSub) > maxHeroSub {
		return &FieldError{"hero_sub", "Hero subtitle must be less than 500 characters"}
	}
	if ferr := optionalURL("logo_url", s.LogoURL); ferr != nil {
		return ferr
	}
	if !oneOf(s.Theme, model.ThemeDark, model.ThemeLight) {
		return &FieldError{"theme", "Theme must be dark or light"}
	}
	for name, link := range s.Socials {
		if !absoluteURL(link) {
			return &FieldError{"socials." + name, "Please enter a valid URL"}
		}
	}
	if ferr := optionalURL("rider_file_url", s.RiderFileURL); ferr != nil {
		return ferr
	}
	if s.Bio != nil && len(*s.Bio) > maxBio {
		return &FieldError{"bio", "Bio must be less than 5000 characters"}
	}
	for i, logo := range s.ClientLogos {
		if !absoluteURL(logo.URL) {
			return &FieldError{fmt.Sprintf("client_logos.%d.url", i), "Please enter a valid URL"}
		}
	}
	return nil
}

// Mix validates a mix payload.
func Mix(m *model.Mix) *FieldError {
	if strings.TrimSpace(m.Title) == "" {
		return &FieldError{"title", "Title is required"}
	}
	if len(m.Title) > maxTitle {
		return &FieldError{"title", "Title must be less than 200 characters"}
	}
	if !oneOf(m.Platform, model.PlatformSoundcloud, model.PlatformMixcloud, model.PlatformYoutube) {
		return &FieldError{"platform", "Platform must be soundcloud, mixcloud or youtube"}
	}
	if !absoluteURL(m.URL) {
		return &FieldError{"url", "Please enter a valid URL"}
	}
	if m.DisplayOrder < 0 {
		return &FieldError{"display_order", "Display order must not be negative"}
	}
	return nil
}

// Event validates an event payload.  The cross-field rule attaches its
// error to end_at, matching where the admin form shows it.
func Event(e *model.Event) *FieldError {
	if strings.TrimSpace(e.Title) == "" {
		return &FieldError{"title", "Title is required"}
	}
	if len(e.Title) > maxTitle {
		return &FieldError{"title", "Title must be less than 200 characters"}
	}
	if e.StartAt.IsZero() {
		return &FieldError{"start_at", "Please enter a valid date and time"}
	}
	if e.EndAt != nil && !e.EndAt.After(e.StartAt) {
		return &FieldError{"end_at", "End time must be after start time"}
	}
	if e.Venue != nil && len(*e.Venue) > maxVenue {
		return &FieldError{"venue", "Venue name must be less than 200 characters"}
	}
	if e.City != nil && len(*e.City) > maxCity {
		return &FieldError{"city", "City name must be less than 100 characters"}
	}
	if !oneOf(e.Status, model.EventScheduled, model.EventCompleted, model.EventCancelled) {
		return &FieldError{"status", "Invalid event status"}
	}
	return nil
}

// MediaPhoto validates a gallery photo payload.
func MediaPhoto(p *model.MediaPhoto) *FieldError {
	if !absoluteURL(p.URL) {
		return &FieldError{"url", "Please enter a valid URL"}
	}
	if p.AltText != nil && len(*p.AltText) > maxAltText {
		return &FieldError{"alt_text", "Alt text must be less than 200 characters"}
	}
	if p.DisplayOrder < 0 {
		return &FieldError{"display_order", "Display order must not be negative"}
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// validPhone strips common separators and checks the remaining digits.
func validPhone(v string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(v)
	return phoneRe.MatchString(cleaned)
}

// absoluteURL accepts only parseable http(s) URLs with a host.
func absoluteURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// optionalURL treats nil and "" as absent.
func optionalURL(field string, v *string) *FieldError {
	if v == nil || *v == "" {
		return nil
	}
	if !absoluteURL(*v) {
		return &FieldError{field, "Please enter a valid URL"}
	}
	return nil
}
