// Package auth is the single point of contact for session state.  Handlers
// and middleware never mint or parse tokens themselves; everything flows
// through the Service, and long-lived clients keep their picture of the
// current session fresh through the Watcher.
package auth

import "time"

// Category buckets every sign-in failure into a small set of user-facing
// classes.  Raw provider/database messages never reach the client.
type Category string

const (
	CategoryInvalidCredentials Category = "invalid_credentials"
	CategoryUnconfirmed        Category = "unconfirmed"
	CategoryNotFound           Category = "not_found"
	CategoryRateLimited        Category = "rate_limited"
	CategoryGeneric            Category = "generic"
)

// Error is a categorized auth failure.  "Session missing" is deliberately
// not an Error: session lookups report absence as a nil session with a nil
// error.
type Error struct {
	Category Category
	Err      error
}

func (e *Error) Error() string {
	switch e.Category {
	case CategoryInvalidCredentials:
		return "Invalid email or sign-in link"
	case CategoryUnconfirmed:
		return "This account is not active"
	case CategoryNotFound:
		return "No account found with this email address"
	case CategoryRateLimited:
		return "Too many sign-in attempts. Please try again later"
	}
	return "An authentication error occurred"
}

func (e *Error) Unwrap() error { return e.Err }

// Session is the authoritative description of a signed-in admin.  It is
// mirrored into the sb-access-token / sb-refresh-token cookie pair for
// server-side checks; the cookies and this struct may transiently disagree
// but reconcile on the next CurrentSession call.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	// Rotated is set when the session was rebuilt from the refresh token,
	// meaning the caller must rewrite both cookies.
	Rotated bool `json:"-"`
}

// EventKind labels a session-change notification.
type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventTokenRefreshed EventKind = "token_refreshed"
)

// Event is delivered to subscribers on every session change.  Session is
// nil for EventSignedOut.  Subscribers must not assume ordering relative
// to in-flight Service calls; the most recent event reflects the latest
// known state.
type Event struct {
	Kind    EventKind
	Session *Session
}
