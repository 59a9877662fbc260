package model

import "time"

// Event lifecycle states.
const (
	EventScheduled = "scheduled"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// Event is a gig.  Public events with a future StartAt appear in the
// "upcoming" strip on the home page.  EndAt is optional; when present it
// must be strictly after StartAt.  Corresponds to a row in the `events`
// table.
type Event struct {
	ID        string     `json:"id"`         // events.id (UUID)
	Title     string     `json:"title"`      // events.title
	StartAt   time.Time  `json:"start_at"`   // events.start_at
	EndAt     *time.Time `json:"end_at"`     // events.end_at, nullable
	Venue     *string    `json:"venue"`      // events.venue
	City      *string    `json:"city"`       // events.city
	IsPublic  bool       `json:"is_public"`  // events.is_public
	Status    string     `json:"status"`     // events.status: scheduled | completed | cancelled
	CreatedAt time.Time  `json:"created_at"` // events.created_at
	UpdatedAt time.Time  `json:"updated_at"` // events.updated_at
}
