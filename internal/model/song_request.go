package model

import "time"

// SongRequest is a public track request, optionally tied to an event.
// EventID is a soft reference: nullable, not cascaded, validated only for
// UUID shape.  Corresponds to a row in the `song_requests` table.
type SongRequest struct {
	ID            string    `json:"id"`             // song_requests.id (UUID)
	RequesterName *string   `json:"requester_name"` // song_requests.requester_name
	Artist        string    `json:"artist"`         // song_requests.artist
	Track         string    `json:"track"`          // song_requests.track
	Dedication    *string   `json:"dedication"`     // song_requests.dedication
	EventID       *string   `json:"event_id"`       // song_requests.event_id, soft FK to events
	Approved      bool      `json:"approved"`       // song_requests.approved
	CreatedAt     time.Time `json:"created_at"`     // song_requests.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // song_requests.updated_at
}
