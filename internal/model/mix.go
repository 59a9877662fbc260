package model

import "time"

// Platforms a mix can be hosted on.
const (
	PlatformSoundcloud = "soundcloud"
	PlatformMixcloud   = "mixcloud"
	PlatformYoutube    = "youtube"
)

// Mix is an embedded DJ mix shown on the home and media pages.
// DisplayOrder defines the render sequence (ascending); it is an explicit
// integer, not a timestamp.  This struct corresponds to a row in the
// `mixes` table.
type Mix struct {
	ID           string    `json:"id"`            // mixes.id (UUID)
	Title        string    `json:"title"`         // mixes.title
	Platform     string    `json:"platform"`      // mixes.platform: soundcloud | mixcloud | youtube
	URL          string    `json:"url"`           // mixes.url
	Featured     bool      `json:"featured"`      // mixes.featured
	DisplayOrder int       `json:"display_order"` // mixes.display_order
	CreatedAt    time.Time `json:"created_at"`    // mixes.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // mixes.updated_at
}
