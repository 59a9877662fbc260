package model

import "time"

// MediaPhoto is a gallery image.  Press photos (IsPress) also appear in the
// downloadable press kit on the about page.  Corresponds to a row in the
// `media_photos` table.
type MediaPhoto struct {
	ID           string    `json:"id"`            // media_photos.id (UUID)
	URL          string    `json:"url"`           // media_photos.url
	AltText      *string   `json:"alt_text"`      // media_photos.alt_text
	IsPress      bool      `json:"is_press"`      // media_photos.is_press
	DisplayOrder int       `json:"display_order"` // media_photos.display_order
	CreatedAt    time.Time `json:"created_at"`    // media_photos.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // media_photos.updated_at
}
