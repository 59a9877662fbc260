package model

import "time"

// Theme values accepted for Settings.Theme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ClientLogo is one entry in the client-logo strip on the about page.
type ClientLogo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Alt  string `json:"alt,omitempty"`
}

// Settings is the CMS-managed site configuration.  Exactly one row exists
// in the `settings` table; the repository always reads and updates that
// single row.  Socials, Genres and ClientLogos are stored as JSON columns.
type Settings struct {
	ID           string            `json:"id"`             // settings.id (UUID)
	SiteTitle    *string           `json:"site_title"`     // settings.site_title
	HeroHeading  *string           `json:"hero_heading"`   // settings.hero_heading
	HeroSub      *string           `json:"hero_sub"`       // settings.hero_sub
	LogoURL      *string           `json:"logo_url"`       // settings.logo_url
	Theme        string            `json:"theme"`          // settings.theme: dark | light
	Socials      map[string]string `json:"socials"`        // settings.socials (JSON)
	RiderFileURL *string           `json:"rider_file_url"` // settings.rider_file_url
	Bio          *string           `json:"bio"`            // settings.bio
	Genres       []string          `json:"genres"`         // settings.genres (JSON)
	ClientLogos  []ClientLogo      `json:"client_logos"`   // settings.client_logos (JSON)
	CreatedAt    time.Time         `json:"created_at"`     // settings.created_at
	UpdatedAt    time.Time         `json:"updated_at"`     // settings.updated_at
}
