package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/validate"
)

// SettingsRepo manages the singleton `settings` row.  The row is seeded by
// the schema migration; the repository only ever reads and updates it,
// never inserts or multiplies it.
type SettingsRepo struct {
	DB      *sql.DB
	nowFunc func() time.Time
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{DB: db, nowFunc: time.Now} }

// Get fetches the single settings row.
func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	var (
		s       model.Settings
		socials []byte
		genres  []byte
		logos   []byte
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,site_title,hero_heading,hero_sub,logo_url,theme,socials,rider_file_url,bio,genres,client_logos,created_at,updated_at FROM settings LIMIT 1").
		Scan(&s.ID, &s.SiteTitle, &s.HeroHeading, &s.HeroSub, &s.LogoURL, &s.Theme, &socials, &s.RiderFileURL, &s.Bio, &genres, &logos, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Settings{}, translate(err)
	}
	if len(socials) > 0 {
		if err := json.Unmarshal(socials, &s.Socials); err != nil {
			return model.Settings{}, translate(err)
		}
	}
	if len(genres) > 0 {
		if err := json.Unmarshal(genres, &s.Genres); err != nil {
			return model.Settings{}, translate(err)
		}
	}
	if len(logos) > 0 {
		if err := json.Unmarshal(logos, &s.ClientLogos); err != nil {
			return model.Settings{}, translate(err)
		}
	}
	return s, nil
}

// Update validates and rewrites the singleton row, then returns the
// persisted state.
func (r *SettingsRepo) Update(ctx context.Context, s *model.Settings) (model.Settings, error) {
	if s.Theme == "" {
		s.Theme = model.ThemeDark
	}
	if ferr := validate.Settings(s); ferr != nil {
		return model.Settings{}, ferr
	}
	socials, err := json.Marshal(orEmptyMap(s.Socials))
	if err != nil {
		return model.Settings{}, translate(err)
	}
	genres, err := json.Marshal(orEmptySlice(s.Genres))
	if err != nil {
		return model.Settings{}, translate(err)
	}
	logos, err := json.Marshal(orEmptyLogos(s.ClientLogos))
	if err != nil {
		return model.Settings{}, translate(err)
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE settings SET site_title=?,hero_heading=?,hero_sub=?,logo_url=?,theme=?,socials=?,rider_file_url=?,bio=?,genres=?,client_logos=?,updated_at=? LIMIT 1",
		s.SiteTitle, s.HeroHeading, s.HeroSub, s.LogoURL, s.Theme, socials, s.RiderFileURL, s.Bio, genres, logos,
		r.nowFunc().UTC().Truncate(time.Second))
	if err != nil {
		return model.Settings{}, translate(err)
	}
	return r.Get(ctx)
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyLogos(l []model.ClientLogo) []model.ClientLogo {
	if l == nil {
		return []model.ClientLogo{}
	}
	return l
}
