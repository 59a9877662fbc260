package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mixtapemassey/site/internal/model"
)

// Stats are the three headline counts on the admin dashboard.
type Stats struct {
	NewBookingRequests  int `json:"new_booking_requests"`
	PendingSongRequests int `json:"pending_song_requests"`
	UpcomingEvents      int `json:"upcoming_events"`
}

// ActivityItem is one row in the dashboard's recent-activity timeline.
type ActivityItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // booking | song
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Dashboard aggregates counts and activity across the request tables.  The
// counting queries are independent; a failure of any one fails the whole
// aggregate.
type Dashboard struct {
	Bookings *BookingRepo
	Songs    *SongRepo
	Events   *EventRepo
}

func NewDashboard(b *BookingRepo, s *SongRepo, e *EventRepo) *Dashboard {
	return &Dashboard{Bookings: b, Songs: s, Events: e}
}

// Stats issues the three counting queries and combines the results.
func (d *Dashboard) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.NewBookingRequests, err = d.Bookings.CountByStatus(ctx, model.BookingNew); err != nil {
		return Stats{}, err
	}
	if st.PendingSongRequests, err = d.Songs.CountUnapproved(ctx); err != nil {
		return Stats{}, err
	}
	upcoming, err := d.Events.Upcoming(ctx, 5)
	if err != nil {
		return Stats{}, err
	}
	st.UpcomingEvents = len(upcoming)
	return st, nil
}

// RecentActivity merges the n newest booking requests and the n newest
// song requests into one timeline, newest first, truncated to n.  A plain
// two-source merge-and-truncate, nothing more.
func (d *Dashboard) RecentActivity(ctx context.Context, n int) ([]ActivityItem, error) {
	bookings, err := d.Bookings.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	songs, err := d.Songs.Recent(ctx, n)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(bookings)+len(songs))
	for _, b := range bookings {
		items = append(items, ActivityItem{
			ID:          b.ID,
			Type:        "booking",
			Description: fmt.Sprintf("New booking request from %s", b.Name),
			Status:      b.Status,
			CreatedAt:   b.CreatedAt,
		})
	}
	for _, s := range songs {
		status := "pending"
		if s.Approved {
			status = "approved"
		}
		items = append(items, ActivityItem{
			ID:          s.ID,
			Type:        "song",
			Description: fmt.Sprintf("Song request: %s - %s", s.Artist, s.Track),
			Status:      status,
			CreatedAt:   s.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > n {
		items = items[:n]
	}
	return items, nil
}
