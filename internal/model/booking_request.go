package model

import "time"

// BookingRequest workflow states.  Requests always enter as BookingNew;
// only an admin can move them to approved or declined.  The application
// never deletes booking rows.
const (
	BookingNew      = "new"
	BookingApproved = "approved"
	BookingDeclined = "declined"
)

// BookingRequest is a public enquiry submitted through the booking form.
// EventDate, when present, must lie strictly in the future at submission
// time.  InternalNotes are admin-only and never shown publicly.
// Corresponds to a row in the `booking_requests` table.
type BookingRequest struct {
	ID            string     `json:"id"`             // booking_requests.id (UUID)
	Name          string     `json:"name"`           // booking_requests.name
	Email         string     `json:"email"`          // booking_requests.email
	Phone         *string    `json:"phone"`          // booking_requests.phone
	EventDate     *time.Time `json:"event_date"`     // booking_requests.event_date
	Venue         *string    `json:"venue"`          // booking_requests.venue
	Attendees     *int       `json:"attendees"`      // booking_requests.attendees
	BudgetRange   *string    `json:"budget_range"`   // booking_requests.budget_range
	Message       *string    `json:"message"`        // booking_requests.message
	Status        string     `json:"status"`         // booking_requests.status: new | approved | declined
	InternalNotes *string    `json:"internal_notes"` // booking_requests.internal_notes
	CreatedAt     time.Time  `json:"created_at"`     // booking_requests.created_at
	UpdatedAt     time.Time  `json:"updated_at"`     // booking_requests.updated_at
}
