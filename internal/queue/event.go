// Package queue defines the messages exchanged over RabbitMQ and the
// consumer that turns them into outbound email.  Producers live in the
// service package so HTTP handlers never hold a broker connection.
package queue

import "time"

// Queue names.  Both are declared durable by producer and consumer so
// whichever side starts first creates them.
const (
	BookingReceivedQueue = "booking.received"
	SignInLinkQueue      = "auth.signin"
)

// BookingReceivedEvent is published after a booking request row is
// written.  It carries everything the notification email needs so the
// consumer never reads the database.
type BookingReceivedEvent struct {
	BookingID   string     `json:"booking_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Attendees   *int       `json:"attendees,omitempty"`
	BudgetRange *string    `json:"budget_range,omitempty"`
	Message     *string    `json:"message,omitempty"`
	ReceivedAt  time.Time  `json:"received_at"`
}

// SignInLinkEvent asks the consumer to email a single-use sign-in link.
type SignInLinkEvent struct {
	Email       string    `json:"email"`
	Link        string    `json:"link"`
	ExpiresAt   time.Time `json:"expires_at"`
	RequestedAt time.Time `json:"requested_at"`
}
