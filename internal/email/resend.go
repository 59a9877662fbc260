// Package email sends transactional mail through the Resend HTTP API.
// Without an API key the sender is disabled and every send is a silent
// no-op, which keeps local development working without credentials.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.resend.com/emails"

// Sender posts messages to Resend.
type Sender struct {
	APIKey   string
	From     string
	To       string
	Endpoint string
	Client   *http.Client
}

func NewSender(apiKey, from, to string) *Sender {
	return &Sender{
		APIKey:   apiKey,
		From:     from,
		To:       to,
		Endpoint: defaultEndpoint,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether sends will actually reach Resend.
func (s *Sender) Enabled() bool { return s.APIKey != "" && s.To != "" }

// BookingNotice carries the booking fields rendered into the admin
// notification email.
type BookingNotice struct {
	Name        string
	Email       string
	Phone       *string
	EventDate   *time.Time
	Venue       *string
	Attendees   *int
	BudgetRange *string
	Message     *string
}

// SignInNotice carries a magic sign-in link for delivery.
type SignInNotice struct {
	Email     string
	Link      string
	ExpiresAt time.Time
}

type message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendBookingNotification emails the admin about a new booking request.
// All user-supplied values are HTML-escaped.
func (s *Sender) SendBookingNotification(ctx context.Context, evt BookingNotice) error {
	if !s.Enabled() {
		return nil
	}

	var b strings.Builder
	b.WriteString("<h2>New Booking Request</h2>")
	row(&b, "Name", evt.Name)
	row(&b, "Email", evt.Email)
	if evt.Phone != nil {
		row(&b, "Phone", *evt.Phone)
	}
	if evt.EventDate != nil {
		row(&b, "Event Date", evt.EventDate.Format("Monday, January 2, 2006"))
	}
	if evt.Venue != nil {
		row(&b, "Venue", *evt.Venue)
	}
	if evt.Attendees != nil {
		row(&b, "Expected Attendees", fmt.Sprintf("%d", *evt.Attendees))
	}
	if evt.BudgetRange != nil {
		row(&b, "Budget", *evt.BudgetRange)
	}
	if evt.Message != nil && *evt.Message != "" {
		b.WriteString("<h3>Message</h3><p>" + html.EscapeString(*evt.Message) + "</p>")
	}

	return s.post(ctx, message{
		From:    s.From,
		To:      []string{s.To},
		ReplyTo: evt.Email,
		Subject: "New booking request from " + evt.Name,
		HTML:    b.String(),
	})
}

// SendSignInLink emails a single-use admin sign-in link.
func (s *Sender) SendSignInLink(ctx context.Context, evt SignInNotice) error {
	if s.APIKey == "" {
		return nil
	}

	var b strings.Builder
	b.WriteString("<h2>Sign in to the admin dashboard</h2>")
	b.WriteString(`<p><a href="` + html.EscapeString(evt.Link) + `">Click here to sign in</a></p>`)
	b.WriteString("<p>This link expires at " + evt.ExpiresAt.UTC().Format("15:04 MST on January 2, 2006") + " and can be used once.</p>")
	b.WriteString("<p>If you did not request this, you can ignore this email.</p>")

	return s.post(ctx, message{
		From:    s.From,
		To:      []string{evt.Email},
		Subject: "Your sign-in link",
		HTML:    b.String(),
	})
}

func row(b *strings.Builder, label, value string) {
	b.WriteString("<p><strong>" + label + ":</strong> " + html.EscapeString(value) + "</p>")
}

func (s *Sender) post(ctx context.Context, msg message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding email: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
