package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/model"
	"github.com/mixtapemassey/site/internal/queue"
	"github.com/mixtapemassey/site/internal/spam"
)

type bookingCreator interface {
	Create(ctx context.Context, b *model.BookingRequest) error
}

// BookingHandler accepts public booking enquiries.  Submissions pass the
// spam gate, then validation inside the repository; accepted rows fan
// out a notification event to the queue.
type BookingHandler struct {
	Repo    bookingCreator
	Spam    *spam.Verifier
	Publish func(ctx context.Context, evt queue.BookingReceivedEvent) error
	Prod    bool
}

// CreateBooking handles POST /api/booking.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req struct {
		Name        string     `json:"name"`
		Email       string     `json:"email"`
		Phone       *string    `json:"phone"`
		EventDate   *time.Time `json:"event_date"`
		Venue       *string    `json:"venue"`
		Attendees   *int       `json:"attendees"`
		BudgetRange *string    `json:"budget_range"`
		Message     *string    `json:"message"`
		SpamToken   string     `json:"spam_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if !h.Spam.Verify(c.Request().Context(), req.SpamToken, c.RealIP()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed spam verification"})
	}

	booking := model.BookingRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		EventDate:   req.EventDate,
		Venue:       req.Venue,
		Attendees:   req.Attendees,
		BudgetRange: req.BudgetRange,
		Message:     req.Message,
	}
	if err := h.Repo.Create(c.Request().Context(), &booking); err != nil {
		return writeError(c, err, h.Prod)
	}

	// The row is committed; a broker outage only costs the email.
	if h.Publish != nil {
		evt := queue.BookingReceivedEvent{
			BookingID:   booking.ID,
			Name:        booking.Name,
			Email:       booking.Email,
			Phone:       booking.Phone,
			EventDate:   booking.EventDate,
			Venue:       booking.Venue,
			Attendees:   booking.Attendees,
			BudgetRange: booking.BudgetRange,
			Message:     booking.Message,
			ReceivedAt:  booking.CreatedAt,
		}
		if err := h.Publish(c.Request().Context(), evt); err != nil {
			log.Printf("booking: publish notification failed: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": booking.ID})
}
