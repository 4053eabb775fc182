package response

import (
	"time"

	"tour-booking/internal/data/entity"

	"github.com/stripe/stripe-go/v76"
)

type BookingTour struct {
	ID    string   `json:"id"`
	Name  string   `json:"name,omitempty"`
	Slug  string   `json:"slug,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

type BookingUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type BookingResponse struct {
	ID        string      `json:"id"`
	Tour      BookingTour `json:"tour"`
	User      BookingUser `json:"user"`
	Price     float64     `json:"price"`
	SessionID *string     `json:"session_id,omitempty"`
	Paid      bool        `json:"paid"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BookingEnvelope is the data payload for single-booking responses.
type BookingEnvelope struct {
	Booking BookingResponse `json:"booking"`
}

// BookingsEnvelope is the data payload for booking lists.
type BookingsEnvelope struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CheckoutSessionResponse mirrors {status, session}.
type CheckoutSessionResponse struct {
	Status  string                  `json:"status"`
	Session *stripe.CheckoutSession `json:"session"`
}

func BookingToResponse(b *entity.BookingDetail) BookingResponse {
	return BookingResponse{
		ID: b.ID.String(),
		Tour: BookingTour{
			ID:    b.TourID.String(),
			Name:  deref(b.TourName),
			Slug:  deref(b.TourSlug),
			Price: b.TourPrice,
		},
		User: BookingUser{
			ID:    b.UserID.String(),
			Name:  deref(b.UserName),
			Email: deref(b.UserEmail),
		},
		Price:     b.Price,
		SessionID: b.SessionID,
		Paid:      b.Paid,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.BookingDetail) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
