package entity

import (
	"github.com/google/uuid"
)

// Booking is one paid reservation of a tour by a user. SessionID links it to
// the checkout session that paid for it; manual admin bookings may have none.
type Booking struct {
	BaseNoDelete
	TourID    uuid.UUID `db:"tour_id"`
	UserID    uuid.UUID `db:"user_id"`
	Price     float64   `db:"price"`
	SessionID *string   `db:"session_id"`
	Paid      bool      `db:"paid"`
}

// BookingDetail is a booking joined with its tour and user.
type BookingDetail struct {
	Booking
	TourName  *string  `db:"tour_name"`
	TourSlug  *string  `db:"tour_slug"`
	TourPrice *float64 `db:"tour_price"`
	UserName  *string  `db:"user_name"`
	UserEmail *string  `db:"user_email"`
}
