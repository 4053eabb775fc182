package request

// CreateBookingRequest is the admin manual-booking payload.
type CreateBookingRequest struct {
	TourID    string  `json:"tour" validate:"required,uuid"`
	UserID    string  `json:"user" validate:"required,uuid"`
	Price     float64 `json:"price" validate:"gte=0"`
	Paid      *bool   `json:"paid,omitempty"`
	SessionID *string `json:"session_id,omitempty" validate:"omitempty,min=1,max=255"`
}

// UpdateBookingRequest carries only the fields to change.
type UpdateBookingRequest struct {
	TourID    *string  `json:"tour,omitempty" validate:"omitempty,uuid"`
	UserID    *string  `json:"user,omitempty" validate:"omitempty,uuid"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Paid      *bool    `json:"paid,omitempty"`
	SessionID *string  `json:"session_id,omitempty" validate:"omitempty,min=1,max=255"`
}
