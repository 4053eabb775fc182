package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type BookingService interface {
	// Payment flow
	CreateBookingFromSession(ctx context.Context, session *stripe.CheckoutSession) (*entity.Booking, error)

	// Owner
	GetMyBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)

	// Admin
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// CreateBookingFromSession persists the paid booking described by a completed
// checkout session. A second call for the same session returns
// ErrDuplicateSession and writes nothing.
func (s *bookingService) CreateBookingFromSession(ctx context.Context, session *stripe.CheckoutSession) (*entity.Booking, error) {
	if session == nil {
		return nil, ErrMissingMetadata
	}

	tourRef := session.Metadata[payment.MetadataTour]
	userRef := session.Metadata[payment.MetadataUser]
	if tourRef == "" || userRef == "" {
		return nil, fmt.Errorf("%w: session %s", ErrMissingMetadata, session.ID)
	}

	tourID, err := uuid.Parse(tourRef)
	if err != nil {
		return nil, fmt.Errorf("%w: tour %q in session %s", ErrInvalidMetadata, tourRef, session.ID)
	}
	userID, err := uuid.Parse(userRef)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q in session %s", ErrInvalidMetadata, userRef, session.ID)
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TourID: tourID,
		UserID: userID,
		Price:  utils.FromMinorUnits(session.AmountTotal),
		Paid:   true,
	}
	if session.ID != "" {
		booking.SessionID = &session.ID
	}

	created, err := s.repo.Booking.CreateForSession(ctx, booking)
	if err != nil {
		return nil, err
	}
	if !created {
		s.log.Info("Booking already recorded for session", zap.String("session_id", session.ID))
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSession, session.ID)
	}

	s.log.Info("Booking created from checkout session",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", session.ID),
		zap.String("tour_id", tourID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("price", booking.Price),
	)

	return booking, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TourID:    uuid.MustParse(req.TourID),
		UserID:    uuid.MustParse(req.UserID),
		Price:     req.Price,
		SessionID: req.SessionID,
		Paid:      true,
	}
	if req.Paid != nil {
		booking.Paid = *req.Paid
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, mapWriteError(err, booking.SessionID)
	}

	s.log.Info("Booking created", zap.String("booking_id", booking.ID.String()))

	return s.GetBooking(ctx, booking.ID.String())
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}

	// The merged record must pass the same rules as a new one.
	merged := request.CreateBookingRequest{
		TourID:    existing.TourID.String(),
		UserID:    existing.UserID.String(),
		Price:     existing.Price,
		Paid:      &existing.Paid,
		SessionID: existing.SessionID,
	}
	if req.TourID != nil {
		merged.TourID = *req.TourID
	}
	if req.UserID != nil {
		merged.UserID = *req.UserID
	}
	if req.Price != nil {
		merged.Price = *req.Price
	}
	if req.Paid != nil {
		merged.Paid = req.Paid
	}
	if req.SessionID != nil {
		merged.SessionID = req.SessionID
	}
	if errs := utils.ValidateStruct(merged); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        existing.ID,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now(),
		},
		TourID:    uuid.MustParse(merged.TourID),
		UserID:    uuid.MustParse(merged.UserID),
		Price:     merged.Price,
		SessionID: merged.SessionID,
		Paid:      *merged.Paid,
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
		}
		return nil, mapWriteError(err, booking.SessionID)
	}

	s.log.Info("Booking updated", zap.String("booking_id", bookingID))

	return s.GetBooking(ctx, bookingID)
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := parseID("booking", bookingID)
	if err != nil {
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
		}
		return err
	}

	return nil
}

// ==================== HELPER METHODS ====================

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", ErrInvalidID, kind, raw)
	}
	return id, nil
}

func mapWriteError(err error, sessionID *string) error {
	switch {
	case errors.Is(err, repository.ErrReferenceNotFound):
		return fmt.Errorf("%w: %v", ErrReferenceNotFound, err)
	case errors.Is(err, repository.ErrDuplicate) && sessionID != nil:
		return fmt.Errorf("%w: %s", ErrDuplicateSession, *sessionID)
	default:
		return err
	}
}
