package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func newBookingService(bookings *mockBookingRepo) BookingService {
	return NewBookingService(&repository.Repository{Booking: bookings}, zap.NewNop())
}

func completedSession(tourID, userID string, amount int64) *stripe.CheckoutSession {
	metadata := map[string]string{}
	if tourID != "" {
		metadata[payment.MetadataTour] = tourID
	}
	if userID != "" {
		metadata[payment.MetadataUser] = userID
	}
	return &stripe.CheckoutSession{
		ID:          "cs_test_" + uuid.NewString()[:8],
		AmountTotal: amount,
		Metadata:    metadata,
	}
}

func detailFrom(b *entity.Booking) *entity.BookingDetail {
	return &entity.BookingDetail{Booking: *b}
}

func TestBookingService_CreateBookingFromSession(t *testing.T) {
	ctx := context.Background()
	tourID, userID := uuid.New(), uuid.New()

	t.Run("records a paid booking priced from the session total", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		session := completedSession(tourID.String(), userID.String(), 4500)

		bookings.On("CreateForSession", ctx, mock.MatchedBy(func(b *entity.Booking) bool {
			return b.TourID == tourID &&
				b.UserID == userID &&
				b.Price == 45 &&
				b.Paid &&
				b.SessionID != nil && *b.SessionID == session.ID
		})).Return(true, nil).Once()

		booking, err := svc.CreateBookingFromSession(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, 45.0, booking.Price)
		assert.True(t, booking.Paid)
		bookings.AssertExpectations(t)
	})

	t.Run("second delivery of the same session writes nothing", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		session := completedSession(tourID.String(), userID.String(), 4500)

		bookings.On("CreateForSession", ctx, mock.Anything).Return(false, nil).Once()

		booking, err := svc.CreateBookingFromSession(ctx, session)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, ErrDuplicateSession)
	})

	t.Run("missing metadata is reported, not written", func(t *testing.T) {
		cases := map[string]*stripe.CheckoutSession{
			"no tour":     completedSession("", userID.String(), 4500),
			"no user":     completedSession(tourID.String(), "", 4500),
			"no metadata": {ID: "cs_test_empty", AmountTotal: 4500},
		}

		for name, session := range cases {
			t.Run(name, func(t *testing.T) {
				bookings := new(mockBookingRepo)
				svc := newBookingService(bookings)

				_, err := svc.CreateBookingFromSession(ctx, session)
				assert.ErrorIs(t, err, ErrMissingMetadata)
				bookings.AssertNotCalled(t, "CreateForSession", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("non uuid metadata is invalid", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)

		_, err := svc.CreateBookingFromSession(ctx, completedSession("5c88fa8cf4afda39709c2955", userID.String(), 4500))
		assert.ErrorIs(t, err, ErrInvalidMetadata)
		bookings.AssertNotCalled(t, "CreateForSession", mock.Anything, mock.Anything)
	})

	t.Run("persistence errors propagate", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		dbErr := errors.New("connection refused")

		bookings.On("CreateForSession", ctx, mock.Anything).Return(false, dbErr)

		_, err := svc.CreateBookingFromSession(ctx, completedSession(tourID.String(), userID.String(), 4500))
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestBookingService_Admin(t *testing.T) {
	ctx := context.Background()

	existing := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		TourID:       uuid.New(),
		UserID:       uuid.New(),
		Price:        497,
		Paid:         true,
	}

	t.Run("get unknown booking", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		id := uuid.New()

		bookings.On("FindByID", ctx, id).Return(nil, nil)

		_, err := svc.GetBooking(ctx, id.String())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("get with malformed id", func(t *testing.T) {
		svc := newBookingService(new(mockBookingRepo))

		_, err := svc.GetBooking(ctx, "123")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("delete unknown booking", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		id := uuid.New()

		bookings.On("Delete", ctx, id).Return(fmt.Errorf("delete booking %s: %w", id, repository.ErrNotFound))

		err := svc.DeleteBooking(ctx, id.String())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("deleted booking is gone", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)

		bookings.On("Delete", ctx, existing.ID).Return(nil).Once()
		bookings.On("FindByID", ctx, existing.ID).Return(nil, nil).Once()

		require.NoError(t, svc.DeleteBooking(ctx, existing.ID.String()))

		_, err := svc.GetBooking(ctx, existing.ID.String())
		assert.ErrorIs(t, err, ErrBookingNotFound)
		bookings.AssertExpectations(t)
	})

	t.Run("create defaults to paid", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		req := &request.CreateBookingRequest{
			TourID: existing.TourID.String(),
			UserID: existing.UserID.String(),
			Price:  497,
		}

		var created *entity.Booking
		bookings.On("Create", ctx, mock.AnythingOfType("*entity.Booking")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Booking) }).
			Return(nil)
		bookings.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
			Return(func(_ context.Context, _ uuid.UUID) *entity.BookingDetail { return detailFrom(created) }, nil)

		resp, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)
		assert.True(t, created.Paid)
		assert.True(t, resp.Paid)
		assert.Equal(t, existing.TourID.String(), resp.Tour.ID)
	})

	t.Run("create rejects missing tour", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)

		_, err := svc.CreateBooking(ctx, &request.CreateBookingRequest{UserID: existing.UserID.String(), Price: 10})
		assert.ErrorIs(t, err, ErrValidation)
		bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create with unknown references", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)

		bookings.On("Create", ctx, mock.Anything).Return(errors.Join(repository.ErrReferenceNotFound, errors.New("fk")))

		_, err := svc.CreateBooking(ctx, &request.CreateBookingRequest{
			TourID: uuid.NewString(),
			UserID: uuid.NewString(),
			Price:  10,
		})
		assert.ErrorIs(t, err, ErrReferenceNotFound)
	})

	t.Run("update merges and revalidates", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		paid := false

		var updated *entity.Booking
		bookings.On("FindByID", ctx, existing.ID).Return(detailFrom(existing), nil).Once()
		bookings.On("Update", ctx, mock.AnythingOfType("*entity.Booking")).
			Run(func(args mock.Arguments) { updated = args.Get(1).(*entity.Booking) }).
			Return(nil)
		bookings.On("FindByID", ctx, existing.ID).
			Return(func(_ context.Context, _ uuid.UUID) *entity.BookingDetail { return detailFrom(updated) }, nil).Once()

		resp, err := svc.UpdateBooking(ctx, existing.ID.String(), &request.UpdateBookingRequest{Paid: &paid})
		require.NoError(t, err)
		assert.False(t, updated.Paid)
		assert.Equal(t, existing.Price, updated.Price)
		assert.Equal(t, existing.TourID, updated.TourID)
		assert.False(t, resp.Paid)
	})

	t.Run("update rejects negative price", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		price := -5.0

		_, err := svc.UpdateBooking(ctx, existing.ID.String(), &request.UpdateBookingRequest{Price: &price})
		assert.ErrorIs(t, err, ErrValidation)
		bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("update unknown booking", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		id := uuid.New()

		bookings.On("FindByID", ctx, id).Return(nil, nil)

		_, err := svc.UpdateBooking(ctx, id.String(), &request.UpdateBookingRequest{})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("list all joins tour and user", func(t *testing.T) {
		bookings := new(mockBookingRepo)
		svc := newBookingService(bookings)
		name, email := "Jonas", "jonas@example.com"
		detail := detailFrom(existing)
		detail.UserName, detail.UserEmail = &name, &email

		bookings.On("FindAll", ctx).Return([]*entity.BookingDetail{detail}, nil)

		list, err := svc.GetAllBookings(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Jonas", list[0].User.Name)
		assert.Equal(t, "jonas@example.com", list[0].User.Email)
	})
}
