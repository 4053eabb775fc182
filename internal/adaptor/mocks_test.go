package adaptor

import (
	"context"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v76"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) CreateBookingFromSession(ctx context.Context, session *stripe.CheckoutSession) (*entity.Booking, error) {
	args := m.Called(ctx, session)
	if v := args.Get(0); v != nil {
		return v.(*entity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingService) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]response.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]response.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID)
	if v := args.Get(0); v != nil {
		return v.(*response.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*response.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if v := args.Get(0); v != nil {
		return v.(*response.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

type mockCheckoutService struct {
	mock.Mock
}

func (m *mockCheckoutService) CreateCheckoutSession(ctx context.Context, tourID, baseURL string, caller *utils.Principal) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, tourID, baseURL, caller)
	if v := args.Get(0); v != nil {
		return v.(*stripe.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req *request.SignupRequest, client usecase.ClientInfo) (*response.AuthResponse, error) {
	args := m.Called(ctx, req, client)
	if v := args.Get(0); v != nil {
		return v.(*response.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *request.LoginRequest, client usecase.ClientInfo) (*response.AuthResponse, error) {
	args := m.Called(ctx, req, client)
	if v := args.Get(0); v != nil {
		return v.(*response.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) CreateForSession(ctx context.Context, booking *entity.Booking) (bool, error) {
	args := m.Called(ctx, booking)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.BookingDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*entity.BookingDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BookingDetail, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*entity.BookingDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
