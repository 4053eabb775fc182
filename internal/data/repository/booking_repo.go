package repository

import (
	"context"
	"errors"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	// CreateForSession inserts unless a booking for the same session id
	// exists; created is false in that case.
	CreateForSession(ctx context.Context, booking *entity.Booking) (created bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindAll(ctx context.Context) ([]*entity.BookingDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BookingDetail, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const selectBookingDetail = `
	SELECT b.id, b.tour_id, b.user_id, b.price, b.session_id, b.paid, b.created_at, b.updated_at,
	       t.name, t.slug, t.price, u.name, u.email
	FROM bookings b
	LEFT JOIN tours t ON t.id = b.tour_id
	LEFT JOIN users u ON u.id = b.user_id
`

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var b entity.BookingDetail
	err := row.Scan(
		&b.ID,
		&b.TourID,
		&b.UserID,
		&b.Price,
		&b.SessionID,
		&b.Paid,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.TourName,
		&b.TourSlug,
		&b.TourPrice,
		&b.UserName,
		&b.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, tour_id, user_id, price, session_id, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.TourID,
		booking.UserID,
		booking.Price,
		booking.SessionID,
		booking.Paid,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("tour_id", booking.TourID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), translate(err))
	}

	return nil
}

func (r *bookingRepository) CreateForSession(ctx context.Context, booking *entity.Booking) (bool, error) {
	query := `
		INSERT INTO bookings (id, tour_id, user_id, price, session_id, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.TourID,
		booking.UserID,
		booking.Price,
		booking.SessionID,
		booking.Paid,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking for session",
			zap.Error(err),
			zap.Stringp("session_id", booking.SessionID),
		)
		return false, fmt.Errorf("create booking for session: %w", translate(err))
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	query := selectBookingDetail + ` WHERE b.id = $1`

	booking, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.BookingDetail, error) {
	query := selectBookingDetail + ` ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BookingDetail, error) {
	query := selectBookingDetail + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) collect(rows pgx.Rows) ([]*entity.BookingDetail, error) {
	defer rows.Close()

	bookings := make([]*entity.BookingDetail, 0)
	for rows.Next() {
		booking, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET tour_id = $2, user_id = $3, price = $4, session_id = $5, paid = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.TourID,
		booking.UserID,
		booking.Price,
		booking.SessionID,
		booking.Paid,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete booking %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}
