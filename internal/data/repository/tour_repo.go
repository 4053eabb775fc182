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

type TourRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Tour, error)
	CountAll(ctx context.Context) (int64, error)
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `
		SELECT id, name, slug, summary, image_cover, price, created_at, updated_at
		FROM tours
		WHERE id = $1
	`

	var tour entity.Tour
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tour.ID,
		&tour.Name,
		&tour.Slug,
		&tour.Summary,
		&tour.ImageCover,
		&tour.Price,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("find tour by ID %s: %w", id.String(), err)
	}

	return &tour, nil
}

func (r *tourRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	query := `
		SELECT id, name, slug, summary, image_cover, price, created_at, updated_at
		FROM tours
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tours",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find tours limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	tours := make([]*entity.Tour, 0)
	for rows.Next() {
		var tour entity.Tour
		if err := rows.Scan(
			&tour.ID,
			&tour.Name,
			&tour.Slug,
			&tour.Summary,
			&tour.ImageCover,
			&tour.Price,
			&tour.CreatedAt,
			&tour.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan tour row", zap.Error(err))
			return nil, fmt.Errorf("scan tour row: %w", err)
		}
		tours = append(tours, &tour)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tour rows: %w", err)
	}

	return tours, nil
}

func (r *tourRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tours`).Scan(&count); err != nil {
		r.log.Error("Failed to count tours", zap.Error(err))
		return 0, fmt.Errorf("count tours: %w", err)
	}
	return count, nil
}
