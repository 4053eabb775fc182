package usecase

import (
	"context"
	"fmt"

	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"

	"go.uber.org/zap"
)

type TourService interface {
	GetTours(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error)
	GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error)
}

type tourService struct {
	tourRepo repository.TourRepository
	log      *zap.Logger
}

func NewTourService(tourRepo repository.TourRepository, log *zap.Logger) TourService {
	return &tourService{
		tourRepo: tourRepo,
		log:      log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) GetTours(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TourResponse], error) {
	tours, err := s.tourRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.tourRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]response.TourResponse, len(tours))
	for i, tour := range tours {
		data[i] = response.TourToResponse(tour)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *tourService) GetTourByID(ctx context.Context, tourID string) (*response.TourResponse, error) {
	id, err := parseID("tour", tourID)
	if err != nil {
		return nil, err
	}

	tour, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, fmt.Errorf("%w: %s", ErrTourNotFound, tourID)
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}
