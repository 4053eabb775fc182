package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type TourResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Summary    string    `json:"summary"`
	ImageCover string    `json:"image_cover"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

func TourToResponse(tour *entity.Tour) TourResponse {
	return TourResponse{
		ID:         tour.ID.String(),
		Name:       tour.Name,
		Slug:       tour.Slug,
		Summary:    tour.Summary,
		ImageCover: tour.ImageCover,
		Price:      tour.Price,
		CreatedAt:  tour.CreatedAt,
	}
}
