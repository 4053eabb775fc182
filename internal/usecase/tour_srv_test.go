package usecase

import (
	"context"
	"testing"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTourService(t *testing.T) {
	ctx := context.Background()

	t.Run("paginates", func(t *testing.T) {
		tours := new(mockTourRepo)
		svc := NewTourService(tours, zap.NewNop())

		tours.On("FindAll", ctx, 2, 2).Return([]*entity.Tour{newTestTour()}, nil)
		tours.On("CountAll", ctx).Return(int64(3), nil)

		page, err := svc.GetTours(ctx, &request.PaginatedRequest{Page: 2, PerPage: 2})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, int64(3), page.Pagination.Total)
		assert.Equal(t, 2, page.Pagination.TotalPages)
	})

	t.Run("unknown tour", func(t *testing.T) {
		tours := new(mockTourRepo)
		svc := NewTourService(tours, zap.NewNop())
		id := uuid.New()

		tours.On("FindByID", ctx, id).Return(nil, nil)

		_, err := svc.GetTourByID(ctx, id.String())
		assert.ErrorIs(t, err, ErrTourNotFound)
	})
}
