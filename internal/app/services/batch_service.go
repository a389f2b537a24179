package services

import (
	"context"
	"errors"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/eligibility"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
)

// batchStore is the subset of BatchRepository used by the services.
type batchStore interface {
	GetCurrent(ctx context.Context) (*models.Batch, error)
	GetByYear(ctx context.Context, year int) (*models.Batch, error)
}

// BatchService exposes the current batch and its window gates.
type BatchService interface {
	Current(ctx context.Context) (*dto.BatchStatusResponse, error)
}

type batchService struct {
	batches batchStore
	windows *eligibility.WindowEvaluator
}

// NewBatchService creates a new BatchService.
func NewBatchService(batches batchStore, windows *eligibility.WindowEvaluator) BatchService {
	return &batchService{batches: batches, windows: windows}
}

// Current returns the most recent batch with its gate booleans. A missing
// batch is not an error to the client: the response carries a nil batch and
// every gate reads closed.
func (s *batchService) Current(ctx context.Context) (*dto.BatchStatusResponse, error) {
	batch, err := s.batches.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrBatchNotFound) {
			batch = nil
		} else {
			return nil, err
		}
	}

	return &dto.BatchStatusResponse{
		Batch:              batch,
		SignUpOpen:         s.windows.SignUpOpen(batch),
		NewApplicationOpen: s.windows.NewApplicationOpen(batch),
		EditingOpen:        s.windows.EditingOpen(batch),
	}, nil
}
