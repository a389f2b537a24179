package services

import (
	"context"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// universityStore is the subset of UniversityRepository used by the services.
type universityStore interface {
	GetByID(ctx context.Context, id int64) (*models.University, error)
	GetAll(ctx context.Context) ([]*models.University, error)
}

// UniversityService exposes the university catalog.
type UniversityService interface {
	List(ctx context.Context) ([]*models.University, error)
}

type universityService struct {
	universities universityStore
}

// NewUniversityService creates a new UniversityService.
func NewUniversityService(universities universityStore) UniversityService {
	return &universityService{universities: universities}
}

// List returns all universities ordered by name.
func (s *universityService) List(ctx context.Context) ([]*models.University, error) {
	return s.universities.GetAll(ctx)
}
