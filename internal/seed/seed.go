// Package seed creates the baseline data a fresh deployment needs: a batch
// for the current year and the university catalog.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/repositories"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
)

// defaultUniversities is the starting catalog. Exception universities waive
// the acceptance letter; extended ones push the edit deadline.
var defaultUniversities = []models.University{
	{Name: "University of Bahrain"},
	{Name: "Bahrain Polytechnic"},
	{Name: "Arabian Gulf University"},
	{Name: "Arab Open University", IsException: true},
	{Name: "RCSI Medical University of Bahrain", IsExtended: true, ExtensionDays: 14},
	{Name: "Ahlia University"},
	{Name: "Applied Science University"},
	{Name: "Gulf University"},
}

// CreateDefaultData seeds the batch and university catalog when missing.
// Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(db)

	if err := seedBatch(ctx, repos.BatchRepository, lgr); err != nil {
		return err
	}
	return seedUniversities(ctx, repos.UniversityRepository, lgr)
}

func seedBatch(ctx context.Context, batches *repositories.BatchRepository, lgr zerolog.Logger) error {
	if _, err := batches.GetCurrent(ctx); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrBatchNotFound) {
		return err
	}

	year := time.Now().Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	batch := &models.Batch{
		BatchYear:                  year,
		SignUpStartDate:            start,
		SignUpEndDate:              start.AddDate(0, 5, 0),
		CreateApplicationStartDate: start.AddDate(0, 1, 0),
		CreateApplicationEndDate:   start.AddDate(0, 6, 0),
		UpdateApplicationEndDate:   start.AddDate(0, 8, 0),
	}

	if err := batches.Create(ctx, batch); err != nil {
		if errors.Is(err, apperrors.ErrBatchAlreadyExists) {
			return nil
		}
		return err
	}
	lgr.Info().Int("batchYear", year).Msg("Seeded default batch")
	return nil
}

func seedUniversities(ctx context.Context, universities *repositories.UniversityRepository, lgr zerolog.Logger) error {
	existing, err := universities.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, u := range defaultUniversities {
		if _, err := universities.Create(ctx, &u); err != nil {
			if errors.Is(err, apperrors.ErrUniversityDuplicated) {
				continue
			}
			return err
		}
	}
	lgr.Info().Int("count", len(defaultUniversities)).Msg("Seeded university catalog")
	return nil
}
