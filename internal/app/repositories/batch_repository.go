package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
)

// BatchRepository handles batch database operations. Batches are maintained
// by the external admin tool; this service only reads them (Create exists
// for seeding).
type BatchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBatchRepository creates a new BatchRepository.
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{db: db, sb: statementBuilder()}
}

var batchColumns = []string{
	"batch_year",
	"sign_up_start_date", "sign_up_end_date",
	"create_application_start_date", "create_application_end_date",
	"update_application_end_date",
}

func scanBatch(row pgx.Row) (*models.Batch, error) {
	b := &models.Batch{}
	err := row.Scan(
		&b.BatchYear,
		&b.SignUpStartDate, &b.SignUpEndDate,
		&b.CreateApplicationStartDate, &b.CreateApplicationEndDate,
		&b.UpdateApplicationEndDate,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetCurrent returns the most recent batch.
func (r *BatchRepository) GetCurrent(ctx context.Context) (*models.Batch, error) {
	sql, args, err := r.sb.Select(batchColumns...).
		From("batches").
		OrderBy("batch_year DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build current batch query: %w", err)
	}

	batch, err := scanBatch(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Msg("Error scanning current batch row")
		return nil, fmt.Errorf("error getting current batch: %w", err)
	}
	return batch, nil
}

// GetByYear retrieves a batch by its year key.
func (r *BatchRepository) GetByYear(ctx context.Context, year int) (*models.Batch, error) {
	sql, args, err := r.sb.Select(batchColumns...).
		From("batches").
		Where(squirrel.Eq{"batch_year": year}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build batch query: %w", err)
	}

	batch, err := scanBatch(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Int("batchYear", year).Msg("Error scanning batch row")
		return nil, fmt.Errorf("error getting batch by year: %w", err)
	}
	return batch, nil
}

// Create inserts a batch. Used by seeding only.
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	sql, args, err := r.sb.Insert("batches").
		Columns(batchColumns...).
		Values(
			batch.BatchYear,
			batch.SignUpStartDate, batch.SignUpEndDate,
			batch.CreateApplicationStartDate, batch.CreateApplicationEndDate,
			batch.UpdateApplicationEndDate,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create batch query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrBatchAlreadyExists
		}
		logger.Error().Err(err).Int("batchYear", batch.BatchYear).Msg("Error creating batch")
		return fmt.Errorf("error creating batch: %w", err)
	}
	return nil
}
