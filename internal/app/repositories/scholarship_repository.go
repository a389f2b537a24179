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

// ScholarshipRepository handles scholarship database operations. All
// mutations carry an expected version for optimistic concurrency.
type ScholarshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScholarshipRepository creates a new ScholarshipRepository.
func NewScholarshipRepository(db *pgxpool.Pool) *ScholarshipRepository {
	return &ScholarshipRepository{db: db, sb: statementBuilder()}
}

var scholarshipColumns = []string{
	"id", "application_id", "student_cpr", "status",
	"bank_name", "iban", "iban_letter_doc", "signed_contract_doc",
	"is_confirmed", "version", "created_at", "updated_at",
}

func scanScholarship(row pgx.Row) (*models.Scholarship, error) {
	s := &models.Scholarship{}
	err := row.Scan(
		&s.ID, &s.ApplicationID, &s.StudentCPR, &s.Status,
		&s.BankName, &s.IBAN, &s.IBANLetterDoc, &s.SignedContractDoc,
		&s.IsConfirmed, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a scholarship by ID.
func (r *ScholarshipRepository) GetByID(ctx context.Context, id int64) (*models.Scholarship, error) {
	sql, args, err := r.sb.Select(scholarshipColumns...).
		From("scholarships").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build scholarship query: %w", err)
	}

	scholarship, err := scanScholarship(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScholarshipNotFound
		}
		logger.Error().Err(err).Int64("scholarshipID", id).Msg("Error scanning scholarship row")
		return nil, fmt.Errorf("error getting scholarship: %w", err)
	}
	return scholarship, nil
}

// ListByStudent retrieves all scholarships of one student, newest first.
func (r *ScholarshipRepository) ListByStudent(ctx context.Context, cpr string) ([]*models.Scholarship, error) {
	sql, args, err := r.sb.Select(scholarshipColumns...).
		From("scholarships").
		Where(squirrel.Eq{"student_cpr": cpr}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build scholarships query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("cpr", cpr).Msg("Error querying scholarships")
		return nil, fmt.Errorf("error querying scholarships: %w", err)
	}
	defer rows.Close()

	scholarships := []*models.Scholarship{}
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning scholarship row: %w", err)
		}
		scholarships = append(scholarships, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scholarship rows: %w", err)
	}

	return scholarships, nil
}

// Create inserts a scholarship. Used when an application is approved by the
// admin tool, and by seeding.
func (r *ScholarshipRepository) Create(ctx context.Context, scholarship *models.Scholarship) (int64, error) {
	sql, args, err := r.sb.Insert("scholarships").
		Columns("application_id", "student_cpr", "status").
		Values(scholarship.ApplicationID, scholarship.StudentCPR, scholarship.Status).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create scholarship query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &scholarship.Version, &scholarship.CreatedAt, &scholarship.UpdatedAt); err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrConflict
		}
		logger.Error().Err(err).Int64("applicationID", scholarship.ApplicationID).Msg("Error creating scholarship")
		return 0, fmt.Errorf("error creating scholarship: %w", err)
	}
	scholarship.ID = id
	return id, nil
}

// UpdateBankDetails sets bank name, IBAN and the IBAN letter document.
func (r *ScholarshipRepository) UpdateBankDetails(ctx context.Context, id int64, expectedVersion int, bankName, iban, ibanLetterKey string) error {
	return r.update(ctx, id, expectedVersion, map[string]interface{}{
		"bank_name":       bankName,
		"iban":            iban,
		"iban_letter_doc": ibanLetterKey,
	})
}

// UpdateContract stores the signed contract document. Confirmation of the
// award stays with the external reviewer.
func (r *ScholarshipRepository) UpdateContract(ctx context.Context, id int64, expectedVersion int, contractKey string) error {
	return r.update(ctx, id, expectedVersion, map[string]interface{}{
		"signed_contract_doc": contractKey,
	})
}

// UpdateStatus transitions the scholarship status (withdraw path).
func (r *ScholarshipRepository) UpdateStatus(ctx context.Context, id int64, expectedVersion int, status models.ScholarshipStatus) error {
	return r.update(ctx, id, expectedVersion, map[string]interface{}{
		"status": status,
	})
}

func (r *ScholarshipRepository) update(ctx context.Context, id int64, expectedVersion int, values map[string]interface{}) error {
	values["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.sb.Update("scholarships").
		SetMap(values).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update scholarship query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scholarshipID", id).Msg("Error updating scholarship")
		return fmt.Errorf("error updating scholarship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM scholarships WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking scholarship existence: %w", err)
		}
		if exists {
			return apperrors.ErrVersionConflict
		}
		return apperrors.ErrScholarshipNotFound
	}
	return nil
}
