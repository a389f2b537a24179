package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/db"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
)

// ApplicationRepository handles application database operations. Mutations
// that must be audited run in one transaction with their audit-log insert,
// so an application row can never change without its trail entry.
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db, sb: statementBuilder()}
}

var applicationColumns = []string{
	"a.id", "a.student_cpr", "a.track", "a.status",
	"a.gpa", "a.verified_gpa", "a.admin_points", "a.score", "a.income_bracket",
	"a.batch_year", "a.reason", "a.program", "a.major", "a.university_id",
	"a.cpr_doc", "a.transcript_doc", "a.school_certificate_doc",
	"a.university_certificate_doc", "a.acceptance_letter_doc",
	"a.toefl_ielts_doc", "a.guardian_cpr_doc", "a.income_doc", "a.income_proof_docs",
	"a.version", "a.created_at", "a.updated_at",
	"u.id", "u.name", "u.is_exception", "u.is_extended", "u.extension_days",
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	app := &models.Application{}
	u := &models.University{}
	err := row.Scan(
		&app.ID, &app.StudentCPR, &app.Track, &app.Status,
		&app.GPA, &app.VerifiedGPA, &app.AdminPoints, &app.Score, &app.IncomeBracket,
		&app.BatchYear, &app.Reason, &app.Program, &app.Major, &app.UniversityID,
		&app.Attachment.CPRDoc, &app.Attachment.TranscriptDoc, &app.Attachment.SchoolCertificateDoc,
		&app.Attachment.UniversityCertificateDoc, &app.Attachment.AcceptanceLetterDoc,
		&app.Attachment.TOEFLIELTSDoc, &app.Attachment.GuardianCPRDoc, &app.Attachment.IncomeDoc,
		&app.Attachment.IncomeProofDocs,
		&app.Version, &app.CreatedAt, &app.UpdatedAt,
		&u.ID, &u.Name, &u.IsException, &u.IsExtended, &u.ExtensionDays,
	)
	if err != nil {
		return nil, err
	}
	app.University = u
	return app, nil
}

func (r *ApplicationRepository) selectApplications() squirrel.SelectBuilder {
	return r.sb.Select(applicationColumns...).
		From("applications a").
		Join("universities u ON u.id = a.university_id")
}

// GetByID retrieves an application with its university.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.selectApplications().
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return app, nil
}

// ListByStudent retrieves all applications of one student, newest first.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, cpr string) ([]*models.Application, error) {
	sql, args, err := r.selectApplications().
		Where(squirrel.Eq{"a.student_cpr": cpr}).
		OrderBy("a.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("cpr", cpr).Msg("Error querying applications")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}

// ListByStudentAndBatch retrieves a student's applications in one batch.
func (r *ApplicationRepository) ListByStudentAndBatch(ctx context.Context, cpr string, batchYear int) ([]*models.Application, error) {
	sql, args, err := r.selectApplications().
		Where(squirrel.Eq{"a.student_cpr": cpr, "a.batch_year": batchYear}).
		OrderBy("a.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("cpr", cpr).Int("batchYear", batchYear).Msg("Error querying applications")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}

// attachmentValues maps attachment slots to their columns for inserts/updates.
func attachmentValues(a models.Attachment) map[string]interface{} {
	return map[string]interface{}{
		"cpr_doc":                    a.CPRDoc,
		"transcript_doc":             a.TranscriptDoc,
		"school_certificate_doc":     a.SchoolCertificateDoc,
		"university_certificate_doc": a.UniversityCertificateDoc,
		"acceptance_letter_doc":      a.AcceptanceLetterDoc,
		"toefl_ielts_doc":            a.TOEFLIELTSDoc,
		"guardian_cpr_doc":           a.GuardianCPRDoc,
		"income_doc":                 a.IncomeDoc,
		"income_proof_docs":          a.IncomeProofDocs,
	}
}

// CreateWithLog inserts an application together with its first audit entry.
func (r *ApplicationRepository) CreateWithLog(ctx context.Context, app *models.Application, entry *models.AuditLog) (int64, error) {
	values := attachmentValues(app.Attachment)
	values["student_cpr"] = app.StudentCPR
	values["track"] = app.Track
	values["status"] = app.Status
	values["gpa"] = app.GPA
	values["admin_points"] = app.AdminPoints
	values["score"] = app.Score
	values["income_bracket"] = app.IncomeBracket
	values["batch_year"] = app.BatchYear
	values["reason"] = app.Reason
	values["program"] = app.Program
	values["major"] = app.Major
	values["university_id"] = app.UniversityID

	sql, args, err := r.sb.Insert("applications").
		SetMap(values).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	txErr := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&id, &app.Version, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return fmt.Errorf("error creating application: %w", err)
		}
		entry.ApplicationID = id
		return insertAuditLog(ctx, tx, r.sb, entry)
	})
	if txErr != nil {
		logger.Error().Err(txErr).Str("cpr", app.StudentCPR).Msg("Error creating application with log")
		return 0, txErr
	}

	app.ID = id
	return id, nil
}

// UpdateWithLog updates an application and appends an audit entry in one
// transaction. expectedVersion implements optimistic concurrency: when the
// row has moved on, ErrVersionConflict is returned and nothing is written.
func (r *ApplicationRepository) UpdateWithLog(ctx context.Context, app *models.Application, expectedVersion int, entry *models.AuditLog) error {
	values := attachmentValues(app.Attachment)
	values["status"] = app.Status
	values["gpa"] = app.GPA
	values["verified_gpa"] = app.VerifiedGPA
	values["admin_points"] = app.AdminPoints
	values["score"] = app.Score
	values["income_bracket"] = app.IncomeBracket
	values["reason"] = app.Reason
	values["program"] = app.Program
	values["major"] = app.Major
	values["university_id"] = app.UniversityID
	values["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.sb.Update("applications").
		SetMap(values).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": app.ID, "version": expectedVersion}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&app.Version, &app.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.versionConflictOrMissing(ctx, tx, app.ID)
			}
			return fmt.Errorf("error updating application: %w", err)
		}
		return insertAuditLog(ctx, tx, r.sb, entry)
	})
}

// UpdateStatusWithLog transitions only the status (withdraw path) with an
// audit entry, under the same version precondition as UpdateWithLog.
func (r *ApplicationRepository) UpdateStatusWithLog(ctx context.Context, id int64, expectedVersion int, status models.Status, entry *models.AuditLog) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status update query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating application status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return r.versionConflictOrMissing(ctx, tx, id)
		}
		return insertAuditLog(ctx, tx, r.sb, entry)
	})
}

// versionConflictOrMissing distinguishes a stale version from a deleted row.
func (r *ApplicationRepository) versionConflictOrMissing(ctx context.Context, tx pgx.Tx, id int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("error checking application existence: %w", err)
	}
	if exists {
		return apperrors.ErrVersionConflict
	}
	return apperrors.ErrApplicationNotFound
}
