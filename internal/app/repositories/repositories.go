package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency injection.
type Repositories struct {
	BatchRepository       *BatchRepository
	UniversityRepository  *UniversityRepository
	ApplicationRepository *ApplicationRepository
	AuditLogRepository    *AuditLogRepository
	ScholarshipRepository *ScholarshipRepository
}

// NewRepositories creates all repositories over one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		BatchRepository:       NewBatchRepository(db),
		UniversityRepository:  NewUniversityRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		AuditLogRepository:    NewAuditLogRepository(db),
		ScholarshipRepository: NewScholarshipRepository(db),
	}
}

// statementBuilder returns a squirrel builder with PostgreSQL placeholders.
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// isDuplicateKeyError checks for a PostgreSQL unique violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
