package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
)

// AuditLogRepository reads the append-only audit trail. Writes happen inside
// application mutations (same package) so trail entries and row changes
// commit atomically.
type AuditLogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAuditLogRepository creates a new AuditLogRepository.
func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{db: db, sb: statementBuilder()}
}

// insertAuditLog appends an audit entry within an open transaction.
func insertAuditLog(ctx context.Context, tx pgx.Tx, sb squirrel.StatementBuilderType, entry *models.AuditLog) error {
	sql, args, err := sb.Insert("audit_logs").
		Columns("application_id", "student_cpr", "snapshot", "reason").
		Values(entry.ApplicationID, entry.StudentCPR, entry.Snapshot, entry.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build audit log insert: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("error inserting audit log: %w", err)
	}
	return nil
}

// ListByApplication returns the audit trail of one application, oldest first.
func (r *AuditLogRepository) ListByApplication(ctx context.Context, applicationID int64) ([]*models.AuditLog, error) {
	sql, args, err := r.sb.Select("id", "application_id", "student_cpr", "snapshot", "reason", "created_at").
		From("audit_logs").
		Where(squirrel.Eq{"application_id": applicationID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit log query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", applicationID).Msg("Error querying audit logs")
		return nil, fmt.Errorf("error querying audit logs: %w", err)
	}
	defer rows.Close()

	entries := []*models.AuditLog{}
	for rows.Next() {
		e := &models.AuditLog{}
		if err := rows.Scan(&e.ID, &e.ApplicationID, &e.StudentCPR, &e.Snapshot, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning audit log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", err)
	}

	return entries, nil
}
