package models

import "time"

// AuditLog is an append-only record of one application mutation. Snapshot is
// a JSON-encoded field-by-field diff produced by the eligibility engine;
// entries are never updated or deleted.
type AuditLog struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	StudentCPR    string    `json:"studentCpr" db:"student_cpr"`
	Snapshot      string    `json:"snapshot" db:"snapshot"`
	Reason        string    `json:"reason" db:"reason"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
