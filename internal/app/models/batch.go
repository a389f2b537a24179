package models

import "time"

// Batch identifies an admissions cycle by year and carries its date windows.
// Batches are maintained by an external admin tool and are read-only here.
type Batch struct {
	BatchYear                  int       `json:"batchYear" db:"batch_year" example:"2024"`
	SignUpStartDate            time.Time `json:"signUpStartDate" db:"sign_up_start_date"`
	SignUpEndDate              time.Time `json:"signUpEndDate" db:"sign_up_end_date"`
	CreateApplicationStartDate time.Time `json:"createApplicationStartDate" db:"create_application_start_date"`
	CreateApplicationEndDate   time.Time `json:"createApplicationEndDate" db:"create_application_end_date"`
	UpdateApplicationEndDate   time.Time `json:"updateApplicationEndDate" db:"update_application_end_date"`
}
