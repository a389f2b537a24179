package models

import "time"

// Scholarship is created (externally) once an application is APPROVED. It
// tracks the contract signature and bank details the disbursement process
// needs. IsConfirmed is set by the external reviewer once everything checks
// out; this service never writes it.
type Scholarship struct {
	ID                int64             `json:"id" db:"id" example:"1"`
	ApplicationID     int64             `json:"applicationId" db:"application_id"`
	StudentCPR        string            `json:"studentCpr" db:"student_cpr"`
	Status            ScholarshipStatus `json:"status" db:"status" example:"PENDING"`
	BankName          string            `json:"bankName" db:"bank_name"`
	IBAN              string            `json:"iban" db:"iban"`
	IBANLetterDoc     string            `json:"ibanLetterDoc" db:"iban_letter_doc"`
	SignedContractDoc string            `json:"signedContractDoc" db:"signed_contract_doc"`
	IsConfirmed       bool              `json:"isConfirmed" db:"is_confirmed"`
	Version           int               `json:"version" db:"version"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time         `json:"updatedAt" db:"updated_at"`
}
