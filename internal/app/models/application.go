package models

import "time"

// Track distinguishes the bachelor and masters program pipelines. The two
// tracks share one lifecycle; per-track differences (required documents, GPA
// bounds) live in configuration, not in separate types.
type Track string

const (
	TrackBachelor Track = "BACHELOR"
	TrackMasters  Track = "MASTERS"
)

// IncomeBracket is the family income band used by the score calculator.
type IncomeBracket string

const (
	IncomeLessThan1500 IncomeBracket = "LESS_THAN_1500"
	IncomeMoreThan1500 IncomeBracket = "MORE_THAN_1500"
)

// Document slot names. Also used as storage sub-paths.
const (
	DocCPR                   = "cpr"
	DocTranscript            = "transcript"
	DocSchoolCertificate     = "school-certificate"
	DocUniversityCertificate = "university-certificate"
	DocAcceptanceLetter      = "acceptance-letter"
	DocTOEFLIELTS            = "toefl-ielts"
	DocGuardianCPR           = "guardian-cpr"
	DocIncome                = "income"
	DocIncomeProof           = "income-proof"
	DocIBANLetter            = "iban-letter"
	DocSignedContract        = "signed-contract"
)

// Attachment aggregates the document storage keys of one application. Keys
// are opaque strings issued by document storage; an empty string means the
// slot is unfilled. Bachelor and masters use different subsets of the slots.
type Attachment struct {
	CPRDoc                   string   `json:"cprDoc" db:"cpr_doc"`
	TranscriptDoc            string   `json:"transcriptDoc" db:"transcript_doc"`
	SchoolCertificateDoc     string   `json:"schoolCertificateDoc" db:"school_certificate_doc"`
	UniversityCertificateDoc string   `json:"universityCertificateDoc" db:"university_certificate_doc"`
	AcceptanceLetterDoc      string   `json:"acceptanceLetterDoc" db:"acceptance_letter_doc"`
	TOEFLIELTSDoc            string   `json:"toeflIeltsDoc" db:"toefl_ielts_doc"`
	GuardianCPRDoc           string   `json:"guardianCprDoc" db:"guardian_cpr_doc"`
	IncomeDoc                string   `json:"incomeDoc" db:"income_doc"`
	IncomeProofDocs          []string `json:"incomeProofDocs" db:"income_proof_docs"`
}

// Application is a single applicant's submission for one batch. The Version
// column implements optimistic concurrency: every update must present the
// version it read, and bumps it by one.
type Application struct {
	ID            int64         `json:"id" db:"id" example:"1"`
	StudentCPR    string        `json:"studentCpr" db:"student_cpr" example:"890101234"`
	Track         Track         `json:"track" db:"track" example:"BACHELOR"`
	Status        Status        `json:"status" db:"status" example:"REVIEW"`
	GPA           float64       `json:"gpa" db:"gpa" example:"92.5"`
	VerifiedGPA   *float64      `json:"verifiedGpa,omitempty" db:"verified_gpa"`
	AdminPoints   float64       `json:"adminPoints" db:"admin_points"`
	Score         float64       `json:"score" db:"score" example:"84.75"`
	IncomeBracket IncomeBracket `json:"incomeBracket" db:"income_bracket"`
	BatchYear     int           `json:"batchYear" db:"batch_year" example:"2024"`
	Reason        string        `json:"reason" db:"reason"`
	Program       string        `json:"program" db:"program" example:"Computer Science"`
	Major         string        `json:"major" db:"major"`
	UniversityID  int64         `json:"universityId" db:"university_id"`
	Attachment    Attachment    `json:"attachment"`
	Version       int           `json:"version" db:"version" example:"3"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`

	// Populated when needed
	University *University `json:"university,omitempty"`
}
