package dto

// CreateApplicationRequest is the multipart form body for a first submission.
// Documents travel as file parts alongside these fields.
type CreateApplicationRequest struct {
	Track         string  `form:"track" binding:"required,oneof=BACHELOR MASTERS"`
	GPA           float64 `form:"gpa" binding:"required,gt=0,lte=100"`
	IncomeBracket string  `form:"incomeBracket" binding:"required,oneof=LESS_THAN_1500 MORE_THAN_1500"`
	Reason        string  `form:"reason" binding:"max=1000"`
	Program       string  `form:"program" binding:"required,max=255"`
	Major         string  `form:"major" binding:"max=255"`
	UniversityID  int64   `form:"universityId" binding:"required,gt=0"`
}

// UpdateApplicationRequest is the multipart form body for an edit. Version is
// the version the client last read; the update fails with a conflict when the
// row has moved on.
type UpdateApplicationRequest struct {
	GPA           float64 `form:"gpa" binding:"required,gt=0,lte=100"`
	IncomeBracket string  `form:"incomeBracket" binding:"required,oneof=LESS_THAN_1500 MORE_THAN_1500"`
	Reason        string  `form:"reason" binding:"max=1000"`
	Program       string  `form:"program" binding:"required,max=255"`
	Major         string  `form:"major" binding:"max=255"`
	UniversityID  int64   `form:"universityId" binding:"required,gt=0"`
	Version       int     `form:"version" binding:"required,gte=1"`
}

// WithdrawRequest carries the version precondition for a withdrawal.
type WithdrawRequest struct {
	Version int `json:"version" binding:"required,gte=1"`
}

// BankDetailsRequest is the multipart form body for submitting award bank
// details. The IBAN letter travels as a file part.
type BankDetailsRequest struct {
	BankName string `form:"bankName" binding:"required,max=255"`
	IBAN     string `form:"iban" binding:"required,min=15,max=34"`
	Version  int    `form:"version" binding:"required,gte=1"`
}

// ContractRequest carries the version precondition for a contract upload.
type ContractRequest struct {
	Version int `form:"version" binding:"required,gte=1"`
}
