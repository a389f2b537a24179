package dto

import (
	"time"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// APIResponse is the standard success envelope.
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAPIResponse wraps a payload in the standard envelope.
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// BatchStatusResponse is the current batch together with the gate booleans
// the client needs to enable or disable its forms.
type BatchStatusResponse struct {
	Batch              *models.Batch `json:"batch"`
	SignUpOpen         bool          `json:"signUpOpen"`
	NewApplicationOpen bool          `json:"newApplicationOpen"`
	EditingOpen        bool          `json:"editingOpen"`
}
