package models

// University is a choice target for applications. Two per-university policy
// flags feed the eligibility engine: IsException waives the acceptance-letter
// requirement, IsExtended pushes the edit deadline by ExtensionDays.
type University struct {
	ID            int64  `json:"id" db:"id" example:"1"`
	Name          string `json:"name" db:"name" example:"University of Bahrain"`
	IsException   bool   `json:"isException" db:"is_exception"`
	IsExtended    bool   `json:"isExtended" db:"is_extended"`
	ExtensionDays int    `json:"extensionDays" db:"extension_days" example:"14"`
}
