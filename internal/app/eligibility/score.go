package eligibility

import (
	"math"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// ScoringPolicy holds the ranking formula constants. These are business
// policy, loaded from configuration; the defaults mirror the current policy
// but must never be relied on in code.
type ScoringPolicy struct {
	GPAWeight       float64
	LowIncomeBonus  float64
	HighIncomeBonus float64
}

// DefaultScoringPolicy returns the documented policy defaults.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		GPAWeight:       0.7,
		LowIncomeBonus:  20,
		HighIncomeBonus: 10,
	}
}

// Score computes the ranking score:
//
//	score = gpa*GPAWeight + incomeBonus + adminOverride
//
// rounded half-up to two decimal places.
func (p ScoringPolicy) Score(gpa float64, income models.IncomeBracket, adminOverride float64) float64 {
	var bonus float64
	switch income {
	case models.IncomeLessThan1500:
		bonus = p.LowIncomeBonus
	case models.IncomeMoreThan1500:
		bonus = p.HighIncomeBonus
	}

	return round2(gpa*p.GPAWeight + bonus + adminOverride)
}

// ScoreOnCreate scores a first submission: applicant-entered GPA, no admin
// override.
func (p ScoringPolicy) ScoreOnCreate(app *models.Application) float64 {
	return p.Score(app.GPA, app.IncomeBracket, 0)
}

// ScoreOnUpdate re-scores an edited application. Once an application has been
// marked ELIGIBLE the verified GPA (when set) and the admin-assigned points
// take over from the applicant-entered values.
func (p ScoringPolicy) ScoreOnUpdate(app *models.Application, priorStatus models.Status) float64 {
	gpa := app.GPA
	var override float64

	if priorStatus == models.StatusEligible {
		if app.VerifiedGPA != nil {
			gpa = *app.VerifiedGPA
		}
		override = app.AdminPoints
	}

	return p.Score(gpa, app.IncomeBracket, override)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
