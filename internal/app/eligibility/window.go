// Package eligibility holds the decision core of the admissions pipeline:
// batch date-window gating, document completeness, score calculation, status
// derivation and the audit snapshot differ. Everything here is pure: the
// clock is injected and nothing touches the network or the database.
package eligibility

import (
	"time"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// WindowEvaluator computes whether the sign-up, new-application and editing
// windows of a batch are open at a given instant.
type WindowEvaluator struct {
	// Now is the injected clock. Required.
	Now func() time.Time
	// Bypass opens every window unconditionally. Set only from the explicit
	// eligibility.bypass_windows configuration flag.
	Bypass bool
	// Location is the calendar zone window boundaries are interpreted in.
	// Defaults to UTC.
	Location *time.Location
}

// NewWindowEvaluator creates a WindowEvaluator with the given clock.
func NewWindowEvaluator(now func() time.Time, bypass bool, loc *time.Location) *WindowEvaluator {
	if loc == nil {
		loc = time.UTC
	}
	return &WindowEvaluator{Now: now, Bypass: bypass, Location: loc}
}

// SignUpOpen reports whether student sign-up is open. The window is inclusive
// of both calendar days: [start 00:00:00, end 23:59:59.999...].
func (e *WindowEvaluator) SignUpOpen(batch *models.Batch) bool {
	if e.Bypass {
		return true
	}
	if batch == nil {
		return false
	}
	return e.withinDays(batch.SignUpStartDate, batch.SignUpEndDate)
}

// NewApplicationOpen reports whether new applications may be submitted.
func (e *WindowEvaluator) NewApplicationOpen(batch *models.Batch) bool {
	if e.Bypass {
		return true
	}
	if batch == nil {
		return false
	}
	return e.withinDays(batch.CreateApplicationStartDate, batch.CreateApplicationEndDate)
}

// EditingOpen reports whether already-submitted applications may be edited.
// Editing has no lower bound; it closes at the end of the update deadline day.
func (e *WindowEvaluator) EditingOpen(batch *models.Batch) bool {
	if e.Bypass {
		return true
	}
	if batch == nil {
		return false
	}
	return e.Now().Before(e.endOfDay(batch.UpdateApplicationEndDate))
}

// EditingOpenFor is EditingOpen with the per-university extension applied:
// universities flagged IsExtended push the deadline by ExtensionDays. The
// override holds only for editing an existing application, never for
// creating a new one.
func (e *WindowEvaluator) EditingOpenFor(batch *models.Batch, university *models.University) bool {
	if e.Bypass {
		return true
	}
	if batch == nil {
		return false
	}

	deadline := batch.UpdateApplicationEndDate
	if university != nil && university.IsExtended {
		deadline = deadline.AddDate(0, 0, university.ExtensionDays)
	}
	return e.Now().Before(e.endOfDay(deadline))
}

// withinDays reports whether now falls inside the inclusive day range.
func (e *WindowEvaluator) withinDays(start, end time.Time) bool {
	now := e.Now()
	return !now.Before(e.startOfDay(start)) && now.Before(e.endOfDay(end))
}

func (e *WindowEvaluator) startOfDay(t time.Time) time.Time {
	t = t.In(e.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.Location)
}

// endOfDay is the first instant after the calendar day of t, so a Before
// comparison includes the whole day.
func (e *WindowEvaluator) endOfDay(t time.Time) time.Time {
	return e.startOfDay(t).AddDate(0, 0, 1)
}
