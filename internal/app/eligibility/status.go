package eligibility

import (
	"sort"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// DeriveOnCreate picks the initial status of a new application. REVIEW when
// the document set is complete, otherwise NOT_COMPLETED. There is no other
// entry point into the lifecycle.
func DeriveOnCreate(complete bool) models.Status {
	if complete {
		return models.StatusReview
	}
	return models.StatusNotCompleted
}

// DeriveOnUpdate picks the status after an applicant edit. An incomplete
// document set forces NOT_COMPLETED regardless of the prior status. A
// complete set keeps ELIGIBLE as-is (editing must not regress an eligible
// application to REVIEW) and moves everything else to REVIEW.
func DeriveOnUpdate(prior models.Status, complete bool) models.Status {
	if !complete {
		return models.StatusNotCompleted
	}
	if prior == models.StatusEligible {
		return models.StatusEligible
	}
	return models.StatusReview
}

// CanEdit reports whether the applicant may edit an application in the given
// status. APPROVED, REJECTED and WITHDRAWN are read-only to the applicant.
func CanEdit(s models.Status) bool {
	switch s {
	case models.StatusReview, models.StatusNotCompleted, models.StatusEligible:
		return true
	}
	return false
}

// CanWithdraw reports whether the applicant may withdraw an application in
// the given status. Withdrawal is irreversible.
func CanWithdraw(s models.Status) bool {
	return CanEdit(s)
}

// SortByStatus orders applications best status first, newest first within a
// status.
func SortByStatus(apps []*models.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		wi, wj := apps[i].Status.Weight(), apps[j].Status.Weight()
		if wi != wj {
			return wi > wj
		}
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}
