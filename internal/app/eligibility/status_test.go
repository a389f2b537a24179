package eligibility

import (
	"testing"
	"time"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

func TestDeriveOnCreate(t *testing.T) {
	if got := DeriveOnCreate(true); got != models.StatusReview {
		t.Fatalf("complete create = %s, want REVIEW", got)
	}
	if got := DeriveOnCreate(false); got != models.StatusNotCompleted {
		t.Fatalf("incomplete create = %s, want NOT_COMPLETED", got)
	}
}

func TestDeriveOnUpdate(t *testing.T) {
	cases := []struct {
		name     string
		prior    models.Status
		complete bool
		want     models.Status
	}{
		{"incomplete_forces_not_completed_from_review", models.StatusReview, false, models.StatusNotCompleted},
		{"incomplete_forces_not_completed_from_eligible", models.StatusEligible, false, models.StatusNotCompleted},
		{"complete_keeps_eligible", models.StatusEligible, true, models.StatusEligible},
		{"complete_moves_not_completed_to_review", models.StatusNotCompleted, true, models.StatusReview},
		{"complete_keeps_review_in_review", models.StatusReview, true, models.StatusReview},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveOnUpdate(tc.prior, tc.complete); got != tc.want {
				t.Fatalf("DeriveOnUpdate(%s, %v) = %s, want %s", tc.prior, tc.complete, got, tc.want)
			}
		})
	}
}

func TestEditAndWithdrawGates(t *testing.T) {
	editable := []models.Status{models.StatusReview, models.StatusNotCompleted, models.StatusEligible}
	locked := []models.Status{models.StatusApproved, models.StatusRejected, models.StatusWithdrawn}

	for _, s := range editable {
		if !CanEdit(s) || !CanWithdraw(s) {
			t.Errorf("%s should allow edit and withdraw", s)
		}
	}
	for _, s := range locked {
		if CanEdit(s) || CanWithdraw(s) {
			t.Errorf("%s should allow neither edit nor withdraw", s)
		}
	}
}

func TestSortByStatus(t *testing.T) {
	now := time.Now()
	apps := []*models.Application{
		{ID: 1, Status: models.StatusWithdrawn, CreatedAt: now},
		{ID: 2, Status: models.StatusApproved, CreatedAt: now},
		{ID: 3, Status: models.StatusReview, CreatedAt: now.Add(-time.Hour)},
		{ID: 4, Status: models.StatusReview, CreatedAt: now},
		{ID: 5, Status: models.StatusEligible, CreatedAt: now},
	}

	SortByStatus(apps)

	wantOrder := []int64{2, 5, 4, 3, 1}
	for i, want := range wantOrder {
		if apps[i].ID != want {
			t.Fatalf("position %d: got application %d, want %d", i, apps[i].ID, want)
		}
	}
}
