package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/eligibility"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func batch2024() *models.Batch {
	return &models.Batch{
		BatchYear:                  2024,
		SignUpStartDate:            day(2024, 1, 1),
		SignUpEndDate:              day(2024, 1, 31),
		CreateApplicationStartDate: day(2024, 2, 1),
		CreateApplicationEndDate:   day(2024, 2, 28),
		UpdateApplicationEndDate:   day(2024, 3, 31),
	}
}

func newTestSession(batch *models.Batch, batchErr error, apps []*models.Application, appsErr error, now time.Time) *Session {
	eval := eligibility.NewWindowEvaluator(func() time.Time { return now }, false, time.UTC)
	return New("890101234",
		func(ctx context.Context) (*models.Batch, error) { return batch, batchErr },
		func(ctx context.Context, cpr string) ([]*models.Application, error) { return apps, appsErr },
		eval,
		zerolog.Nop(),
	)
}

func TestResyncGating(t *testing.T) {
	s := newTestSession(batch2024(), nil, nil, nil, day(2024, 2, 15))
	if err := s.Resync(context.Background()); err != nil {
		t.Fatal(err)
	}

	if s.SignUpOpen() {
		t.Error("sign-up should be closed mid-February")
	}
	if !s.NewApplicationOpen() {
		t.Error("new applications should be open mid-February")
	}
	if !s.EditingOpen() {
		t.Error("editing should be open mid-February")
	}
}

func TestBatchFetchFailureDegradesToClosed(t *testing.T) {
	s := newTestSession(nil, errors.New("backend unavailable"), nil, nil, day(2024, 2, 15))
	if err := s.Resync(context.Background()); err != nil {
		t.Fatalf("batch failure must not fail the resync: %v", err)
	}

	if s.Batch() != nil {
		t.Fatal("failed batch fetch should leave no batch")
	}
	if s.SignUpOpen() || s.NewApplicationOpen() || s.EditingOpen() {
		t.Fatal("all gating must be conservative without a batch")
	}
}

func TestApplicationsFetchFailurePropagates(t *testing.T) {
	s := newTestSession(batch2024(), nil, nil, errors.New("boom"), day(2024, 2, 15))
	if err := s.Resync(context.Background()); err == nil {
		t.Fatal("applications fetch failure should fail the resync")
	}
}

func TestHaveActiveApplication(t *testing.T) {
	mk := func(status models.Status, year int) *models.Application {
		return &models.Application{Status: status, BatchYear: year}
	}

	cases := []struct {
		name string
		apps []*models.Application
		want bool
	}{
		{"review_blocks", []*models.Application{mk(models.StatusReview, 2024)}, true},
		{"not_completed_blocks", []*models.Application{mk(models.StatusNotCompleted, 2024)}, true},
		{"rejected_blocks", []*models.Application{mk(models.StatusRejected, 2024)}, true},
		{"withdrawn_does_not_block", []*models.Application{mk(models.StatusWithdrawn, 2024)}, false},
		{"other_batch_does_not_block", []*models.Application{mk(models.StatusApproved, 2023)}, false},
		{"no_applications", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(batch2024(), nil, tc.apps, nil, day(2024, 2, 15))
			if err := s.Resync(context.Background()); err != nil {
				t.Fatal(err)
			}
			if got := s.HaveActiveApplication(); got != tc.want {
				t.Fatalf("HaveActiveApplication = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApplicationsSortedByStatus(t *testing.T) {
	apps := []*models.Application{
		{ID: 1, Status: models.StatusWithdrawn, BatchYear: 2024},
		{ID: 2, Status: models.StatusApproved, BatchYear: 2024},
		{ID: 3, Status: models.StatusReview, BatchYear: 2024},
	}
	s := newTestSession(batch2024(), nil, apps, nil, day(2024, 2, 15))
	if err := s.Resync(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := s.Applications()
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("unexpected order: %v, %v, %v", got[0].ID, got[1].ID, got[2].ID)
	}
}
