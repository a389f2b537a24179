package eligibility

import (
	"testing"
	"time"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func evaluatorAt(t time.Time) *WindowEvaluator {
	return NewWindowEvaluator(func() time.Time { return t }, false, time.UTC)
}

func testBatch() *models.Batch {
	return &models.Batch{
		BatchYear:                  2024,
		SignUpStartDate:            day(2024, 1, 1),
		SignUpEndDate:              day(2024, 1, 31),
		CreateApplicationStartDate: day(2024, 2, 1),
		CreateApplicationEndDate:   day(2024, 2, 28),
		UpdateApplicationEndDate:   day(2024, 3, 31),
	}
}

func TestSignUpOpenBoundaries(t *testing.T) {
	batch := testBatch()

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before_window", day(2023, 12, 31).Add(23 * time.Hour), false},
		{"first_instant", day(2024, 1, 1), true},
		{"mid_window", day(2024, 1, 15).Add(12 * time.Hour), true},
		{"last_second_of_end_day", day(2024, 1, 31).Add(24*time.Hour - time.Second), true},
		{"first_instant_after", day(2024, 2, 1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := evaluatorAt(tc.now).SignUpOpen(batch)
			if got != tc.want {
				t.Fatalf("SignUpOpen(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestNilBatchClosesEverything(t *testing.T) {
	e := evaluatorAt(day(2024, 2, 15))
	if e.SignUpOpen(nil) || e.NewApplicationOpen(nil) || e.EditingOpen(nil) {
		t.Fatal("nil batch must close all windows")
	}
	if e.EditingOpenFor(nil, &models.University{IsExtended: true, ExtensionDays: 30}) {
		t.Fatal("nil batch must close editing even with an extension")
	}
}

func TestBypassOpensEverything(t *testing.T) {
	e := NewWindowEvaluator(func() time.Time { return day(2030, 6, 1) }, true, time.UTC)
	if !e.SignUpOpen(nil) || !e.NewApplicationOpen(testBatch()) || !e.EditingOpen(testBatch()) {
		t.Fatal("bypass must open all windows regardless of dates")
	}
}

func TestEditingHasNoLowerBound(t *testing.T) {
	// Editing is open even before applications can be created.
	e := evaluatorAt(day(2024, 1, 10))
	if !e.EditingOpen(testBatch()) {
		t.Fatal("editing should be open before the create window starts")
	}

	e = evaluatorAt(day(2024, 4, 1))
	if e.EditingOpen(testBatch()) {
		t.Fatal("editing should be closed after the update deadline day")
	}
}

func TestEditingExtension(t *testing.T) {
	batch := testBatch()
	extended := &models.University{Name: "Extended U", IsExtended: true, ExtensionDays: 14}
	plain := &models.University{Name: "Plain U"}

	now := day(2024, 4, 10) // 10 days past the deadline, inside the 14-day extension

	t.Run("extended_university_keeps_editing_open", func(t *testing.T) {
		if !evaluatorAt(now).EditingOpenFor(batch, extended) {
			t.Fatal("extension should keep editing open")
		}
	})

	t.Run("plain_university_is_closed", func(t *testing.T) {
		if evaluatorAt(now).EditingOpenFor(batch, plain) {
			t.Fatal("editing should be closed without an extension")
		}
	})

	t.Run("extension_eventually_closes", func(t *testing.T) {
		if evaluatorAt(day(2024, 4, 15)).EditingOpenFor(batch, extended) {
			t.Fatal("editing should close after the extended deadline day")
		}
	})

	t.Run("extension_never_opens_new_applications", func(t *testing.T) {
		if evaluatorAt(now).NewApplicationOpen(batch) {
			t.Fatal("new applications must not honor edit extensions")
		}
	})
}

func TestEndToEndScenarioGating(t *testing.T) {
	// Batch and instant from the canonical scenario: sign-up January,
	// applications February, edits until end of March, now mid-February.
	e := evaluatorAt(day(2024, 2, 15))
	batch := testBatch()

	if e.SignUpOpen(batch) {
		t.Error("sign-up should be closed on 2024-02-15")
	}
	if !e.NewApplicationOpen(batch) {
		t.Error("new applications should be open on 2024-02-15")
	}
	if !e.EditingOpen(batch) {
		t.Error("editing should be open on 2024-02-15")
	}
}
