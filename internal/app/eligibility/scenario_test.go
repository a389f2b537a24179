package eligibility

import (
	"testing"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// Full submit pipeline over the pure core: completeness feeding status
// derivation, as it runs during application creation.
func TestSubmitScenario(t *testing.T) {
	t.Run("complete_bachelor_enters_review", func(t *testing.T) {
		app := completeBachelor()
		if got := DeriveOnCreate(AllDocsPresent(app, false)); got != models.StatusReview {
			t.Fatalf("initial status = %s, want REVIEW", got)
		}
	})

	t.Run("missing_acceptance_letter_enters_not_completed", func(t *testing.T) {
		app := completeBachelor()
		app.Attachment.AcceptanceLetterDoc = ""
		if got := DeriveOnCreate(AllDocsPresent(app, false)); got != models.StatusNotCompleted {
			t.Fatalf("initial status = %s, want NOT_COMPLETED", got)
		}
	})

	t.Run("exception_university_still_enters_review", func(t *testing.T) {
		app := completeBachelor()
		app.Attachment.AcceptanceLetterDoc = ""
		if got := DeriveOnCreate(AllDocsPresent(app, true)); got != models.StatusReview {
			t.Fatalf("initial status = %s, want REVIEW", got)
		}
	})
}
