package eligibility

import (
	"testing"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

func completeBachelor() *models.Application {
	return &models.Application{
		Track: models.TrackBachelor,
		Attachment: models.Attachment{
			CPRDoc:               "k/cpr/1.pdf",
			TranscriptDoc:        "k/transcript/1.pdf",
			SchoolCertificateDoc: "k/school-certificate/1.pdf",
			AcceptanceLetterDoc:  "k/acceptance-letter/1.pdf",
			IncomeProofDocs:      []string{"k/income-proof/1.pdf"},
		},
	}
}

func completeMasters() *models.Application {
	return &models.Application{
		Track: models.TrackMasters,
		Attachment: models.Attachment{
			CPRDoc:                   "k/cpr/1.pdf",
			GuardianCPRDoc:           "k/guardian-cpr/1.pdf",
			IncomeDoc:                "k/income/1.pdf",
			TranscriptDoc:            "k/transcript/1.pdf",
			UniversityCertificateDoc: "k/university-certificate/1.pdf",
			AcceptanceLetterDoc:      "k/acceptance-letter/1.pdf",
			TOEFLIELTSDoc:            "k/toefl-ielts/1.pdf",
		},
	}
}

func TestBachelorCompleteness(t *testing.T) {
	t.Run("all_present", func(t *testing.T) {
		if !AllDocsPresent(completeBachelor(), false) {
			t.Fatal("complete bachelor set should pass")
		}
	})

	t.Run("removing_any_required_doc_fails", func(t *testing.T) {
		mutations := map[string]func(*models.Application){
			"cpr":        func(a *models.Application) { a.Attachment.CPRDoc = "" },
			"transcript": func(a *models.Application) { a.Attachment.TranscriptDoc = "" },
			"school_cert": func(a *models.Application) {
				a.Attachment.SchoolCertificateDoc = ""
			},
			"acceptance": func(a *models.Application) { a.Attachment.AcceptanceLetterDoc = "" },
			"income_proofs": func(a *models.Application) {
				a.Attachment.IncomeProofDocs = nil
			},
		}
		for name, mutate := range mutations {
			app := completeBachelor()
			mutate(app)
			if AllDocsPresent(app, false) {
				t.Errorf("%s: removal should flip completeness to false", name)
			}
		}
	})

	t.Run("exception_waives_acceptance_letter_only", func(t *testing.T) {
		app := completeBachelor()
		app.Attachment.AcceptanceLetterDoc = ""
		if !AllDocsPresent(app, true) {
			t.Fatal("exception university should waive the acceptance letter")
		}
		app.Attachment.CPRDoc = ""
		if AllDocsPresent(app, true) {
			t.Fatal("exception must not waive other documents")
		}
	})
}

func TestMastersCompleteness(t *testing.T) {
	t.Run("all_present", func(t *testing.T) {
		if !AllDocsPresent(completeMasters(), false) {
			t.Fatal("complete masters set should pass")
		}
	})

	t.Run("no_exception_waiver", func(t *testing.T) {
		app := completeMasters()
		app.Attachment.AcceptanceLetterDoc = ""
		if AllDocsPresent(app, true) {
			t.Fatal("masters has no acceptance-letter waiver")
		}
	})

	t.Run("toefl_required", func(t *testing.T) {
		app := completeMasters()
		app.Attachment.TOEFLIELTSDoc = ""
		if AllDocsPresent(app, false) {
			t.Fatal("missing TOEFL/IELTS certificate should fail")
		}
	})
}

func TestAllDocsPresentEdgeCases(t *testing.T) {
	if AllDocsPresent(nil, false) {
		t.Error("nil application is never complete")
	}
	if AllDocsPresent(&models.Application{Track: "PHD"}, false) {
		t.Error("unknown track is never complete")
	}
}

func TestMissingDocs(t *testing.T) {
	app := completeBachelor()
	app.Attachment.CPRDoc = ""
	app.Attachment.AcceptanceLetterDoc = ""

	got := MissingDocs(app, false)
	want := []string{models.DocCPR, models.DocAcceptanceLetter}
	if len(got) != len(want) {
		t.Fatalf("MissingDocs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MissingDocs = %v, want %v", got, want)
		}
	}

	if missing := MissingDocs(completeBachelor(), false); len(missing) != 0 {
		t.Fatalf("complete set reported missing docs: %v", missing)
	}
}
