package eligibility

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

func bachelorSnapshot() Snapshot {
	return SnapshotOf(&models.Application{
		Track:   models.TrackBachelor,
		GPA:     92.5,
		Reason:  "First choice program",
		Program: "Computer Science",
		Major:   "Software Engineering",
		Attachment: models.Attachment{
			CPRDoc:               "k/cpr/1.pdf",
			TranscriptDoc:        "k/transcript/1.pdf",
			SchoolCertificateDoc: "k/school-certificate/1.pdf",
			AcceptanceLetterDoc:  "k/acceptance-letter/1.pdf",
			IncomeProofDocs:      []string{"k/income-proof/1.pdf", "k/income-proof/2.pdf"},
		},
	}, "University of Bahrain")
}

func decodeDiff(t *testing.T, payload string) map[string]string {
	t.Helper()
	out := map[string]string{}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		t.Fatalf("diff is not a JSON object: %v", err)
	}
	return out
}

func TestDiffInitialSubmit(t *testing.T) {
	payload, err := DiffSnapshot(nil, bachelorSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	diff := decodeDiff(t, payload)

	wantKeys := []string{
		"gpa", "reason", "program", "university", "major",
		models.DocCPR, models.DocTranscript, models.DocSchoolCertificate,
		models.DocAcceptanceLetter, models.DocIncomeProof,
	}
	if len(diff) != len(wantKeys) {
		t.Fatalf("initial diff has %d fields, want %d: %v", len(diff), len(wantKeys), diff)
	}
	for _, key := range wantKeys {
		value, ok := diff[key]
		if !ok {
			t.Errorf("initial diff missing tracked field %q", key)
			continue
		}
		if !strings.HasPrefix(value, "Initial submit with ") {
			t.Errorf("field %q = %q, want an Initial submit entry", key, value)
		}
	}

	if diff["gpa"] != "Initial submit with 92.5" {
		t.Errorf("gpa entry = %q", diff["gpa"])
	}
}

func TestDiffNoChange(t *testing.T) {
	snap := bachelorSnapshot()
	payload, err := DiffSnapshot(&snap, bachelorSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if diff := decodeDiff(t, payload); len(diff) != 0 {
		t.Fatalf("identical snapshots produced a non-empty diff: %v", diff)
	}
}

func TestDiffSingleFieldChange(t *testing.T) {
	old := bachelorSnapshot()
	updated := bachelorSnapshot()
	updated.GPA = 95

	payload, err := DiffSnapshot(&old, updated)
	if err != nil {
		t.Fatal(err)
	}
	diff := decodeDiff(t, payload)

	if len(diff) != 1 {
		t.Fatalf("one changed field should yield exactly one entry, got %v", diff)
	}
	if diff["gpa"] != "Changed 92.5 to 95" {
		t.Fatalf("gpa entry = %q", diff["gpa"])
	}
}

func TestDiffDocumentReplacement(t *testing.T) {
	old := bachelorSnapshot()
	updated := bachelorSnapshot()
	updated.Docs[models.DocTranscript] = "k/transcript/2.pdf"

	payload, err := DiffSnapshot(&old, updated)
	if err != nil {
		t.Fatal(err)
	}
	diff := decodeDiff(t, payload)

	if len(diff) != 1 {
		t.Fatalf("got %v", diff)
	}
	if diff[models.DocTranscript] != "Changed k/transcript/1.pdf to k/transcript/2.pdf" {
		t.Fatalf("transcript entry = %q", diff[models.DocTranscript])
	}
}

func TestDiffIncomeProofCollection(t *testing.T) {
	old := bachelorSnapshot()
	updated := bachelorSnapshot()
	updated.IncomeProofs = append(updated.IncomeProofs, "k/income-proof/3.pdf")

	payload, err := DiffSnapshot(&old, updated)
	if err != nil {
		t.Fatal(err)
	}
	diff := decodeDiff(t, payload)

	if len(diff) != 1 {
		t.Fatalf("got %v", diff)
	}
	if _, ok := diff[models.DocIncomeProof]; !ok {
		t.Fatalf("income proof change not tracked: %v", diff)
	}
}

func TestDiffIsDeterministic(t *testing.T) {
	old := bachelorSnapshot()
	updated := bachelorSnapshot()
	updated.Reason = "Changed my mind"

	first, err := DiffSnapshot(&old, updated)
	if err != nil {
		t.Fatal(err)
	}
	second, err := DiffSnapshot(&old, updated)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("diff is not deterministic:\n%s\n%s", first, second)
	}
}
