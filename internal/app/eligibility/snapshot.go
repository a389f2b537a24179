package eligibility

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// Snapshot is the tracked subset of an application used for audit diffing:
// gpa, reason, the chosen program/university/major, and every attachment
// slot of the track. Snapshots carry no clock or identity.
type Snapshot struct {
	GPA          float64
	Reason       string
	Program      string
	University   string
	Major        string
	Docs         map[string]string
	IncomeProofs []string
}

// SnapshotOf extracts the tracked fields of an application. universityName
// is recorded by name so the audit trail stays readable when universities
// are renumbered.
func SnapshotOf(app *models.Application, universityName string) Snapshot {
	a := app.Attachment
	docs := map[string]string{}

	var proofs []string

	switch app.Track {
	case models.TrackBachelor:
		docs[models.DocCPR] = a.CPRDoc
		docs[models.DocTranscript] = a.TranscriptDoc
		docs[models.DocSchoolCertificate] = a.SchoolCertificateDoc
		docs[models.DocAcceptanceLetter] = a.AcceptanceLetterDoc
		// Income proofs are a tracked collection on the bachelor track only.
		proofs = append([]string{}, a.IncomeProofDocs...)
	case models.TrackMasters:
		docs[models.DocCPR] = a.CPRDoc
		docs[models.DocGuardianCPR] = a.GuardianCPRDoc
		docs[models.DocIncome] = a.IncomeDoc
		docs[models.DocTranscript] = a.TranscriptDoc
		docs[models.DocUniversityCertificate] = a.UniversityCertificateDoc
		docs[models.DocAcceptanceLetter] = a.AcceptanceLetterDoc
		docs[models.DocTOEFLIELTS] = a.TOEFLIELTSDoc
	}

	return Snapshot{
		GPA:          app.GPA,
		Reason:       app.Reason,
		Program:      app.Program,
		University:   universityName,
		Major:        app.Major,
		Docs:         docs,
		IncomeProofs: proofs,
	}
}

// DiffSnapshot produces the JSON audit payload describing what changed
// between two snapshots. A nil old snapshot marks a first submission: every
// tracked field reads "Initial submit with <value>". Otherwise only the
// fields whose values differ appear, each as "Changed <old> to <new>";
// unchanged fields are omitted from the object entirely.
func DiffSnapshot(old *Snapshot, current Snapshot) (string, error) {
	out := map[string]string{}

	if old == nil {
		for name, value := range current.fields() {
			out[name] = "Initial submit with " + value
		}
	} else {
		oldFields := old.fields()
		newFields := current.fields()
		for name, newVal := range newFields {
			if oldVal, ok := oldFields[name]; !ok || oldVal != newVal {
				out[name] = fmt.Sprintf("Changed %s to %s", oldFields[name], newVal)
			}
		}
		// Slots present before but dropped now still count as changes.
		for name, oldVal := range oldFields {
			if _, ok := newFields[name]; !ok {
				out[name] = fmt.Sprintf("Changed %s to %s", oldVal, "")
			}
		}
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot diff: %w", err)
	}
	return string(payload), nil
}

// fields renders every tracked field to a comparable string keyed by its
// audit name.
func (s Snapshot) fields() map[string]string {
	out := map[string]string{
		"gpa":        strconv.FormatFloat(s.GPA, 'f', -1, 64),
		"reason":     s.Reason,
		"program":    s.Program,
		"university": s.University,
		"major":      s.Major,
	}
	for slot, key := range s.Docs {
		out[slot] = key
	}
	if s.IncomeProofs != nil {
		out[models.DocIncomeProof] = strings.Join(s.IncomeProofs, ", ")
	}
	return out
}
