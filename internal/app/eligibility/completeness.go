package eligibility

import "github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"

// AllDocsPresent reports whether an application carries every document its
// track requires. An empty storage key counts as missing.
//
// Bachelor: CPR, at least one family income proof, transcript, school
// certificate, and the acceptance letter unless acceptanceWaived (exception
// university). Masters: CPR, guardian CPR, income document, transcript,
// university certificate, acceptance letter and TOEFL/IELTS certificate,
// with no waiver.
func AllDocsPresent(app *models.Application, acceptanceWaived bool) bool {
	if app == nil {
		return false
	}

	a := app.Attachment
	switch app.Track {
	case models.TrackBachelor:
		if a.CPRDoc == "" || a.TranscriptDoc == "" || a.SchoolCertificateDoc == "" {
			return false
		}
		if len(a.IncomeProofDocs) == 0 {
			return false
		}
		if !acceptanceWaived && a.AcceptanceLetterDoc == "" {
			return false
		}
		return true

	case models.TrackMasters:
		return a.CPRDoc != "" &&
			a.GuardianCPRDoc != "" &&
			a.IncomeDoc != "" &&
			a.TranscriptDoc != "" &&
			a.UniversityCertificateDoc != "" &&
			a.AcceptanceLetterDoc != "" &&
			a.TOEFLIELTSDoc != ""

	default:
		return false
	}
}

// MissingDocs lists the unfilled required slots, in a stable order. Used to
// build precondition error details before any network call is made.
func MissingDocs(app *models.Application, acceptanceWaived bool) []string {
	if app == nil {
		return nil
	}

	a := app.Attachment
	var missing []string

	appendIf := func(slot, key string) {
		if key == "" {
			missing = append(missing, slot)
		}
	}

	switch app.Track {
	case models.TrackBachelor:
		appendIf(models.DocCPR, a.CPRDoc)
		if len(a.IncomeProofDocs) == 0 {
			missing = append(missing, models.DocIncomeProof)
		}
		appendIf(models.DocTranscript, a.TranscriptDoc)
		appendIf(models.DocSchoolCertificate, a.SchoolCertificateDoc)
		if !acceptanceWaived {
			appendIf(models.DocAcceptanceLetter, a.AcceptanceLetterDoc)
		}
	case models.TrackMasters:
		appendIf(models.DocCPR, a.CPRDoc)
		appendIf(models.DocGuardianCPR, a.GuardianCPRDoc)
		appendIf(models.DocIncome, a.IncomeDoc)
		appendIf(models.DocTranscript, a.TranscriptDoc)
		appendIf(models.DocUniversityCertificate, a.UniversityCertificateDoc)
		appendIf(models.DocAcceptanceLetter, a.AcceptanceLetterDoc)
		appendIf(models.DocTOEFLIELTS, a.TOEFLIELTSDoc)
	}

	return missing
}
