package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"

	"golang.org/x/sync/errgroup"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/eligibility"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/filestorage"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
)

// applicationStore is the subset of ApplicationRepository used here.
type applicationStore interface {
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByStudent(ctx context.Context, cpr string) ([]*models.Application, error)
	ListByStudentAndBatch(ctx context.Context, cpr string, batchYear int) ([]*models.Application, error)
	CreateWithLog(ctx context.Context, app *models.Application, entry *models.AuditLog) (int64, error)
	UpdateWithLog(ctx context.Context, app *models.Application, expectedVersion int, entry *models.AuditLog) error
	UpdateStatusWithLog(ctx context.Context, id int64, expectedVersion int, status models.Status, entry *models.AuditLog) error
}

// auditStore is the subset of AuditLogRepository used here.
type auditStore interface {
	ListByApplication(ctx context.Context, applicationID int64) ([]*models.AuditLog, error)
}

// ApplicationService drives the application lifecycle: listing, submission,
// editing, withdrawal and the audit trail. Every mutation is gated by the
// batch windows and re-derives the score and status from the decision core.
type ApplicationService interface {
	List(ctx context.Context, cpr string) ([]*models.Application, error)
	Get(ctx context.Context, cpr string, id int64) (*models.Application, error)
	Logs(ctx context.Context, cpr string, id int64) ([]*models.AuditLog, error)
	Create(ctx context.Context, cpr string, req *dto.CreateApplicationRequest, docs map[string]*multipart.FileHeader, incomeProofs []*multipart.FileHeader) (*models.Application, error)
	Update(ctx context.Context, cpr string, id int64, req *dto.UpdateApplicationRequest, docs map[string]*multipart.FileHeader, incomeProofs []*multipart.FileHeader) (*models.Application, error)
	Withdraw(ctx context.Context, cpr string, id int64, expectedVersion int) error
}

type applicationService struct {
	apps         applicationStore
	batches      batchStore
	universities universityStore
	audits       auditStore
	storage      filestorage.DocumentStorage
	windows      *eligibility.WindowEvaluator
	scoring      eligibility.ScoringPolicy
	minGPA       map[models.Track]float64
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	apps applicationStore,
	batches batchStore,
	universities universityStore,
	audits auditStore,
	storage filestorage.DocumentStorage,
	windows *eligibility.WindowEvaluator,
	scoring eligibility.ScoringPolicy,
	bachelorMinGPA, masterMinGPA float64,
) ApplicationService {
	return &applicationService{
		apps:         apps,
		batches:      batches,
		universities: universities,
		audits:       audits,
		storage:      storage,
		windows:      windows,
		scoring:      scoring,
		minGPA: map[models.Track]float64{
			models.TrackBachelor: bachelorMinGPA,
			models.TrackMasters:  masterMinGPA,
		},
	}
}

// List returns the student's applications, best status first.
func (s *applicationService) List(ctx context.Context, cpr string) ([]*models.Application, error) {
	apps, err := s.apps.ListByStudent(ctx, cpr)
	if err != nil {
		return nil, err
	}
	eligibility.SortByStatus(apps)
	return apps, nil
}

// Get returns one application. Another student's application reads as not
// found so application IDs cannot be probed.
func (s *applicationService) Get(ctx context.Context, cpr string, id int64) (*models.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.StudentCPR != cpr {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

// Logs returns the audit trail of the student's application, oldest first.
func (s *applicationService) Logs(ctx context.Context, cpr string, id int64) ([]*models.AuditLog, error) {
	if _, err := s.Get(ctx, cpr, id); err != nil {
		return nil, err
	}
	return s.audits.ListByApplication(ctx, id)
}

// Create submits a new application into the current batch. The document set
// is uploaded first, then completeness, score and status are derived and the
// row is written together with its initial audit entry.
func (s *applicationService) Create(ctx context.Context, cpr string, req *dto.CreateApplicationRequest, docs map[string]*multipart.FileHeader, incomeProofs []*multipart.FileHeader) (*models.Application, error) {
	batch, err := s.batches.GetCurrent(ctx)
	if err != nil {
		return nil, apperrors.ErrNoActiveBatch
	}
	if !s.windows.NewApplicationOpen(batch) {
		return nil, apperrors.ErrApplicationsClosed
	}

	track := models.Track(req.Track)
	if err := s.checkGPA(track, req.GPA); err != nil {
		return nil, err
	}

	// One live application per student per batch. Withdrawn applications do
	// not count, so a student who withdrew may apply again.
	existing, err := s.apps.ListByStudentAndBatch(ctx, cpr, batch.BatchYear)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.Status != models.StatusWithdrawn {
			return nil, apperrors.ErrActiveApplication
		}
	}

	university, err := s.universities.GetByID(ctx, req.UniversityID)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		StudentCPR:    cpr,
		Track:         track,
		GPA:           req.GPA,
		IncomeBracket: models.IncomeBracket(req.IncomeBracket),
		BatchYear:     batch.BatchYear,
		Reason:        req.Reason,
		Program:       req.Program,
		Major:         req.Major,
		UniversityID:  university.ID,
		University:    university,
	}

	uploaded, proofKeys, err := s.uploadDocuments(ctx, cpr, docs, incomeProofs)
	if err != nil {
		return nil, err
	}
	applySlots(&app.Attachment, uploaded)
	app.Attachment.IncomeProofDocs = proofKeys

	complete := eligibility.AllDocsPresent(app, university.IsException)
	app.Status = eligibility.DeriveOnCreate(complete)
	app.Score = s.scoring.ScoreOnCreate(app)

	snapshot := eligibility.SnapshotOf(app, university.Name)
	payload, err := eligibility.DiffSnapshot(nil, snapshot)
	if err != nil {
		s.cleanupUploads(uploaded, proofKeys)
		return nil, err
	}

	entry := &models.AuditLog{StudentCPR: cpr, Snapshot: payload, Reason: "submit"}
	if _, err := s.apps.CreateWithLog(ctx, app, entry); err != nil {
		s.cleanupUploads(uploaded, proofKeys)
		return nil, err
	}

	logger.Info().
		Int64("applicationID", app.ID).
		Str("cpr", cpr).
		Str("track", string(app.Track)).
		Str("status", string(app.Status)).
		Msg("Application submitted")
	return app, nil
}

// Update edits an existing application. Replaced documents are uploaded
// before the write and the old keys are removed only after it commits.
func (s *applicationService) Update(ctx context.Context, cpr string, id int64, req *dto.UpdateApplicationRequest, docs map[string]*multipart.FileHeader, incomeProofs []*multipart.FileHeader) (*models.Application, error) {
	app, err := s.Get(ctx, cpr, id)
	if err != nil {
		return nil, err
	}
	if !eligibility.CanEdit(app.Status) {
		return nil, apperrors.ErrApplicationLocked
	}

	batch, err := s.batches.GetByYear(ctx, app.BatchYear)
	if err != nil {
		return nil, err
	}
	if !s.windows.EditingOpenFor(batch, app.University) {
		return nil, apperrors.ErrEditingClosed
	}
	if err := s.checkGPA(app.Track, req.GPA); err != nil {
		return nil, err
	}

	university := app.University
	if req.UniversityID != app.UniversityID {
		university, err = s.universities.GetByID(ctx, req.UniversityID)
		if err != nil {
			return nil, err
		}
	}

	priorStatus := app.Status
	oldSnapshot := eligibility.SnapshotOf(app, app.University.Name)

	uploaded, proofKeys, err := s.uploadDocuments(ctx, cpr, docs, incomeProofs)
	if err != nil {
		return nil, err
	}
	replaced := replacedKeys(app.Attachment, uploaded)
	applySlots(&app.Attachment, uploaded)
	app.Attachment.IncomeProofDocs = append(app.Attachment.IncomeProofDocs, proofKeys...)

	app.GPA = req.GPA
	app.IncomeBracket = models.IncomeBracket(req.IncomeBracket)
	app.Reason = req.Reason
	app.Program = req.Program
	app.Major = req.Major
	app.UniversityID = university.ID
	app.University = university

	complete := eligibility.AllDocsPresent(app, university.IsException)
	app.Status = eligibility.DeriveOnUpdate(priorStatus, complete)
	app.Score = s.scoring.ScoreOnUpdate(app, priorStatus)

	newSnapshot := eligibility.SnapshotOf(app, university.Name)
	payload, err := eligibility.DiffSnapshot(&oldSnapshot, newSnapshot)
	if err != nil {
		s.cleanupUploads(uploaded, proofKeys)
		return nil, err
	}

	entry := &models.AuditLog{ApplicationID: id, StudentCPR: cpr, Snapshot: payload, Reason: "update"}
	if err := s.apps.UpdateWithLog(ctx, app, req.Version, entry); err != nil {
		s.cleanupUploads(uploaded, proofKeys)
		return nil, err
	}

	for _, key := range replaced {
		if err := s.storage.DeleteDocument(key); err != nil {
			logger.Warn().Err(err).Str("storageKey", key).Msg("Failed to remove replaced document")
		}
	}

	logger.Info().
		Int64("applicationID", id).
		Str("status", string(app.Status)).
		Int("version", app.Version).
		Msg("Application updated")
	return app, nil
}

// Withdraw moves the application to WITHDRAWN. Irreversible; locked
// applications cannot be withdrawn.
func (s *applicationService) Withdraw(ctx context.Context, cpr string, id int64, expectedVersion int) error {
	app, err := s.Get(ctx, cpr, id)
	if err != nil {
		return err
	}
	if !eligibility.CanWithdraw(app.Status) {
		return apperrors.ErrApplicationLocked
	}

	payload, err := json.Marshal(map[string]string{
		"status": fmt.Sprintf("Changed %s to %s", app.Status, models.StatusWithdrawn),
	})
	if err != nil {
		return fmt.Errorf("failed to encode withdrawal entry: %w", err)
	}

	entry := &models.AuditLog{ApplicationID: id, StudentCPR: cpr, Snapshot: string(payload), Reason: "withdraw"}
	if err := s.apps.UpdateStatusWithLog(ctx, id, expectedVersion, models.StatusWithdrawn, entry); err != nil {
		return err
	}

	logger.Info().Int64("applicationID", id).Str("cpr", cpr).Msg("Application withdrawn")
	return nil
}

// checkGPA enforces the per-track GPA band from configuration.
func (s *applicationService) checkGPA(track models.Track, gpa float64) error {
	min, ok := s.minGPA[track]
	if !ok {
		return apperrors.NewValidationError("unknown track")
	}
	if gpa < min || gpa > 100 {
		return apperrors.NewCustomError(apperrors.ErrInvalidGPA,
			fmt.Sprintf("GPA must be between %.1f and 100", min))
	}
	return nil
}

// uploadDocuments stores every provided document concurrently and returns the
// issued storage keys by slot, plus the income-proof keys in input order. On
// any failure the documents that did land are removed.
func (s *applicationService) uploadDocuments(ctx context.Context, cpr string, docs map[string]*multipart.FileHeader, incomeProofs []*multipart.FileHeader) (map[string]string, []string, error) {
	type job struct {
		slot string
		file *multipart.FileHeader
	}

	jobs := make([]job, 0, len(docs)+len(incomeProofs))
	for slot, file := range docs {
		jobs = append(jobs, job{slot: slot, file: file})
	}
	for _, file := range incomeProofs {
		jobs = append(jobs, job{slot: models.DocIncomeProof, file: file})
	}
	if len(jobs) == 0 {
		return map[string]string{}, nil, nil
	}

	keys := make([]string, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			key, err := s.storage.SaveDocument(j.file, j.slot, cpr)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", apperrors.ErrUploadFailed, j.slot, err)
			}
			keys[i] = key
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, key := range keys {
			if key == "" {
				continue
			}
			if delErr := s.storage.DeleteDocument(key); delErr != nil {
				logger.Warn().Err(delErr).Str("storageKey", key).Msg("Failed to remove orphaned upload")
			}
		}
		return nil, nil, err
	}

	uploaded := map[string]string{}
	var proofKeys []string
	for i, j := range jobs {
		if j.slot == models.DocIncomeProof {
			proofKeys = append(proofKeys, keys[i])
		} else {
			uploaded[j.slot] = keys[i]
		}
	}
	return uploaded, proofKeys, nil
}

// cleanupUploads removes documents stored for a mutation that did not commit.
func (s *applicationService) cleanupUploads(uploaded map[string]string, proofKeys []string) {
	for _, key := range uploaded {
		if err := s.storage.DeleteDocument(key); err != nil {
			logger.Warn().Err(err).Str("storageKey", key).Msg("Failed to remove orphaned upload")
		}
	}
	for _, key := range proofKeys {
		if err := s.storage.DeleteDocument(key); err != nil {
			logger.Warn().Err(err).Str("storageKey", key).Msg("Failed to remove orphaned upload")
		}
	}
}

// applySlots writes uploaded storage keys into their attachment slots.
func applySlots(att *models.Attachment, uploaded map[string]string) {
	for slot, key := range uploaded {
		switch slot {
		case models.DocCPR:
			att.CPRDoc = key
		case models.DocTranscript:
			att.TranscriptDoc = key
		case models.DocSchoolCertificate:
			att.SchoolCertificateDoc = key
		case models.DocUniversityCertificate:
			att.UniversityCertificateDoc = key
		case models.DocAcceptanceLetter:
			att.AcceptanceLetterDoc = key
		case models.DocTOEFLIELTS:
			att.TOEFLIELTSDoc = key
		case models.DocGuardianCPR:
			att.GuardianCPRDoc = key
		case models.DocIncome:
			att.IncomeDoc = key
		}
	}
}

// replacedKeys lists the old storage keys of slots about to be overwritten.
func replacedKeys(att models.Attachment, uploaded map[string]string) []string {
	current := map[string]string{
		models.DocCPR:                   att.CPRDoc,
		models.DocTranscript:            att.TranscriptDoc,
		models.DocSchoolCertificate:     att.SchoolCertificateDoc,
		models.DocUniversityCertificate: att.UniversityCertificateDoc,
		models.DocAcceptanceLetter:      att.AcceptanceLetterDoc,
		models.DocTOEFLIELTS:            att.TOEFLIELTSDoc,
		models.DocGuardianCPR:           att.GuardianCPRDoc,
		models.DocIncome:                att.IncomeDoc,
	}

	var replaced []string
	for slot := range uploaded {
		if old := current[slot]; old != "" {
			replaced = append(replaced, old)
		}
	}
	return replaced
}
