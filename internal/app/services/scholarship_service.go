package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/filestorage"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/logger"
)

// scholarshipStore is the subset of ScholarshipRepository used here.
type scholarshipStore interface {
	GetByID(ctx context.Context, id int64) (*models.Scholarship, error)
	ListByStudent(ctx context.Context, cpr string) ([]*models.Scholarship, error)
	UpdateBankDetails(ctx context.Context, id int64, expectedVersion int, bankName, iban, ibanLetterKey string) error
	UpdateContract(ctx context.Context, id int64, expectedVersion int, contractKey string) error
	UpdateStatus(ctx context.Context, id int64, expectedVersion int, status models.ScholarshipStatus) error
}

// ScholarshipService handles the student-facing side of an awarded
// scholarship: bank details, the signed contract, and withdrawal.
type ScholarshipService interface {
	Mine(ctx context.Context, cpr string) ([]*models.Scholarship, error)
	SubmitBankDetails(ctx context.Context, cpr string, id int64, req *dto.BankDetailsRequest, ibanLetter *multipart.FileHeader) (*models.Scholarship, error)
	UploadContract(ctx context.Context, cpr string, id int64, expectedVersion int, contract *multipart.FileHeader) (*models.Scholarship, error)
	Withdraw(ctx context.Context, cpr string, id int64, expectedVersion int) error
}

type scholarshipService struct {
	scholarships scholarshipStore
	apps         applicationStore
	storage      filestorage.DocumentStorage
}

// NewScholarshipService creates a new ScholarshipService.
func NewScholarshipService(scholarships scholarshipStore, apps applicationStore, storage filestorage.DocumentStorage) ScholarshipService {
	return &scholarshipService{scholarships: scholarships, apps: apps, storage: storage}
}

// Mine returns the student's scholarships, newest first.
func (s *scholarshipService) Mine(ctx context.Context, cpr string) ([]*models.Scholarship, error) {
	return s.scholarships.ListByStudent(ctx, cpr)
}

// SubmitBankDetails records the disbursement bank account. The IBAN is
// checked with the standard mod-97 rule before anything is stored.
func (s *scholarshipService) SubmitBankDetails(ctx context.Context, cpr string, id int64, req *dto.BankDetailsRequest, ibanLetter *multipart.FileHeader) (*models.Scholarship, error) {
	scholarship, err := s.mutable(ctx, cpr, id)
	if err != nil {
		return nil, err
	}

	iban := normalizeIBAN(req.IBAN)
	if !validIBAN(iban) {
		return nil, apperrors.ErrInvalidIBAN
	}

	letterKey := scholarship.IBANLetterDoc
	if ibanLetter != nil {
		letterKey, err = s.storage.SaveDocument(ibanLetter, models.DocIBANLetter, cpr)
		if err != nil {
			return nil, apperrors.ErrUploadFailed
		}
	}
	if letterKey == "" {
		return nil, apperrors.ErrDocumentMissing
	}

	if err := s.scholarships.UpdateBankDetails(ctx, id, req.Version, req.BankName, iban, letterKey); err != nil {
		if ibanLetter != nil {
			if delErr := s.storage.DeleteDocument(letterKey); delErr != nil {
				logger.Warn().Err(delErr).Str("storageKey", letterKey).Msg("Failed to remove orphaned upload")
			}
		}
		return nil, err
	}

	if ibanLetter != nil && scholarship.IBANLetterDoc != "" {
		if err := s.storage.DeleteDocument(scholarship.IBANLetterDoc); err != nil {
			logger.Warn().Err(err).Str("storageKey", scholarship.IBANLetterDoc).Msg("Failed to remove replaced document")
		}
	}

	scholarship.BankName = req.BankName
	scholarship.IBAN = iban
	scholarship.IBANLetterDoc = letterKey
	scholarship.Version = req.Version + 1

	logger.Info().Int64("scholarshipID", id).Str("cpr", cpr).Msg("Bank details submitted")
	return scholarship, nil
}

// UploadContract stores the signed scholarship contract. Bank details must
// already be on file.
func (s *scholarshipService) UploadContract(ctx context.Context, cpr string, id int64, expectedVersion int, contract *multipart.FileHeader) (*models.Scholarship, error) {
	scholarship, err := s.mutable(ctx, cpr, id)
	if err != nil {
		return nil, err
	}
	if scholarship.IBAN == "" || scholarship.BankName == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "bank details must be submitted before the contract")
	}
	if contract == nil {
		return nil, apperrors.ErrDocumentMissing
	}

	contractKey, err := s.storage.SaveDocument(contract, models.DocSignedContract, cpr)
	if err != nil {
		return nil, apperrors.ErrUploadFailed
	}

	if err := s.scholarships.UpdateContract(ctx, id, expectedVersion, contractKey); err != nil {
		if delErr := s.storage.DeleteDocument(contractKey); delErr != nil {
			logger.Warn().Err(delErr).Str("storageKey", contractKey).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	if scholarship.SignedContractDoc != "" {
		if err := s.storage.DeleteDocument(scholarship.SignedContractDoc); err != nil {
			logger.Warn().Err(err).Str("storageKey", scholarship.SignedContractDoc).Msg("Failed to remove replaced document")
		}
	}

	scholarship.SignedContractDoc = contractKey
	scholarship.Version = expectedVersion + 1

	logger.Info().Int64("scholarshipID", id).Str("cpr", cpr).Msg("Signed contract uploaded")
	return scholarship, nil
}

// Withdraw declines the award. Irreversible.
func (s *scholarshipService) Withdraw(ctx context.Context, cpr string, id int64, expectedVersion int) error {
	if _, err := s.mutable(ctx, cpr, id); err != nil {
		return err
	}

	if err := s.scholarships.UpdateStatus(ctx, id, expectedVersion, models.ScholarshipWithdrawn); err != nil {
		return err
	}

	logger.Info().Int64("scholarshipID", id).Str("cpr", cpr).Msg("Scholarship withdrawn")
	return nil
}

// mutable loads the scholarship and checks ownership and that it still
// accepts student changes. A confirmed, rejected or withdrawn scholarship is
// read-only to the student.
func (s *scholarshipService) mutable(ctx context.Context, cpr string, id int64) (*models.Scholarship, error) {
	scholarship, err := s.scholarships.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scholarship.StudentCPR != cpr {
		return nil, apperrors.ErrScholarshipNotFound
	}
	if scholarship.IsConfirmed ||
		scholarship.Status == models.ScholarshipRejected ||
		scholarship.Status == models.ScholarshipWithdrawn {
		return nil, apperrors.ErrScholarshipLocked
	}
	return scholarship, nil
}

// normalizeIBAN strips spaces and upper-cases the account number.
func normalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
}

// validIBAN runs the ISO 13616 mod-97 check: move the first four characters
// to the end, map letters to 10..35, and the resulting number must be
// congruent to 1 modulo 97.
func validIBAN(iban string) bool {
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}

	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for _, c := range rearranged {
		switch {
		case c >= '0' && c <= '9':
			remainder = (remainder*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			remainder = (remainder*100 + int(c-'A') + 10) % 97
		default:
			return false
		}
	}
	return remainder == 1
}
