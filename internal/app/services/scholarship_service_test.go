package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models/dto"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/apperrors"
)

type fakeScholarshipStore struct {
	scholarships map[int64]*models.Scholarship
}

func (f *fakeScholarshipStore) GetByID(_ context.Context, id int64) (*models.Scholarship, error) {
	s, ok := f.scholarships[id]
	if !ok {
		return nil, apperrors.ErrScholarshipNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeScholarshipStore) ListByStudent(_ context.Context, cpr string) ([]*models.Scholarship, error) {
	var out []*models.Scholarship
	for _, s := range f.scholarships {
		if s.StudentCPR == cpr {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeScholarshipStore) checkVersion(id int64, expectedVersion int) (*models.Scholarship, error) {
	s, ok := f.scholarships[id]
	if !ok {
		return nil, apperrors.ErrScholarshipNotFound
	}
	if s.Version != expectedVersion {
		return nil, apperrors.ErrVersionConflict
	}
	return s, nil
}

func (f *fakeScholarshipStore) UpdateBankDetails(_ context.Context, id int64, expectedVersion int, bankName, iban, ibanLetterKey string) error {
	s, err := f.checkVersion(id, expectedVersion)
	if err != nil {
		return err
	}
	s.BankName = bankName
	s.IBAN = iban
	s.IBANLetterDoc = ibanLetterKey
	s.Version++
	return nil
}

func (f *fakeScholarshipStore) UpdateContract(_ context.Context, id int64, expectedVersion int, contractKey string) error {
	s, err := f.checkVersion(id, expectedVersion)
	if err != nil {
		return err
	}
	s.SignedContractDoc = contractKey
	s.Version++
	return nil
}

func (f *fakeScholarshipStore) UpdateStatus(_ context.Context, id int64, expectedVersion int, status models.ScholarshipStatus) error {
	s, err := f.checkVersion(id, expectedVersion)
	if err != nil {
		return err
	}
	s.Status = status
	s.Version++
	return nil
}

func newScholarshipFixture() (ScholarshipService, *fakeScholarshipStore, *fakeStorage) {
	store := &fakeScholarshipStore{scholarships: map[int64]*models.Scholarship{
		1: {ID: 1, ApplicationID: 10, StudentCPR: "890101234", Status: models.ScholarshipPending, Version: 1},
	}}
	storage := &fakeStorage{}
	svc := NewScholarshipService(store, newFakeAppStore(), storage)
	return svc, store, storage
}

func TestValidIBAN(t *testing.T) {
	tests := []struct {
		name string
		iban string
		want bool
	}{
		{"bahrain", "BH67BMAG00001299123456", true},
		{"uk", "GB82WEST12345698765432", true},
		{"germany", "DE89370400440532013000", true},
		{"bad check digits", "GB82WEST12345698765431", false},
		{"too short", "BH67BMAG", false},
		{"illegal character", "GB82WEST1234569876543!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validIBAN(tt.iban); got != tt.want {
				t.Errorf("validIBAN(%q) = %v, want %v", tt.iban, got, tt.want)
			}
		})
	}
}

func TestSubmitBankDetails(t *testing.T) {
	ctx := context.Background()
	letter := &multipart.FileHeader{Filename: "letter.pdf"}

	request := func() *dto.BankDetailsRequest {
		return &dto.BankDetailsRequest{BankName: "NBB", IBAN: "bh67 bmag 0000 1299 1234 56", Version: 1}
	}

	t.Run("stores normalized details", func(t *testing.T) {
		svc, store, _ := newScholarshipFixture()

		updated, err := svc.SubmitBankDetails(ctx, "890101234", 1, request(), letter)
		if err != nil {
			t.Fatalf("SubmitBankDetails() error = %v", err)
		}
		if updated.IBAN != "BH67BMAG00001299123456" {
			t.Errorf("iban = %q, want normalized form", updated.IBAN)
		}
		if store.scholarships[1].IBANLetterDoc == "" {
			t.Error("iban letter key was not stored")
		}
		if store.scholarships[1].Version != 2 {
			t.Errorf("version = %d, want 2", store.scholarships[1].Version)
		}
	})

	t.Run("invalid iban is rejected", func(t *testing.T) {
		svc, _, _ := newScholarshipFixture()
		req := request()
		req.IBAN = "BH67BMAG00001299123457"

		_, err := svc.SubmitBankDetails(ctx, "890101234", 1, req, letter)
		if !errors.Is(err, apperrors.ErrInvalidIBAN) {
			t.Errorf("SubmitBankDetails() error = %v, want ErrInvalidIBAN", err)
		}
	})

	t.Run("missing letter is rejected", func(t *testing.T) {
		svc, _, _ := newScholarshipFixture()

		_, err := svc.SubmitBankDetails(ctx, "890101234", 1, request(), nil)
		if !errors.Is(err, apperrors.ErrDocumentMissing) {
			t.Errorf("SubmitBankDetails() error = %v, want ErrDocumentMissing", err)
		}
	})

	t.Run("another student reads not found", func(t *testing.T) {
		svc, _, _ := newScholarshipFixture()

		_, err := svc.SubmitBankDetails(ctx, "990101234", 1, request(), letter)
		if !errors.Is(err, apperrors.ErrScholarshipNotFound) {
			t.Errorf("SubmitBankDetails() error = %v, want ErrScholarshipNotFound", err)
		}
	})

	t.Run("confirmed scholarship is locked", func(t *testing.T) {
		svc, store, _ := newScholarshipFixture()
		store.scholarships[1].IsConfirmed = true

		_, err := svc.SubmitBankDetails(ctx, "890101234", 1, request(), letter)
		if !errors.Is(err, apperrors.ErrScholarshipLocked) {
			t.Errorf("SubmitBankDetails() error = %v, want ErrScholarshipLocked", err)
		}
	})

	t.Run("version conflict removes the fresh upload", func(t *testing.T) {
		svc, _, storage := newScholarshipFixture()
		req := request()
		req.Version = 7

		_, err := svc.SubmitBankDetails(ctx, "890101234", 1, req, letter)
		if !errors.Is(err, apperrors.ErrVersionConflict) {
			t.Fatalf("SubmitBankDetails() error = %v, want ErrVersionConflict", err)
		}
		if len(storage.deleted) != len(storage.saved) {
			t.Errorf("deleted %d of %d saved documents", len(storage.deleted), len(storage.saved))
		}
	})
}

func TestUploadContract(t *testing.T) {
	ctx := context.Background()
	contract := &multipart.FileHeader{Filename: "contract.pdf"}

	t.Run("requires bank details first", func(t *testing.T) {
		svc, _, _ := newScholarshipFixture()

		_, err := svc.UploadContract(ctx, "890101234", 1, 1, contract)
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("UploadContract() error = %v, want ErrBadRequest", err)
		}
	})

	t.Run("stores the signed contract", func(t *testing.T) {
		svc, store, _ := newScholarshipFixture()
		store.scholarships[1].BankName = "NBB"
		store.scholarships[1].IBAN = "BH67BMAG00001299123456"

		updated, err := svc.UploadContract(ctx, "890101234", 1, 1, contract)
		if err != nil {
			t.Fatalf("UploadContract() error = %v", err)
		}
		if updated.SignedContractDoc == "" {
			t.Error("contract key was not stored")
		}
		if store.scholarships[1].IsConfirmed {
			t.Error("contract upload must not confirm the scholarship")
		}
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		svc, store, _ := newScholarshipFixture()
		store.scholarships[1].BankName = "NBB"
		store.scholarships[1].IBAN = "BH67BMAG00001299123456"

		_, err := svc.UploadContract(ctx, "890101234", 1, 1, nil)
		if !errors.Is(err, apperrors.ErrDocumentMissing) {
			t.Errorf("UploadContract() error = %v, want ErrDocumentMissing", err)
		}
	})
}

func TestWithdrawScholarship(t *testing.T) {
	ctx := context.Background()

	t.Run("owner withdraws", func(t *testing.T) {
		svc, store, _ := newScholarshipFixture()

		if err := svc.Withdraw(ctx, "890101234", 1, 1); err != nil {
			t.Fatalf("Withdraw() error = %v", err)
		}
		if store.scholarships[1].Status != models.ScholarshipWithdrawn {
			t.Errorf("status = %s, want %s", store.scholarships[1].Status, models.ScholarshipWithdrawn)
		}
	})

	t.Run("withdrawn scholarship is locked", func(t *testing.T) {
		svc, store, _ := newScholarshipFixture()
		store.scholarships[1].Status = models.ScholarshipWithdrawn

		err := svc.Withdraw(ctx, "890101234", 1, 2)
		if !errors.Is(err, apperrors.ErrScholarshipLocked) {
			t.Errorf("Withdraw() error = %v, want ErrScholarshipLocked", err)
		}
	})
}
