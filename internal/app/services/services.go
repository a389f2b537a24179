package services

import (
	"time"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/eligibility"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/repositories"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/config"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/pkg/filestorage"
)

// Services defined in this package:
// - BatchService: Current batch and its window gates
// - UniversityService: University catalog lookups
// - ApplicationService: Application lifecycle (submit, edit, withdraw, audit trail)
// - ScholarshipService: Awarded scholarship handling (bank details, contract, withdraw)

// Services bundles all service instances for dependency injection.
type Services struct {
	BatchService       BatchService
	UniversityService  UniversityService
	ApplicationService ApplicationService
	ScholarshipService ScholarshipService
}

// NewServices wires the services over the repositories, document storage and
// the business-policy configuration.
func NewServices(repos *repositories.Repositories, storage filestorage.DocumentStorage, cfg *config.Config) *Services {
	windows := eligibility.NewWindowEvaluator(time.Now, cfg.Eligibility.BypassWindows, cfg.BatchLocation())
	scoring := eligibility.ScoringPolicy{
		GPAWeight:       cfg.Eligibility.GPAWeight,
		LowIncomeBonus:  cfg.Eligibility.LowIncomeBonus,
		HighIncomeBonus: cfg.Eligibility.HighIncomeBonus,
	}

	return &Services{
		BatchService:      NewBatchService(repos.BatchRepository, windows),
		UniversityService: NewUniversityService(repos.UniversityRepository),
		ApplicationService: NewApplicationService(
			repos.ApplicationRepository,
			repos.BatchRepository,
			repos.UniversityRepository,
			repos.AuditLogRepository,
			storage,
			windows,
			scoring,
			cfg.Eligibility.BachelorMinGPA,
			cfg.Eligibility.MasterMinGPA,
		),
		ScholarshipService: NewScholarshipService(repos.ScholarshipRepository, repos.ApplicationRepository, storage),
	}
}
