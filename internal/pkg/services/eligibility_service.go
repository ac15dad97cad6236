package services

import (
	"context"
	"math"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

// Repository interfaces
type AffordabilityRepo interface {
	LatestByApplication(ctx context.Context, applicationID int64) (*models.AffordabilityHistory, error)
	SonicByApplication(ctx context.Context, applicationID int64) (*models.SonicAffordability, error)
}

type ApplicationHistoryRepo interface {
	HasStatusChangeReason(ctx context.Context, applicationID int64, reason string) (bool, error)
	HasNoteContaining(ctx context.Context, applicationID int64, fragment string) (bool, error)
}

type EligibilitySettingsRepo interface {
	AffordabilityThreshold(ctx context.Context) (*models.AffordabilityThresholdParams, error)
	ExperimentThreshold(ctx context.Context) (*int64, error)
	LBSBypass(ctx context.Context) (*models.LBSBypassParams, error)
}

type BankStatementSubmitRepo interface {
	SuccessfulSubmit(ctx context.Context, applicationID int64) (*models.BankStatementSubmit, error)
}

type QuotaCounterStore interface {
	IncrementIfBelow(ctx context.Context, key string, quota int64) (bool, int64, error)
}

type QuotaAlertNotifier interface {
	NotifyQuotaMilestone(ctx context.Context, quotaName string, remaining int64)
}

// EligibilityResult is the tri-state outcome of the pre-matrix checks.
type EligibilityResult struct {
	IsAffordable        bool
	IsValidIdentity     bool
	BypassedByBankStmt  bool
	AffordabilityRecord *models.AffordabilityHistory
}

type EligibilityService struct {
	affordabilityRepo AffordabilityRepo
	historyRepo       ApplicationHistoryRepo
	settingsRepo      EligibilitySettingsRepo
	bankStatementRepo BankStatementSubmitRepo
	quotaCounter      QuotaCounterStore
	notifier          QuotaAlertNotifier
	identityCheck     func(nik string) bool
}

func NewEligibilityService(
	affordabilityRepo AffordabilityRepo,
	historyRepo ApplicationHistoryRepo,
	settingsRepo EligibilitySettingsRepo,
	bankStatementRepo BankStatementSubmitRepo,
	quotaCounter QuotaCounterStore,
	notifier QuotaAlertNotifier,
	identityCheck func(nik string) bool,
) *EligibilityService {
	return &EligibilityService{
		affordabilityRepo: affordabilityRepo,
		historyRepo:       historyRepo,
		settingsRepo:      settingsRepo,
		bankStatementRepo: bankStatementRepo,
		quotaCounter:      quotaCounter,
		notifier:          notifier,
		identityCheck:     identityCheck,
	}
}

// Evaluate runs the affordability and identity checks for the application.
// Identity failure is a hard rejection regardless of affordability; an
// unaffordable application can still pass via the bank-statement bypass
// quota.
func (s *EligibilityService) Evaluate(ctx context.Context, application *models.Application) (EligibilityResult, error) {
	result := EligibilityResult{}

	if !s.identityCheck(application.NIK) {
		logger.Warn(ctx, "Eligibility : application %d failed NIK validation", application.ApplicationID)
		return result, nil
	}
	result.IsValidIdentity = true

	affordability, err := s.affordabilityRepo.LatestByApplication(ctx, application.ApplicationID)
	if err != nil {
		return result, err
	}
	if affordability == nil {
		return result, consts.ErrorAffordabilityNotFound
	}
	result.AffordabilityRecord = affordability

	threshold, err := s.resolveThreshold(ctx, application)
	if err != nil {
		return result, err
	}

	affordable, err := s.checkAffordability(ctx, application, affordability.AffordabilityValue, threshold)
	if err != nil {
		return result, err
	}
	if affordable {
		result.IsAffordable = true
		return result, nil
	}

	bypassed, err := s.tryBankStatementBypass(ctx, application)
	if err != nil {
		return result, err
	}
	if bypassed {
		result.IsAffordable = true
		result.BypassedByBankStmt = true
		return result, nil
	}

	logger.Info(ctx, "Eligibility : application %d below affordability threshold %d", application.ApplicationID, threshold)
	return result, nil
}

// resolveThreshold picks the minimum affordability: the scoring
// experiment's recorded threshold when one is active, else the
// form-specific value from the feature setting. A missing setting means
// no threshold.
func (s *EligibilityService) resolveThreshold(ctx context.Context, application *models.Application) (int64, error) {
	experimentThreshold, err := s.settingsRepo.ExperimentThreshold(ctx)
	if err != nil {
		return 0, err
	}
	if experimentThreshold != nil {
		logger.Info(ctx, "Eligibility : application %d using experiment threshold %d", application.ApplicationID, *experimentThreshold)
		return *experimentThreshold, nil
	}

	params, err := s.settingsRepo.AffordabilityThreshold(ctx)
	if err != nil {
		return 0, err
	}
	if params == nil {
		return 0, nil
	}
	if application.SubmissionForm == consts.SubmissionFormLong {
		return params.LimitValueLF, nil
	}
	return params.LimitValueSF, nil
}

// checkAffordability compares the recorded value against the threshold,
// taking the sonic recompute path when the bank-scrape model changed the
// applicant's income after submission. On that path both the recomputed
// payment and the recorded sonic value must clear the threshold.
func (s *EligibilityService) checkAffordability(ctx context.Context, application *models.Application, affordabilityValue, threshold int64) (bool, error) {
	sonicTagged, err := s.historyRepo.HasStatusChangeReason(ctx, application.ApplicationID, consts.SonicChangeReason)
	if err != nil {
		return false, err
	}
	if !sonicTagged {
		return affordabilityValue >= threshold, nil
	}

	incomeChanged, err := s.historyRepo.HasNoteContaining(ctx, application.ApplicationID, consts.SonicBankScrapeNote)
	if err != nil {
		return false, err
	}
	if !incomeChanged {
		return affordabilityValue >= threshold, nil
	}

	sonic, err := s.affordabilityRepo.SonicByApplication(ctx, application.ApplicationID)
	if err != nil {
		return false, err
	}
	if sonic == nil || sonic.ProcessedIncome <= 0 {
		return affordabilityValue >= threshold, nil
	}

	recomputed := computeAffordablePayment(sonic.ProcessedIncome)
	logger.Info(ctx, "Eligibility : application %d sonic recompute payment=%d sonic=%d threshold=%d",
		application.ApplicationID, recomputed, sonic.SonicValue, threshold)
	return recomputed >= threshold && sonic.SonicValue >= threshold, nil
}

// tryBankStatementBypass consumes a slot of the shared bypass quota when
// an unaffordable applicant has a successfully parsed bank statement.
// Milestone alerts fire on the configured remaining-capacity marks.
func (s *EligibilityService) tryBankStatementBypass(ctx context.Context, application *models.Application) (bool, error) {
	submit, err := s.bankStatementRepo.SuccessfulSubmit(ctx, application.ApplicationID)
	if err != nil {
		return false, err
	}
	if submit == nil {
		return false, nil
	}

	params, err := s.settingsRepo.LBSBypass(ctx)
	if err != nil {
		return false, err
	}
	if params == nil || params.Quota <= 0 {
		return false, nil
	}

	allowed, remaining, err := s.quotaCounter.IncrementIfBelow(ctx, consts.LBSBypassCounterKey, params.Quota)
	if err != nil {
		return false, err
	}
	if !allowed {
		return false, nil
	}

	for _, milestone := range consts.QuotaAlertMilestones {
		if remaining == milestone {
			s.notifier.NotifyQuotaMilestone(ctx, consts.SettingLBS130Bypass, remaining)
			break
		}
	}

	logger.Info(ctx, "Eligibility : application %d bypassed via bank statement, %d slots remaining", application.ApplicationID, remaining)
	return true, nil
}

// computeAffordablePayment converts bank-scrape processed income into a
// monthly payment capacity.
func computeAffordablePayment(processedIncome float64) int64 {
	return int64(math.Floor(processedIncome * consts.AffordablePaymentIncomeRatio))
}
