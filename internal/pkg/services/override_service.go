package services

import (
	"context"
	"math"
	"strconv"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type OverrideSettingsRepo interface {
	EntryLevelLimit(ctx context.Context) (*models.EntryLevelLimitParams, error)
	LeverageBankStatement(ctx context.Context) (models.LeverageBankStatementParams, error)
	OfflineActivation(ctx context.Context) (*models.OfflineActivationParams, error)
}

type BankStatementBalanceRepo interface {
	SuccessfulSubmit(ctx context.Context, applicationID int64) (*models.BankStatementSubmit, error)
	BalancesByApplication(ctx context.Context, applicationID int64) ([]models.BankStatementSubmitBalance, error)
}

type TurboApplicationRepo interface {
	TurboApplicationByCustomer(ctx context.Context, customerID int64) (*models.Application, error)
}

type GenerationHistoryRepo interface {
	LatestByApplication(ctx context.Context, applicationID int64) (*models.CreditLimitGeneration, error)
}

type GoldfishNotifier interface {
	NotifyGoldfishAttributes(ctx context.Context, applicationID int64, attributes map[string]string)
}

// OverrideResult is the limit pair after the cascade, with the reason that
// will be recorded on the generation row. Rejected means the
// bank-statement floor fired and no limit may be generated at all.
type OverrideResult struct {
	MaxLimit int64
	SetLimit int64
	Reason   string
	Rejected bool
}

type OverrideService struct {
	settingsRepo      OverrideSettingsRepo
	bankStatementRepo BankStatementBalanceRepo
	applicationRepo   TurboApplicationRepo
	generationRepo    GenerationHistoryRepo
	notifier          GoldfishNotifier
}

func NewOverrideService(
	settingsRepo OverrideSettingsRepo,
	bankStatementRepo BankStatementBalanceRepo,
	applicationRepo TurboApplicationRepo,
	generationRepo GenerationHistoryRepo,
	notifier GoldfishNotifier,
) *OverrideService {
	return &OverrideService{
		settingsRepo:      settingsRepo,
		bankStatementRepo: bankStatementRepo,
		applicationRepo:   applicationRepo,
		generationRepo:    generationRepo,
		notifier:          notifier,
	}
}

// Apply runs the post-calculation overrides in fixed order. Later steps
// see the limits produced by earlier ones; the bank-statement floor is the
// only step that can abort the pipeline outright.
func (s *OverrideService) Apply(ctx context.Context, application *models.Application, selection MatrixSelection, maxLimit, setLimit int64) (OverrideResult, error) {
	result := OverrideResult{
		MaxLimit: maxLimit,
		SetLimit: setLimit,
		Reason:   consts.ReasonCreditLimitGeneration,
	}

	entryLevelAssigned, err := s.applyEntryLevelCap(ctx, application, selection, &result)
	if err != nil {
		return result, err
	}

	if selection.GoldfishSelected && !entryLevelAssigned {
		s.notifier.NotifyGoldfishAttributes(ctx, application.ApplicationID, map[string]string{
			"pgood":    strconv.FormatFloat(selection.Params.PGood, 'f', -1, 64),
			"maxLimit": strconv.FormatInt(result.MaxLimit, 10),
			"setLimit": strconv.FormatInt(result.SetLimit, 10),
		})
	}

	if err := s.applyTurboCarryOver(ctx, application, selection, &result); err != nil {
		return result, err
	}

	rejected, err := s.applyBankStatementLeverage(ctx, application, selection, &result)
	if err != nil {
		return result, err
	}
	if rejected {
		result.Rejected = true
		result.MaxLimit = 0
		result.SetLimit = 0
		return result, nil
	}

	if !selection.IsEntryLevel && !entryLevelAssigned {
		s.applyGoodFDCCaps(ctx, application, selection, &result)
	}

	if err := s.applyOfflineActivation(ctx, application, selection, &result); err != nil {
		return result, err
	}

	return result, nil
}

func (s *OverrideService) applyEntryLevelCap(ctx context.Context, application *models.Application, selection MatrixSelection, result *OverrideResult) (bool, error) {
	if selection.IsEntryLevel || selection.IsSemiGood {
		return false, nil
	}
	params, err := s.settingsRepo.EntryLevelLimit(ctx)
	if err != nil {
		return false, err
	}
	if params == nil || params.LimitValue <= 0 {
		return false, nil
	}
	if selection.Params.PGood > params.MaxPGood {
		return false, nil
	}
	result.MaxLimit = params.LimitValue
	result.SetLimit = params.LimitValue
	result.Reason = consts.ReasonEntryLevelLimit
	logger.Info(ctx, "Override : application %d capped to entry level limit %d", application.ApplicationID, params.LimitValue)
	return true, nil
}

func (s *OverrideService) applyTurboCarryOver(ctx context.Context, application *models.Application, selection MatrixSelection, result *OverrideResult) error {
	if selection.IsSemiGood {
		return nil
	}
	turbo, err := s.applicationRepo.TurboApplicationByCustomer(ctx, application.CustomerID)
	if err != nil {
		return err
	}
	if turbo == nil || turbo.ApplicationID == application.ApplicationID {
		return nil
	}
	generation, err := s.generationRepo.LatestByApplication(ctx, turbo.ApplicationID)
	if err != nil {
		return err
	}
	if generation == nil {
		return nil
	}

	carried := result.SetLimit
	if generation.SetLimit > carried {
		carried = generation.SetLimit
	}
	result.MaxLimit = carried
	result.SetLimit = carried
	result.Reason = consts.ReasonTurboUpgrade
	logger.Info(ctx, "Override : application %d carried turbo limit %d forward", application.ApplicationID, carried)
	return nil
}

// applyBankStatementLeverage recomputes the limit from the best observed
// statement balance. Returns true when the derived limit falls under the
// rejection floor, which aborts the whole generation.
func (s *OverrideService) applyBankStatementLeverage(ctx context.Context, application *models.Application, selection MatrixSelection, result *OverrideResult) (bool, error) {
	if selection.IsSemiGood {
		return false, nil
	}
	submit, err := s.bankStatementRepo.SuccessfulSubmit(ctx, application.ApplicationID)
	if err != nil {
		return false, err
	}
	if submit == nil {
		return false, nil
	}

	params, err := s.settingsRepo.LeverageBankStatement(ctx)
	if err != nil {
		return false, err
	}

	balances, err := s.bankStatementRepo.BalancesByApplication(ctx, application.ApplicationID)
	if err != nil {
		return false, err
	}
	var balance float64
	for _, row := range balances {
		if row.AvgEOMBalance > balance {
			balance = row.AvgEOMBalance
		}
		if row.AvgAverageEODBalance > balance {
			balance = row.AvgAverageEODBalance
		}
	}

	givenLimit := int64(math.Floor(balance*params.Multiplier/consts.LBSBalanceRoundingStep)) * consts.LBSBalanceRoundingStep
	if givenLimit < params.MinRejectionLimit {
		logger.Warn(ctx, "Override : application %d rejected by bank statement floor, given %d below %d",
			application.ApplicationID, givenLimit, params.MinRejectionLimit)
		return true, nil
	}

	if givenLimit > params.LimitCap {
		givenLimit = params.LimitCap
	}
	if givenLimit > result.MaxLimit {
		givenLimit = result.MaxLimit
	}
	result.MaxLimit = givenLimit
	result.SetLimit = givenLimit
	result.Reason = consts.ReasonLeverageBankStatement
	logger.Info(ctx, "Override : application %d limit leveraged from bank statement to %d", application.ApplicationID, givenLimit)
	return false, nil
}

// applyGoodFDCCaps handles the flat-cap group. Click-pass is applied last
// so it wins when several conditions fire together.
func (s *OverrideService) applyGoodFDCCaps(ctx context.Context, application *models.Application, selection MatrixSelection, result *OverrideResult) {
	tags := selection.Tags
	if !selection.IsSemiGood && (tags[consts.TagReviveGoodFDC] || tags[consts.TagGoodFDCBypass]) {
		result.MaxLimit = consts.GoodFDCFlatLimit
		result.SetLimit = consts.GoodFDCFlatLimit
		result.Reason = consts.ReasonGoodFDCBypass
	}
	if tags[consts.TagCheckGoodFDC] {
		raised := result.MaxLimit
		if consts.GoodFDCFlatLimit > raised {
			raised = consts.GoodFDCFlatLimit
		}
		result.MaxLimit = raised
		result.SetLimit = raised
	}
	if tags[consts.TagClickPass] {
		result.MaxLimit = consts.ClickPassFlatLimit
		result.SetLimit = consts.ClickPassFlatLimit
		result.Reason = consts.ReasonClickPass
	}
}

func (s *OverrideService) applyOfflineActivation(ctx context.Context, application *models.Application, selection MatrixSelection, result *OverrideResult) error {
	if !selection.Tags[consts.TagOfflineActivation] {
		return nil
	}
	params, err := s.settingsRepo.OfflineActivation(ctx)
	if err != nil {
		return err
	}
	if params == nil || params.MinimumLimit <= 0 {
		return nil
	}
	result.MaxLimit = params.MinimumLimit
	result.SetLimit = params.MinimumLimit
	result.Reason = consts.ReasonOfflineActivation
	logger.Info(ctx, "Override : application %d forced to offline activation minimum %d", application.ApplicationID, params.MinimumLimit)
	return nil
}
