package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
	"globe/dodrio_credit_limit/internal/pkg/utils/worker"
)

// GenerationOutcome classifies why a generation run did or did not
// produce a limit. Callers branch on it to drive the application-status
// transition.
type GenerationOutcome int

const (
	OutcomeOK GenerationOutcome = iota
	OutcomeNotAffordable
	OutcomeInvalidIdentity
	OutcomeNoMatrix
	OutcomeRejectedByBankStatementFloor
	OutcomeRejectedByAnomaly
)

func (o GenerationOutcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotAffordable:
		return "not_affordable"
	case OutcomeInvalidIdentity:
		return "invalid_identity"
	case OutcomeNoMatrix:
		return "no_matrix"
	case OutcomeRejectedByBankStatementFloor:
		return "rejected_by_bank_statement_floor"
	case OutcomeRejectedByAnomaly:
		return "rejected_by_anomaly"
	}
	return "unknown"
}

// GenerationResult is what a full pipeline run produced.
type GenerationResult struct {
	Outcome  GenerationOutcome
	MaxLimit int64
	SetLimit int64
	Reason   string
	GUID     string
}

type EligibilityEvaluator interface {
	Evaluate(ctx context.Context, application *models.Application) (EligibilityResult, error)
}

type MatrixSelector interface {
	Select(ctx context.Context, application *models.Application) (MatrixSelection, error)
}

type OverrideApplier interface {
	Apply(ctx context.Context, application *models.Application, selection MatrixSelection, maxLimit, setLimit int64) (OverrideResult, error)
}

type CalculatorSettingsRepo interface {
	AdjustmentFactors(ctx context.Context) (models.LimitAdjustmentFactorParams, error)
	RoundingDownFloor(ctx context.Context) (*models.RoundingDownValueParams, error)
}

type GenerationWriterRepo interface {
	Store(ctx context.Context, generation models.CreditLimitGeneration) error
	LatestByApplication(ctx context.Context, applicationID int64) (*models.CreditLimitGeneration, error)
}

type AccountWriterRepo interface {
	AccountByCustomer(ctx context.Context, customerID int64) (*models.Account, error)
	CreateAccount(ctx context.Context, customerID int64) (*models.Account, error)
	UpsertAccountLimit(ctx context.Context, accountID primitive.ObjectID, maxLimit, setLimit int64, affordabilityID, creditScoreID primitive.ObjectID) (*models.AccountLimit, error)
}

type CustomerLimitWriterRepo interface {
	Upsert(ctx context.Context, customerID int64, maxLimit int64) error
}

type LimitEventEmitter interface {
	EmitLimitGenerated(ctx context.Context, message models.LimitGeneratedMessage) error
}

type AccountPropertyWriter interface {
	Store(ctx context.Context, application *models.Application, accountID primitive.ObjectID, selection MatrixSelection) error
}

type CreditLimitService struct {
	eligibility       EligibilityEvaluator
	selector          MatrixSelector
	calculator        *LimitCalculatorService
	overrides         OverrideApplier
	settingsRepo      CalculatorSettingsRepo
	creditModelRepo   CreditModelRepo
	generationRepo    GenerationWriterRepo
	accountRepo       AccountWriterRepo
	customerLimitRepo CustomerLimitWriterRepo
	accountProps      AccountPropertyWriter
	emitter           LimitEventEmitter
	workerPool        *worker.WorkerPool
}

func NewCreditLimitService(
	eligibility EligibilityEvaluator,
	selector MatrixSelector,
	calculator *LimitCalculatorService,
	overrides OverrideApplier,
	settingsRepo CalculatorSettingsRepo,
	creditModelRepo CreditModelRepo,
	generationRepo GenerationWriterRepo,
	accountRepo AccountWriterRepo,
	customerLimitRepo CustomerLimitWriterRepo,
	accountProps AccountPropertyWriter,
	emitter LimitEventEmitter,
	workerPool *worker.WorkerPool,
) *CreditLimitService {
	return &CreditLimitService{
		eligibility:       eligibility,
		selector:          selector,
		calculator:        calculator,
		overrides:         overrides,
		settingsRepo:      settingsRepo,
		creditModelRepo:   creditModelRepo,
		generationRepo:    generationRepo,
		accountRepo:       accountRepo,
		customerLimitRepo: customerLimitRepo,
		accountProps:      accountProps,
		emitter:           emitter,
		workerPool:        workerPool,
	}
}

// GenerateLimit runs the full pipeline for one application: eligibility,
// matrix selection, calculation, overrides, persistence, then the
// fire-and-forget downstream emit. Rejection outcomes return with zero
// limits and no persisted generation row.
func (s *CreditLimitService) GenerateLimit(ctx context.Context, application *models.Application) (GenerationResult, error) {
	result := GenerationResult{GUID: uuid.New().String()}

	eligibility, err := s.eligibility.Evaluate(ctx, application)
	if err != nil {
		return result, err
	}
	if !eligibility.IsValidIdentity {
		result.Outcome = OutcomeInvalidIdentity
		return result, nil
	}
	if !eligibility.IsAffordable {
		result.Outcome = OutcomeNotAffordable
		return result, nil
	}

	selection, err := s.selector.Select(ctx, application)
	if err != nil {
		return result, err
	}
	if selection.Rejected {
		result.Outcome = OutcomeRejectedByAnomaly
		return result, nil
	}
	if selection.Matrix == nil {
		logger.Warn(ctx, "CreditLimit : application %d has no matching matrix", application.ApplicationID)
		result.Outcome = OutcomeNoMatrix
		return result, nil
	}

	bands, err := s.settingsRepo.AdjustmentFactors(ctx)
	if err != nil {
		return result, err
	}
	factor := s.calculator.ResolveAdjustmentFactor(selection.Params.PGood, bands)

	calculation := s.calculator.Calculate(
		selection.Matrix.ProductLine,
		selection.Matrix.Interest,
		eligibility.AffordabilityRecord.AffordabilityValue,
		factor,
	)

	floor, err := s.settingsRepo.RoundingDownFloor(ctx)
	if err != nil {
		return result, err
	}
	setLimit := s.calculator.ApplyMinimumViableLimit(calculation.SetLimit, floor)

	overridden, err := s.overrides.Apply(ctx, application, selection, calculation.MaxLimit, setLimit)
	if err != nil {
		return result, err
	}
	if overridden.Rejected {
		result.Outcome = OutcomeRejectedByBankStatementFloor
		return result, nil
	}

	account, err := s.ensureAccount(ctx, application)
	if err != nil {
		return result, err
	}

	if err := s.persistLimits(ctx, application, account, selection, calculation, overridden, eligibility, result.GUID); err != nil {
		return result, err
	}

	// Seed the derived borrower attributes alongside the first limit; the
	// row is only refreshed again once the application reaches approval.
	if err := s.accountProps.Store(ctx, application, account.ID, selection); err != nil {
		return result, err
	}

	result.Outcome = OutcomeOK
	result.MaxLimit = overridden.MaxLimit
	result.SetLimit = overridden.SetLimit
	result.Reason = overridden.Reason

	s.emitGenerated(ctx, application, result)
	return result, nil
}

func (s *CreditLimitService) ensureAccount(ctx context.Context, application *models.Application) (*models.Account, error) {
	account, err := s.accountRepo.AccountByCustomer(ctx, application.CustomerID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}
	return s.accountRepo.CreateAccount(ctx, application.CustomerID)
}

func (s *CreditLimitService) persistLimits(
	ctx context.Context,
	application *models.Application,
	account *models.Account,
	selection MatrixSelection,
	calculation LimitCalculation,
	overridden OverrideResult,
	eligibility EligibilityResult,
	guid string,
) error {
	var creditScoreID primitive.ObjectID
	if score, err := s.creditModelRepo.ScoreByApplication(ctx, application.ApplicationID); err == nil && score != nil {
		creditScoreID = score.ID
	}

	if _, err := s.accountRepo.UpsertAccountLimit(ctx, account.ID,
		overridden.MaxLimit, overridden.SetLimit,
		eligibility.AffordabilityRecord.ID, creditScoreID); err != nil {
		return err
	}

	if err := s.customerLimitRepo.Upsert(ctx, application.CustomerID, overridden.MaxLimit); err != nil {
		return err
	}

	generation := models.CreditLimitGeneration{
		ApplicationID:          application.ApplicationID,
		AccountID:              &account.ID,
		CreditMatrixID:         selection.Matrix.ID,
		AffordabilityHistoryID: eligibility.AffordabilityRecord.ID,
		MaxLimit:               overridden.MaxLimit,
		SetLimit:               overridden.SetLimit,
		Log:                    calculation.Snapshot(),
		Reason:                 overridden.Reason,
		GUID:                   guid,
		CreatedAt:              time.Now(),
	}
	return s.generationRepo.Store(ctx, generation)
}

// emitGenerated hands the downstream notification to the worker pool so a
// slow or failing broker never blocks or rolls back the generation.
func (s *CreditLimitService) emitGenerated(ctx context.Context, application *models.Application, result GenerationResult) {
	message := models.LimitGeneratedMessage{
		GUID:          result.GUID,
		ApplicationID: application.ApplicationID,
		CustomerID:    application.CustomerID,
		MaxLimit:      result.MaxLimit,
		SetLimit:      result.SetLimit,
		Reason:        result.Reason,
		GeneratedAt:   time.Now(),
	}
	emit := func() {
		emitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.emitter.EmitLimitGenerated(emitCtx, message); err != nil {
			logger.Error(ctx, "CreditLimit : failed to emit limit generated event for application %d: %v", application.ApplicationID, err)
		}
	}
	if s.workerPool != nil {
		s.workerPool.Submit(emit)
		return
	}
	emit()
}
