package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type fakeEligibilityEvaluator struct {
	result EligibilityResult
}

func (f *fakeEligibilityEvaluator) Evaluate(ctx context.Context, application *models.Application) (EligibilityResult, error) {
	return f.result, nil
}

type fakeMatrixSelector struct {
	selection MatrixSelection
}

func (f *fakeMatrixSelector) Select(ctx context.Context, application *models.Application) (MatrixSelection, error) {
	return f.selection, nil
}

type passthroughOverrides struct {
	rejected bool
}

func (f *passthroughOverrides) Apply(ctx context.Context, application *models.Application, selection MatrixSelection, maxLimit, setLimit int64) (OverrideResult, error) {
	if f.rejected {
		return OverrideResult{Rejected: true}, nil
	}
	return OverrideResult{MaxLimit: maxLimit, SetLimit: setLimit, Reason: consts.ReasonCreditLimitGeneration}, nil
}

type fakeCalculatorSettings struct {
	bands models.LimitAdjustmentFactorParams
	floor *models.RoundingDownValueParams
}

func (f *fakeCalculatorSettings) AdjustmentFactors(ctx context.Context) (models.LimitAdjustmentFactorParams, error) {
	return f.bands, nil
}

func (f *fakeCalculatorSettings) RoundingDownFloor(ctx context.Context) (*models.RoundingDownValueParams, error) {
	return f.floor, nil
}

type fakeGenerationWriter struct {
	stored []models.CreditLimitGeneration
}

func (f *fakeGenerationWriter) Store(ctx context.Context, generation models.CreditLimitGeneration) error {
	f.stored = append(f.stored, generation)
	return nil
}

func (f *fakeGenerationWriter) LatestByApplication(ctx context.Context, applicationID int64) (*models.CreditLimitGeneration, error) {
	if len(f.stored) == 0 {
		return nil, nil
	}
	return &f.stored[len(f.stored)-1], nil
}

type fakeAccountWriter struct {
	account *models.Account
	created int
	limits  []models.AccountLimit
}

func (f *fakeAccountWriter) AccountByCustomer(ctx context.Context, customerID int64) (*models.Account, error) {
	return f.account, nil
}

func (f *fakeAccountWriter) CreateAccount(ctx context.Context, customerID int64) (*models.Account, error) {
	f.created++
	f.account = &models.Account{ID: primitive.NewObjectID(), CustomerID: customerID, Status: consts.AccountStatusInactive}
	return f.account, nil
}

func (f *fakeAccountWriter) UpsertAccountLimit(ctx context.Context, accountID primitive.ObjectID, maxLimit, setLimit int64, affordabilityID, creditScoreID primitive.ObjectID) (*models.AccountLimit, error) {
	limit := models.AccountLimit{
		AccountID:      accountID,
		MaxLimit:       maxLimit,
		SetLimit:       setLimit,
		AvailableLimit: setLimit,
	}
	f.limits = append(f.limits, limit)
	return &limit, nil
}

type fakeCustomerLimitWriter struct {
	upserts map[int64]int64
}

func (f *fakeCustomerLimitWriter) Upsert(ctx context.Context, customerID int64, maxLimit int64) error {
	if f.upserts == nil {
		f.upserts = map[int64]int64{}
	}
	f.upserts[customerID] = maxLimit
	return nil
}

type fakePropertyWriter struct {
	stored []primitive.ObjectID
}

func (f *fakePropertyWriter) Store(ctx context.Context, application *models.Application, accountID primitive.ObjectID, selection MatrixSelection) error {
	f.stored = append(f.stored, accountID)
	return nil
}

type fakeLimitEmitter struct {
	messages []models.LimitGeneratedMessage
}

func (f *fakeLimitEmitter) EmitLimitGenerated(ctx context.Context, message models.LimitGeneratedMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

func defaultBands() models.LimitAdjustmentFactorParams {
	return models.LimitAdjustmentFactorParams{
		HighPGood:   models.AdjustmentBand{MinPGood: 0.85, Factor: 1.0},
		MediumPGood: models.AdjustmentBand{MinPGood: 0.75, Factor: 0.9},
		LowPGood:    models.AdjustmentBand{Factor: 0.8},
	}
}

type generationFixture struct {
	eligibility *fakeEligibilityEvaluator
	selector    *fakeMatrixSelector
	overrides   *passthroughOverrides
	settings    *fakeCalculatorSettings
	model       *fakeCreditModelRepo
	generation  *fakeGenerationWriter
	accounts    *fakeAccountWriter
	customer    *fakeCustomerLimitWriter
	properties  *fakePropertyWriter
	emitter     *fakeLimitEmitter
	svc         *CreditLimitService
}

func newGenerationFixture() *generationFixture {
	matrix := &models.CreditMatrix{
		ID:       primitive.NewObjectID(),
		Interest: 0.05,
		ProductLine: models.CreditMatrixProductLine{
			MaxDuration:   6,
			MaxLoanAmount: 10_000_000,
		},
	}
	f := &generationFixture{
		eligibility: &fakeEligibilityEvaluator{result: EligibilityResult{
			IsValidIdentity:     true,
			IsAffordable:        true,
			AffordabilityRecord: &models.AffordabilityHistory{ID: primitive.NewObjectID(), AffordabilityValue: 500_000},
		}},
		selector: &fakeMatrixSelector{selection: MatrixSelection{
			Matrix: matrix,
			Params: models.MatrixParams{PGood: 0.7},
		}},
		overrides:  &passthroughOverrides{},
		settings:   &fakeCalculatorSettings{bands: defaultBands()},
		model:      &fakeCreditModelRepo{score: &models.CreditScore{ID: primitive.NewObjectID()}},
		generation: &fakeGenerationWriter{},
		accounts:   &fakeAccountWriter{},
		customer:   &fakeCustomerLimitWriter{},
		properties: &fakePropertyWriter{},
		emitter:    &fakeLimitEmitter{},
	}
	f.svc = NewCreditLimitService(
		f.eligibility, f.selector, NewLimitCalculatorService(), f.overrides,
		f.settings, f.model, f.generation, f.accounts, f.customer,
		f.properties, f.emitter, nil)
	return f
}

func TestGenerateLimitEndToEnd(t *testing.T) {
	f := newGenerationFixture()

	// affordability 500,000, 6 months at 5% interest, pgood 0.7 (factor 0.8):
	// simple = 500,000*6/1.3 = 2,307,692 -> rounded 2,000,000
	// reduced = 1,846,154 -> rounded 1,500,000
	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1, CustomerID: 7})

	require.NoError(t, err)
	assert.Equal(t, OutcomeOK, result.Outcome)
	assert.Equal(t, int64(2_000_000), result.MaxLimit)
	assert.Equal(t, int64(1_500_000), result.SetLimit)
	assert.Equal(t, consts.ReasonCreditLimitGeneration, result.Reason)
	assert.NotEmpty(t, result.GUID)

	require.Len(t, f.generation.stored, 1)
	row := f.generation.stored[0]
	assert.Equal(t, int64(2_307_692), row.Log.SimpleLimit)
	assert.Equal(t, int64(1_846_154), row.Log.ReducedLimit)
	assert.Equal(t, consts.ReasonCreditLimitGeneration, row.Reason)
	assert.Equal(t, result.GUID, row.GUID)
	require.NotNil(t, row.AccountID)

	require.Len(t, f.accounts.limits, 1)
	assert.Equal(t, int64(1_500_000), f.accounts.limits[0].SetLimit)
	assert.Equal(t, int64(2_000_000), f.customer.upserts[7])

	require.Len(t, f.properties.stored, 1, "borrower attributes seeded with the first limit")
	assert.Equal(t, *row.AccountID, f.properties.stored[0])

	require.Len(t, f.emitter.messages, 1)
	assert.Equal(t, result.GUID, f.emitter.messages[0].GUID)
	assert.Equal(t, int64(1_500_000), f.emitter.messages[0].SetLimit)
}

func TestGenerateLimitCreatesAccountWhenAbsent(t *testing.T) {
	f := newGenerationFixture()

	_, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1, CustomerID: 7})

	require.NoError(t, err)
	assert.Equal(t, 1, f.accounts.created)
	assert.Equal(t, consts.AccountStatusInactive, f.accounts.account.Status)
}

func TestGenerateLimitReusesExistingAccount(t *testing.T) {
	f := newGenerationFixture()
	f.accounts.account = &models.Account{ID: primitive.NewObjectID(), CustomerID: 7, Status: "active"}

	_, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1, CustomerID: 7})

	require.NoError(t, err)
	assert.Zero(t, f.accounts.created)
}

func TestGenerateLimitInvalidIdentity(t *testing.T) {
	f := newGenerationFixture()
	f.eligibility.result = EligibilityResult{}

	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalidIdentity, result.Outcome)
	assert.Zero(t, result.MaxLimit)
	assert.Zero(t, result.SetLimit)
	assert.Empty(t, f.generation.stored)
	assert.Empty(t, f.emitter.messages)
}

func TestGenerateLimitNotAffordable(t *testing.T) {
	f := newGenerationFixture()
	f.eligibility.result = EligibilityResult{IsValidIdentity: true}

	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeNotAffordable, result.Outcome)
	assert.Empty(t, f.generation.stored)
}

func TestGenerateLimitRejectedByAnomaly(t *testing.T) {
	f := newGenerationFixture()
	f.selector.selection = MatrixSelection{Rejected: true}

	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRejectedByAnomaly, result.Outcome)
	assert.Empty(t, f.generation.stored)
}

func TestGenerateLimitNoMatrix(t *testing.T) {
	f := newGenerationFixture()
	f.selector.selection = MatrixSelection{}

	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoMatrix, result.Outcome)
	assert.Empty(t, f.generation.stored)
}

func TestGenerateLimitRejectedByBankStatementFloor(t *testing.T) {
	f := newGenerationFixture()
	f.overrides.rejected = true

	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRejectedByBankStatementFloor, result.Outcome)
	assert.Zero(t, result.MaxLimit)
	assert.Zero(t, result.SetLimit)
	assert.Empty(t, f.generation.stored)
	assert.Empty(t, f.properties.stored)
	assert.Empty(t, f.emitter.messages)
}

func TestGenerateLimitHighPGoodKeepsFullFactor(t *testing.T) {
	f := newGenerationFixture()
	f.selector.selection.Params.PGood = 0.9

	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1, CustomerID: 7})

	require.NoError(t, err)
	// factor 1.0 keeps reduced == simple: both round to 2,000,000
	assert.Equal(t, int64(2_000_000), result.MaxLimit)
	assert.Equal(t, int64(2_000_000), result.SetLimit)
}

func TestGenerateLimitMinimumViableFloor(t *testing.T) {
	f := newGenerationFixture()
	f.settings.floor = &models.RoundingDownValueParams{Floor: 500_000}
	f.eligibility.result.AffordabilityRecord = &models.AffordabilityHistory{ID: primitive.NewObjectID(), AffordabilityValue: 90_000}

	// simple = 90,000*6/1.3 = 415,385 -> band rounds to 0; floor lifts to 500,000
	result, err := f.svc.GenerateLimit(context.Background(), &models.Application{ApplicationID: 1, CustomerID: 7})

	require.NoError(t, err)
	assert.Equal(t, OutcomeOK, result.Outcome)
	assert.Equal(t, int64(500_000), result.SetLimit)
}

func TestGenerationOutcomeString(t *testing.T) {
	assert.Equal(t, "ok", OutcomeOK.String())
	assert.Equal(t, "not_affordable", OutcomeNotAffordable.String())
	assert.Equal(t, "rejected_by_bank_statement_floor", OutcomeRejectedByBankStatementFloor.String())
	assert.Equal(t, "unknown", GenerationOutcome(99).String())
}
