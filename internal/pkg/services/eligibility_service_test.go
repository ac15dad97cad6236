package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type fakeAffordabilityRepo struct {
	latest *models.AffordabilityHistory
	sonic  *models.SonicAffordability
}

func (f *fakeAffordabilityRepo) LatestByApplication(ctx context.Context, applicationID int64) (*models.AffordabilityHistory, error) {
	return f.latest, nil
}

func (f *fakeAffordabilityRepo) SonicByApplication(ctx context.Context, applicationID int64) (*models.SonicAffordability, error) {
	return f.sonic, nil
}

type fakeHistoryRepo struct {
	sonicTagged   bool
	incomeChanged bool
}

func (f *fakeHistoryRepo) HasStatusChangeReason(ctx context.Context, applicationID int64, reason string) (bool, error) {
	return f.sonicTagged, nil
}

func (f *fakeHistoryRepo) HasNoteContaining(ctx context.Context, applicationID int64, fragment string) (bool, error) {
	return f.incomeChanged, nil
}

type fakeEligibilitySettings struct {
	threshold           *models.AffordabilityThresholdParams
	experimentThreshold *int64
	lbs                 *models.LBSBypassParams
}

func (f *fakeEligibilitySettings) AffordabilityThreshold(ctx context.Context) (*models.AffordabilityThresholdParams, error) {
	return f.threshold, nil
}

func (f *fakeEligibilitySettings) ExperimentThreshold(ctx context.Context) (*int64, error) {
	return f.experimentThreshold, nil
}

func (f *fakeEligibilitySettings) LBSBypass(ctx context.Context) (*models.LBSBypassParams, error) {
	return f.lbs, nil
}

type fakeBankStatementRepo struct {
	submit *models.BankStatementSubmit
}

func (f *fakeBankStatementRepo) SuccessfulSubmit(ctx context.Context, applicationID int64) (*models.BankStatementSubmit, error) {
	return f.submit, nil
}

type fakeQuotaCounter struct {
	allowed   bool
	remaining int64
	calls     int
}

func (f *fakeQuotaCounter) IncrementIfBelow(ctx context.Context, key string, quota int64) (bool, int64, error) {
	f.calls++
	return f.allowed, f.remaining, nil
}

type fakeQuotaNotifier struct {
	milestones []int64
}

func (f *fakeQuotaNotifier) NotifyQuotaMilestone(ctx context.Context, quotaName string, remaining int64) {
	f.milestones = append(f.milestones, remaining)
}

func newEligibilityFixture(affordability int64, thresholdSF int64) (*EligibilityService, *fakeQuotaCounter, *fakeQuotaNotifier) {
	counter := &fakeQuotaCounter{}
	notifier := &fakeQuotaNotifier{}
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{latest: &models.AffordabilityHistory{AffordabilityValue: affordability}},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{threshold: &models.AffordabilityThresholdParams{LimitValueSF: thresholdSF, LimitValueLF: thresholdSF * 2}},
		&fakeBankStatementRepo{},
		counter,
		notifier,
		func(nik string) bool { return nik != "" },
	)
	return svc, counter, notifier
}

func TestEvaluateInvalidIdentityIsHardRejection(t *testing.T) {
	svc, counter, _ := newEligibilityFixture(10_000_000, 300_000)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: ""})

	require.NoError(t, err)
	assert.False(t, result.IsValidIdentity)
	assert.False(t, result.IsAffordable)
	assert.Zero(t, counter.calls, "identity failure must not consume bypass quota")
}

func TestEvaluateAffordableShortForm(t *testing.T) {
	svc, _, _ := newEligibilityFixture(500_000, 300_000)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "3174051506900004", SubmissionForm: consts.SubmissionFormShort})

	require.NoError(t, err)
	assert.True(t, result.IsValidIdentity)
	assert.True(t, result.IsAffordable)
	assert.False(t, result.BypassedByBankStmt)
	require.NotNil(t, result.AffordabilityRecord)
	assert.Equal(t, int64(500_000), result.AffordabilityRecord.AffordabilityValue)
}

func TestEvaluateLongFormUsesLFThreshold(t *testing.T) {
	// SF threshold 300k, LF threshold 600k; a 500k affordability value
	// passes the short form but not the long form.
	svc, _, _ := newEligibilityFixture(500_000, 300_000)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "3174051506900004", SubmissionForm: consts.SubmissionFormLong})

	require.NoError(t, err)
	assert.False(t, result.IsAffordable)
}

func TestEvaluateExperimentThresholdOverridesFormValue(t *testing.T) {
	// Form thresholds 300k/600k; the running experiment recorded 800k,
	// so a 500k affordability value fails even on the short form.
	experiment := int64(800_000)
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{latest: &models.AffordabilityHistory{AffordabilityValue: 500_000}},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{
			threshold:           &models.AffordabilityThresholdParams{LimitValueSF: 300_000, LimitValueLF: 600_000},
			experimentThreshold: &experiment,
		},
		&fakeBankStatementRepo{},
		&fakeQuotaCounter{},
		&fakeQuotaNotifier{},
		func(nik string) bool { return true },
	)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "3174051506900004", SubmissionForm: consts.SubmissionFormShort})

	require.NoError(t, err)
	assert.False(t, result.IsAffordable)
}

func TestEvaluateExperimentThresholdCanRelaxFormValue(t *testing.T) {
	experiment := int64(400_000)
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{latest: &models.AffordabilityHistory{AffordabilityValue: 500_000}},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{
			threshold:           &models.AffordabilityThresholdParams{LimitValueSF: 300_000, LimitValueLF: 600_000},
			experimentThreshold: &experiment,
		},
		&fakeBankStatementRepo{},
		&fakeQuotaCounter{},
		&fakeQuotaNotifier{},
		func(nik string) bool { return true },
	)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "3174051506900004", SubmissionForm: consts.SubmissionFormLong})

	require.NoError(t, err)
	assert.True(t, result.IsAffordable)
}

func TestEvaluateMissingAffordabilityRecord(t *testing.T) {
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{},
		&fakeBankStatementRepo{},
		&fakeQuotaCounter{},
		&fakeQuotaNotifier{},
		func(nik string) bool { return true },
	)

	_, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "3174051506900004"})

	assert.ErrorIs(t, err, consts.ErrorAffordabilityNotFound)
}

func TestEvaluateMissingThresholdSettingDegradesToZero(t *testing.T) {
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{latest: &models.AffordabilityHistory{AffordabilityValue: 1}},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{},
		&fakeBankStatementRepo{},
		&fakeQuotaCounter{},
		&fakeQuotaNotifier{},
		func(nik string) bool { return true },
	)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "3174051506900004"})

	require.NoError(t, err)
	assert.True(t, result.IsAffordable)
}

func TestCheckAffordabilitySonicBothMustClear(t *testing.T) {
	cases := []struct {
		name            string
		processedIncome float64
		sonicValue      int64
		want            bool
	}{
		{"both clear", 2_000_000, 400_000, true},         // payment 600k >= 300k
		{"payment below", 900_000, 400_000, false},       // payment 270k < 300k
		{"sonic value below", 2_000_000, 200_000, false}, // sonic 200k < 300k
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewEligibilityService(
				&fakeAffordabilityRepo{
					latest: &models.AffordabilityHistory{AffordabilityValue: 100_000},
					sonic:  &models.SonicAffordability{ProcessedIncome: tc.processedIncome, SonicValue: tc.sonicValue},
				},
				&fakeHistoryRepo{sonicTagged: true, incomeChanged: true},
				&fakeEligibilitySettings{threshold: &models.AffordabilityThresholdParams{LimitValueSF: 300_000}},
				&fakeBankStatementRepo{},
				&fakeQuotaCounter{},
				&fakeQuotaNotifier{},
				func(nik string) bool { return true },
			)

			result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "x", SubmissionForm: consts.SubmissionFormShort})

			require.NoError(t, err)
			assert.Equal(t, tc.want, result.IsAffordable)
		})
	}
}

func TestCheckAffordabilitySonicIgnoredWithoutIncomeNote(t *testing.T) {
	// Sonic status change alone does not trigger the recompute; the
	// recorded affordability value stays authoritative.
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{
			latest: &models.AffordabilityHistory{AffordabilityValue: 400_000},
			sonic:  &models.SonicAffordability{ProcessedIncome: 100_000, SonicValue: 1},
		},
		&fakeHistoryRepo{sonicTagged: true, incomeChanged: false},
		&fakeEligibilitySettings{threshold: &models.AffordabilityThresholdParams{LimitValueSF: 300_000}},
		&fakeBankStatementRepo{},
		&fakeQuotaCounter{},
		&fakeQuotaNotifier{},
		func(nik string) bool { return true },
	)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "x"})

	require.NoError(t, err)
	assert.True(t, result.IsAffordable)
}

func TestBankStatementBypassConsumesQuota(t *testing.T) {
	counter := &fakeQuotaCounter{allowed: true, remaining: 42}
	notifier := &fakeQuotaNotifier{}
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{latest: &models.AffordabilityHistory{AffordabilityValue: 100_000}},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{
			threshold: &models.AffordabilityThresholdParams{LimitValueSF: 300_000},
			lbs:       &models.LBSBypassParams{Quota: 500},
		},
		&fakeBankStatementRepo{submit: &models.BankStatementSubmit{ApplicationID: 1}},
		counter,
		notifier,
		func(nik string) bool { return true },
	)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "x"})

	require.NoError(t, err)
	assert.True(t, result.IsAffordable)
	assert.True(t, result.BypassedByBankStmt)
	assert.Equal(t, 1, counter.calls)
	assert.Empty(t, notifier.milestones, "42 remaining is not a milestone")
}

func TestBankStatementBypassMilestoneAlert(t *testing.T) {
	counter := &fakeQuotaCounter{allowed: true, remaining: 50}
	notifier := &fakeQuotaNotifier{}
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{latest: &models.AffordabilityHistory{AffordabilityValue: 100_000}},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{
			threshold: &models.AffordabilityThresholdParams{LimitValueSF: 300_000},
			lbs:       &models.LBSBypassParams{Quota: 500},
		},
		&fakeBankStatementRepo{submit: &models.BankStatementSubmit{ApplicationID: 1}},
		counter,
		notifier,
		func(nik string) bool { return true },
	)

	_, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "x"})

	require.NoError(t, err)
	assert.Equal(t, []int64{50}, notifier.milestones)
}

func TestBankStatementBypassQuotaExhausted(t *testing.T) {
	counter := &fakeQuotaCounter{allowed: false}
	svc := NewEligibilityService(
		&fakeAffordabilityRepo{latest: &models.AffordabilityHistory{AffordabilityValue: 100_000}},
		&fakeHistoryRepo{},
		&fakeEligibilitySettings{
			threshold: &models.AffordabilityThresholdParams{LimitValueSF: 300_000},
			lbs:       &models.LBSBypassParams{Quota: 500},
		},
		&fakeBankStatementRepo{submit: &models.BankStatementSubmit{ApplicationID: 1}},
		counter,
		&fakeQuotaNotifier{},
		func(nik string) bool { return true },
	)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "x"})

	require.NoError(t, err)
	assert.False(t, result.IsAffordable)
	assert.True(t, result.IsValidIdentity)
}

func TestBankStatementBypassRequiresSuccessfulSubmit(t *testing.T) {
	svc, counter, _ := newEligibilityFixture(100_000, 300_000)

	result, err := svc.Evaluate(context.Background(), &models.Application{ApplicationID: 1, NIK: "x"})

	require.NoError(t, err)
	assert.False(t, result.IsAffordable)
	assert.Zero(t, counter.calls)
}
