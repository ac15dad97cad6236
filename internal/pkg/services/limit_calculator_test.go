package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"globe/dodrio_credit_limit/internal/pkg/models"
)

func defaultBands() models.LimitAdjustmentFactorParams {
	return models.LimitAdjustmentFactorParams{
		HighPGood:   models.AdjustmentBand{MinPGood: 0.85, Factor: 1.0},
		MediumPGood: models.AdjustmentBand{MinPGood: 0.75, Factor: 0.9},
		LowPGood:    models.AdjustmentBand{Factor: 0.8},
	}
}

func TestCalculateUsesRoundHalfToEven(t *testing.T) {
	calc := NewLimitCalculatorService()
	productLine := models.CreditMatrixProductLine{MaxDuration: 6, MaxLoanAmount: 50_000_000}

	// 1000000 * 6 / 1.3 = 4615384.615..., rounds to 4615385.
	result := calc.Calculate(productLine, 0.05, 1_000_000, 0.8)
	assert.Equal(t, int64(4_615_385), result.SimpleLimit)

	// 500000 * 6 / 1.3 = 2307692.307..., rounds to 2307692.
	result = calc.Calculate(productLine, 0.05, 500_000, 0.8)
	assert.Equal(t, int64(2_307_692), result.SimpleLimit)
	// 2307692 * 0.8 = 1846153.6, rounds to 1846154.
	assert.Equal(t, int64(1_846_154), result.ReducedLimit)

	// Exact half goes to the even neighbor: 175500 * 2 / 2 = 175500, with
	// factor 0.5 the reduced limit is 87750 exactly, no tie. Force a tie via
	// factor on an odd simple limit: 3 * 0.5 = 1.5 rounds to 2.
	tie := calc.Calculate(models.CreditMatrixProductLine{MaxDuration: 1, MaxLoanAmount: 50_000_000}, 0, 3, 0.5)
	assert.Equal(t, int64(3), tie.SimpleLimit)
	assert.Equal(t, int64(2), tie.ReducedLimit)
}

func TestCalculateBandRounding(t *testing.T) {
	calc := NewLimitCalculatorService()
	productLine := models.CreditMatrixProductLine{MaxDuration: 6, MaxLoanAmount: 10_000_000}

	result := calc.Calculate(productLine, 0.05, 500_000, 0.8)
	// 2307692 floors to the 500000 band, 1846154 likewise.
	assert.Equal(t, int64(2_000_000), result.SimpleLimitRounded)
	assert.Equal(t, int64(1_500_000), result.ReducedLimitRounded)

	// Above 5000000 the band widens to 1000000.
	result = calc.Calculate(productLine, 0.05, 1_500_000, 1.0)
	assert.Equal(t, int64(6_923_077), result.SimpleLimit)
	assert.Equal(t, int64(6_000_000), result.SimpleLimitRounded)
}

func TestCalculateCapsAtProductLineMax(t *testing.T) {
	calc := NewLimitCalculatorService()
	productLine := models.CreditMatrixProductLine{MaxDuration: 6, MaxLoanAmount: 2_000_000}

	result := calc.Calculate(productLine, 0.05, 5_000_000, 1.0)
	assert.Equal(t, int64(2_000_000), result.MaxLimit)
	assert.Equal(t, int64(2_000_000), result.SetLimit)
	assert.LessOrEqual(t, result.MaxLimit, result.SimpleLimitRounded)
}

func TestRoundDownNearestIdempotent(t *testing.T) {
	for _, tc := range []struct {
		value int64
		step  int64
	}{
		{2_307_692, 500_000},
		{6_923_077, 1_000_000},
		{499_999, 500_000},
		{500_000, 500_000},
	} {
		once := roundDownNearest(tc.value, tc.step)
		assert.Equal(t, once, roundDownNearest(once, tc.step))
	}
}

func TestApplyMinimumViableLimit(t *testing.T) {
	calc := NewLimitCalculatorService()

	assert.Equal(t, int64(0), calc.ApplyMinimumViableLimit(0, nil))
	assert.Equal(t, int64(300_000),
		calc.ApplyMinimumViableLimit(0, &models.RoundingDownValueParams{Floor: 300_000}))
	// Floor only lifts limits already under 500000.
	assert.Equal(t, int64(500_000),
		calc.ApplyMinimumViableLimit(500_000, &models.RoundingDownValueParams{Floor: 600_000}))
	// A floor below the computed value never lowers it.
	assert.Equal(t, int64(400_000),
		calc.ApplyMinimumViableLimit(400_000, &models.RoundingDownValueParams{Floor: 300_000}))
}

func TestResolveAdjustmentFactorBands(t *testing.T) {
	calc := NewLimitCalculatorService()
	bands := defaultBands()

	assert.Equal(t, 1.0, calc.ResolveAdjustmentFactor(0.9, bands))
	// Band minimums are strict greater-than.
	assert.Equal(t, 0.9, calc.ResolveAdjustmentFactor(0.85, bands))
	assert.Equal(t, 0.9, calc.ResolveAdjustmentFactor(0.8, bands))
	assert.Equal(t, 0.8, calc.ResolveAdjustmentFactor(0.75, bands))
	assert.Equal(t, 0.8, calc.ResolveAdjustmentFactor(0.1, bands))
}

func TestSnapshotCarriesPreMatrixCeilings(t *testing.T) {
	calc := NewLimitCalculatorService()
	productLine := models.CreditMatrixProductLine{MaxDuration: 6, MaxLoanAmount: 10_000_000}

	result := calc.Calculate(productLine, 0.05, 500_000, 0.8)
	snapshot := result.Snapshot()
	assert.Equal(t, result.SimpleLimit, snapshot.SimpleLimit)
	assert.Equal(t, result.MaxLimit, snapshot.MaxLimitPreMatrix)
	assert.Equal(t, result.SetLimit, snapshot.SetLimitPreMatrix)
	assert.Equal(t, 0.8, snapshot.LimitAdjustmentFactor)
}
