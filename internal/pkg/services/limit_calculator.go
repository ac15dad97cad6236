package services

import (
	"math"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

// LimitCalculation is the full output of one limit computation, including
// the intermediate values that get persisted as the generation snapshot.
type LimitCalculation struct {
	SimpleLimit           int64
	ReducedLimit          int64
	SimpleLimitRounded    int64
	ReducedLimitRounded   int64
	MaxLimit              int64
	SetLimit              int64
	LimitAdjustmentFactor float64
}

type LimitCalculatorService struct {
}

func NewLimitCalculatorService() *LimitCalculatorService {
	return &LimitCalculatorService{}
}

// Calculate derives the limit pair from affordability and the matrix
// product line. SimpleLimit de-amortizes the affordable installment over
// the maximum tenor; both raw limits use round-half-to-even at the integer
// boundary to match historical values.
func (s *LimitCalculatorService) Calculate(productLine models.CreditMatrixProductLine, interestRate float64, affordabilityValue int64, adjustmentFactor float64) LimitCalculation {
	maxDuration := float64(productLine.MaxDuration)
	simpleLimit := int64(math.RoundToEven(float64(affordabilityValue) * maxDuration / (1 + maxDuration*interestRate)))
	reducedLimit := int64(math.RoundToEven(float64(simpleLimit) * adjustmentFactor))

	simpleLimitRounded := roundLimitToBand(simpleLimit)
	reducedLimitRounded := roundLimitToBand(reducedLimit)

	maxLimit := simpleLimitRounded
	if productLine.MaxLoanAmount < maxLimit {
		maxLimit = productLine.MaxLoanAmount
	}
	setLimit := reducedLimitRounded
	if productLine.MaxLoanAmount < setLimit {
		setLimit = productLine.MaxLoanAmount
	}

	return LimitCalculation{
		SimpleLimit:           simpleLimit,
		ReducedLimit:          reducedLimit,
		SimpleLimitRounded:    simpleLimitRounded,
		ReducedLimitRounded:   reducedLimitRounded,
		MaxLimit:              maxLimit,
		SetLimit:              setLimit,
		LimitAdjustmentFactor: adjustmentFactor,
	}
}

// ApplyMinimumViableLimit raises a sub-500000 set limit to the configured
// floor when that floor is higher. Returns the unchanged value when no
// floor applies.
func (s *LimitCalculatorService) ApplyMinimumViableLimit(setLimit int64, floor *models.RoundingDownValueParams) int64 {
	if floor == nil {
		return setLimit
	}
	if setLimit < consts.MinimumViableSetLimit && floor.Floor > setLimit {
		return floor.Floor
	}
	return setLimit
}

// ResolveAdjustmentFactor maps pgood onto the three configured bands.
// Band minimums compare with strict greater-than; anything at or below the
// medium minimum falls into the low band.
func (s *LimitCalculatorService) ResolveAdjustmentFactor(pgood float64, bands models.LimitAdjustmentFactorParams) float64 {
	if pgood > bands.HighPGood.MinPGood {
		return bands.HighPGood.Factor
	}
	if pgood > bands.MediumPGood.MinPGood {
		return bands.MediumPGood.Factor
	}
	return bands.LowPGood.Factor
}

// Snapshot packages the calculation plus the pre-override ceilings into
// the persisted generation record shape.
func (c LimitCalculation) Snapshot() models.CreditLimitCalculationSnapshot {
	return models.CreditLimitCalculationSnapshot{
		SimpleLimit:           c.SimpleLimit,
		ReducedLimit:          c.ReducedLimit,
		SimpleLimitRounded:    c.SimpleLimitRounded,
		ReducedLimitRounded:   c.ReducedLimitRounded,
		LimitAdjustmentFactor: c.LimitAdjustmentFactor,
		MaxLimitPreMatrix:     c.MaxLimit,
		SetLimitPreMatrix:     c.SetLimit,
	}
}

// roundLimitToBand floors limits above 5000000 to the nearest 1000000,
// everything else to the nearest 500000.
func roundLimitToBand(limit int64) int64 {
	if limit > consts.BandRoundingThreshold {
		return roundDownNearest(limit, consts.BandRoundingHigh)
	}
	return roundDownNearest(limit, consts.BandRoundingLow)
}

func roundDownNearest(value, step int64) int64 {
	if step <= 0 {
		return value
	}
	return (value / step) * step
}
