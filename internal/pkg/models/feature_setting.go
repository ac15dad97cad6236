package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeatureSetting is a named, toggleable parameter bag. Parameters stay raw
// at the document level and are decoded into the typed structs below at
// load time. A missing or inactive setting is not an error; callers fall
// back to hardcoded defaults.
type FeatureSetting struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FeatureName string             `bson:"featureName"`
	IsActive    bool               `bson:"isActive"`
	Parameters  bson.Raw           `bson:"parameters,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// ExperimentSetting is a time-boxed feature setting.
type ExperimentSetting struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Code       string             `bson:"code"`
	IsActive   bool               `bson:"isActive"`
	StartDate  time.Time          `bson:"startDate"`
	EndDate    time.Time          `bson:"endDate"`
	Parameters bson.Raw           `bson:"parameters,omitempty"`
}

// AffordabilityThresholdParams configures the minimum affordability per
// submission form, with an optional experiment override.
type AffordabilityThresholdParams struct {
	LimitValueSF int64 `bson:"limitValueSf" validate:"gte=0"`
	LimitValueLF int64 `bson:"limitValueLf" validate:"gte=0"`
}

// AffordabilityExperimentParams carries the threshold recorded by the
// scoring experiment. When the experiment is active this value replaces
// the form-specific threshold.
type AffordabilityExperimentParams struct {
	Threshold int64 `bson:"threshold" validate:"gt=0"`
}

// AdjustmentBand is one tier of the limit adjustment factor lookup.
// MinPGood is compared with strict greater-than.
type AdjustmentBand struct {
	MinPGood float64 `bson:"minPgood" validate:"gte=0,lte=1"`
	Factor   float64 `bson:"factor" validate:"gt=0,lte=1"`
}

// LimitAdjustmentFactorParams is the three-band factor configuration.
type LimitAdjustmentFactorParams struct {
	HighPGood   AdjustmentBand `bson:"highPgood" validate:"required"`
	MediumPGood AdjustmentBand `bson:"mediumPgood" validate:"required"`
	LowPGood    AdjustmentBand `bson:"lowPgood" validate:"required"`
}

// LBSBypassParams configures the bank-statement bypass quota for
// applications rejected on affordability.
type LBSBypassParams struct {
	Quota int64 `bson:"quota" validate:"gte=0"`
}

// LannisterParams configures the time-boxed lannister experiment.
type LannisterParams struct {
	CreditMatrixParameter string `bson:"creditMatrixParameter"`
	Quota                 int64  `bson:"quota" validate:"gte=0"`
	AllowedLastDigits     []int  `bson:"allowedLastDigits" validate:"dive,gte=0,lte=9"`
}

// LeverageBankStatementParams configures the bank-statement leverage
// override. Zero values fall back to the documented defaults
// (multiplier 1.5, rejection floor 150000, cap 5000000).
type LeverageBankStatementParams struct {
	Multiplier        float64 `bson:"multiplier" validate:"gte=0"`
	MinRejectionLimit int64   `bson:"minRejectionLimit" validate:"gte=0"`
	LimitCap          int64   `bson:"limitCap" validate:"gte=0"`
}

// RoundingDownValueParams is the minimum-viable-limit safety net applied
// when a computed set limit lands under 500000.
type RoundingDownValueParams struct {
	Floor int64 `bson:"floor" validate:"gte=0"`
}

// OfflineActivationParams configures the offline-activation override.
type OfflineActivationParams struct {
	MinimumLimit int64 `bson:"minimumLimit" validate:"gte=0"`
}

// PartnershipLeadgenParams forces a credit-matrix type for applications
// belonging to a configured partner at a specific status.
type PartnershipLeadgenParams struct {
	Partners         []string `bson:"partners" validate:"required,min=1"`
	CreditMatrixType string   `bson:"creditMatrixType" validate:"required"`
	StatusID         int      `bson:"statusId" validate:"gt=0"`
}

// ShopeeWhitelistParams overrides parts of the matrix lookup for
// whitelisted applications. Empty fields leave the base parameters and
// the default tag untouched.
type ShopeeWhitelistParams struct {
	CreditMatrixType      string `bson:"creditMatrixType"`
	CreditMatrixParameter string `bson:"creditMatrixParameter"`
}

// TokoscoreRevivalParams overrides parts of the matrix lookup for
// applications revived through tokoscore.
type TokoscoreRevivalParams struct {
	CreditMatrixType      string `bson:"creditMatrixType"`
	CreditMatrixParameter string `bson:"creditMatrixParameter"`
}

// EntryLevelLimitParams configures the conservative entry-level cap.
type EntryLevelLimitParams struct {
	LimitValue int64   `bson:"limitValue" validate:"gte=0"`
	MaxPGood   float64 `bson:"maxPgood" validate:"gte=0,lte=1"`
}
