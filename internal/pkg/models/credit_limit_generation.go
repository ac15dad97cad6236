package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreditLimitCalculationSnapshot captures the intermediate calculation
// values of one generation. Two later flows (CLCS recalculation and the
// triple-pgood bonus) read these fields back to recover the pre-matrix
// ceiling, so the field set is a contract, not incidental logging.
type CreditLimitCalculationSnapshot struct {
	SimpleLimit           int64   `bson:"simpleLimit" json:"simple_limit"`
	ReducedLimit          int64   `bson:"reducedLimit" json:"reduced_limit"`
	SimpleLimitRounded    int64   `bson:"simpleLimitRounded" json:"simple_limit_rounded"`
	ReducedLimitRounded   int64   `bson:"reducedLimitRounded" json:"reduced_limit_rounded"`
	LimitAdjustmentFactor float64 `bson:"limitAdjustmentFactor" json:"limit_adjustment_factor"`
	MaxLimitPreMatrix     int64   `bson:"maxLimitPreMatrix" json:"max_limit_pre_matrix"`
	SetLimitPreMatrix     int64   `bson:"setLimitPreMatrix" json:"set_limit_pre_matrix"`
}

// CreditLimitGeneration is the immutable audit record of one limit
// generation. Inserted once, never updated; the newest row per application
// is authoritative.
type CreditLimitGeneration struct {
	ID                     primitive.ObjectID             `bson:"_id,omitempty"`
	ApplicationID          int64                          `bson:"applicationId"`
	AccountID              *primitive.ObjectID            `bson:"accountId,omitempty"`
	CreditMatrixID         primitive.ObjectID             `bson:"creditMatrixId"`
	AffordabilityHistoryID primitive.ObjectID             `bson:"affordabilityHistoryId"`
	MaxLimit               int64                          `bson:"maxLimit"`
	SetLimit               int64                          `bson:"setLimit"`
	Log                    CreditLimitCalculationSnapshot `bson:"log"`
	Reason                 string                         `bson:"reason"`
	GUID                   string                         `bson:"guid"`
	CreatedAt              time.Time                      `bson:"createdAt"`
}

// LimitGeneratedMessage is the Kafka payload emitted after a successful
// generation.
type LimitGeneratedMessage struct {
	GUID          string    `json:"guid"`
	ApplicationID int64     `json:"applicationId"`
	CustomerID    int64     `json:"customerId"`
	MaxLimit      int64     `json:"maxLimit"`
	SetLimit      int64     `json:"setLimit"`
	Reason        string    `json:"reason"`
	GeneratedAt   time.Time `json:"generatedAt"`
}
