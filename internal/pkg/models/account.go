package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is created once per application the first time a limit is
// generated. Status starts inactive; activation is an external workflow.
type Account struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID int64              `bson:"customerId"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// AccountLimit tracks the usable credit of an account.
// Invariant: AvailableLimit + UsedLimit == SetLimit outside of a single CAS
// update. Version guards concurrent read-modify-write.
type AccountLimit struct {
	ID                         primitive.ObjectID `bson:"_id,omitempty"`
	AccountID                  primitive.ObjectID `bson:"accountId"`
	MaxLimit                   int64              `bson:"maxLimit"`
	SetLimit                   int64              `bson:"setLimit"`
	AvailableLimit             int64              `bson:"availableLimit"`
	UsedLimit                  int64              `bson:"usedLimit"`
	LatestAffordabilityHistory primitive.ObjectID `bson:"latestAffordabilityHistoryId,omitempty"`
	LatestCreditScore          primitive.ObjectID `bson:"latestCreditScoreId,omitempty"`
	Version                    int64              `bson:"version"`
	UpdatedAt                  time.Time          `bson:"updatedAt"`
}

// AccountProperty holds derived borrower attributes refreshed on approval.
type AccountProperty struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	AccountID       primitive.ObjectID `bson:"accountId"`
	PGood           float64            `bson:"pgood"`
	P0              float64            `bson:"p0"`
	IsSalaried      bool               `bson:"isSalaried"`
	IsProven        bool               `bson:"isProven"`
	IsPremiumArea   bool               `bson:"isPremiumArea"`
	ProvenThreshold int64              `bson:"provenThreshold"`
	VoiceRecording  bool               `bson:"voiceRecording"`
	IsEntryLevel    bool               `bson:"isEntryLevel"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// AccountPropertyHistory is one append-only row per changed field per
// update, not a full-row snapshot.
type AccountPropertyHistory struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	AccountPropertyID primitive.ObjectID `bson:"accountPropertyId"`
	FieldName         string             `bson:"fieldName"`
	ValueOld          string             `bson:"valueOld"`
	ValueNew          string             `bson:"valueNew"`
	CreatedAt         time.Time          `bson:"createdAt"`
}

// CustomerLimit is one row per customer holding the highest max limit ever
// granted; it is never downgraded automatically.
type CustomerLimit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID int64              `bson:"customerId"`
	MaxLimit   int64              `bson:"maxLimit"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}
