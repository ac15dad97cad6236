package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreditMatrix is one versioned rate-table row. Selection filters on the
// segment parameters and takes the highest (version, maxThreshold) match.
type CreditMatrix struct {
	ID               primitive.ObjectID      `bson:"_id,omitempty"`
	CreditMatrixType string                  `bson:"creditMatrixType"`
	TransactionType  string                  `bson:"transactionType"`
	MinThreshold     float64                 `bson:"minThreshold"`
	MaxThreshold     float64                 `bson:"maxThreshold"`
	IsSalaried       bool                    `bson:"isSalaried"`
	IsPremiumArea    bool                    `bson:"isPremiumArea"`
	IsFDC            bool                    `bson:"isFdc"`
	Parameter        string                  `bson:"parameter,omitempty"`
	Interest         float64                 `bson:"interest"`
	Version          *int32                  `bson:"version"`
	ProductLine      CreditMatrixProductLine `bson:"productLine"`
	CreatedAt        time.Time               `bson:"createdAt"`
}

// CreditMatrixProductLine holds the tenor and amount bounds for a matrix row.
type CreditMatrixProductLine struct {
	ProductLineCode int   `bson:"productLineCode"`
	MinDuration     int   `bson:"minDuration"`
	MaxDuration     int   `bson:"maxDuration"`
	MinLoanAmount   int64 `bson:"minLoanAmount"`
	MaxLoanAmount   int64 `bson:"maxLoanAmount"`
}

// CurrentCreditMatrix scopes which matrices are live per transaction type.
type CurrentCreditMatrix struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	TransactionType string             `bson:"transactionType"`
	CreditMatrixID  primitive.ObjectID `bson:"creditMatrixId"`
}

// MatrixParams are the base lookup parameters built from the application and
// its model result before any cascade branch overrides them.
type MatrixParams struct {
	CreditMatrixType string
	PGood            float64
	IsSalaried       bool
	IsPremiumArea    bool
	IsFDC            bool
	TransactionType  string
}
