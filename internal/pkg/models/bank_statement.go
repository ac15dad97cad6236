package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BankStatementSubmit records a borrower's bank-statement submission.
type BankStatementSubmit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID int64              `bson:"applicationId"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// BankStatementSubmitBalance holds the balances parsed out of one submitted
// statement; the leverage override scans all rows for an application.
type BankStatementSubmitBalance struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID        int64              `bson:"applicationId"`
	AvgEOMBalance        float64            `bson:"avgEomBalance"`
	AvgAverageEODBalance float64            `bson:"avgAverageEodBalance"`
	CreatedAt            time.Time          `bson:"createdAt"`
}
