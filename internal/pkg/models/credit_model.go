package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreditModelResult is the scoring-model output for an application. Exactly
// one variant applies per application, chosen by channel and score type.
type CreditModelResult struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID  int64              `bson:"applicationId"`
	Variant        string             `bson:"variant"`
	PGood          float64            `bson:"pgood"`
	ProbabilityFPD float64            `bson:"probabilityFpd"`
	HasFDC         bool               `bson:"hasFdc"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// Credit model variants.
const (
	ModelVariantA     = "model_a"
	ModelVariantB     = "model_b"
	ModelVariantWeb   = "web_app"
	ModelVariantEarly = "early_model"
)

// CreditScore is the letter-grade score assigned to an application, with the
// baseline credit-matrix type resolved at scoring time.
type CreditScore struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID    int64              `bson:"applicationId"`
	Score            string             `bson:"score"`
	CreditMatrixType string             `bson:"creditMatrixType,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
}
