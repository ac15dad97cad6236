package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AffordabilityHistory is one affordability computation for an application.
// The pipeline reads the newest row only.
type AffordabilityHistory struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID      int64              `bson:"applicationId"`
	AffordabilityValue int64              `bson:"affordabilityValue"`
	AffordabilityType  string             `bson:"affordabilityType"`
	Reason             string             `bson:"reason,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt"`
}

// SonicAffordability holds the recomputed monthly-payment capacity from the
// bank-scrape income model, alongside the value recorded at submission time.
type SonicAffordability struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID   int64              `bson:"applicationId"`
	SonicValue      int64              `bson:"sonicValue"`
	ProcessedIncome float64            `bson:"processedIncome"`
	CreatedAt       time.Time          `bson:"createdAt"`
}
