package db

import (
	"context"
	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the lookup indexes the pipeline depends on. Safe to
// call on every startup; CreateOne is a no-op for an existing index.
func EnsureIndexes() {
	if MDB == nil || MDB.Database == nil {
		logger.Info("Skipping index setup: MongoDB is not connected")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := map[string]mongo.IndexModel{
		consts.CreditLimitGenerationsCollection: {
			Keys: bson.D{{Key: "applicationId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		consts.AffordabilityHistoryCollection: {
			Keys: bson.D{{Key: "applicationId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		consts.CustomerLimitsCollection: {
			Keys:    bson.D{{Key: "customerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		consts.AccountLimitsCollection: {
			Keys:    bson.D{{Key: "accountId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		consts.ApplicationTagsCollection: {
			Keys: bson.D{{Key: "applicationId", Value: 1}, {Key: "tag", Value: 1}},
		},
		consts.FeatureSettingsCollection: {
			Keys:    bson.D{{Key: "featureName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	for collection, model := range indexes {
		if _, err := MDB.Database.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			logger.Error("Failed to create index on %v: %v", collection, err)
		}
	}
}
