package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type CreditLimitGenerationRepository struct {
	repo *MongoRepository[models.CreditLimitGeneration]
}

func NewCreditLimitGenerationRepository() *CreditLimitGenerationRepository {
	collection := db.MDB.Database.Collection(consts.CreditLimitGenerationsCollection)
	return &CreditLimitGenerationRepository{repo: NewMongoRepository[models.CreditLimitGeneration](collection)}
}

// Store inserts one generation record. Pure insert, no update, no dedup.
func (r *CreditLimitGenerationRepository) Store(ctx context.Context, generation models.CreditLimitGeneration) error {
	_, err := r.repo.Create(ctx, generation)
	if err != nil {
		logger.Error(ctx, "CreditLimitGeneration : Error while inserting %v", err)
		return fmt.Errorf("CreditLimitGeneration : error while inserting %v", err.Error())
	}
	return nil
}

// LatestByApplication returns the newest generation row, which is the
// authoritative limit for the application.
func (r *CreditLimitGenerationRepository) LatestByApplication(ctx context.Context, applicationID int64) (*models.CreditLimitGeneration, error) {
	result, err := r.repo.ReadSorted(ctx,
		bson.M{"applicationId": applicationID},
		bson.D{{Key: "createdAt", Value: -1}},
	)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
