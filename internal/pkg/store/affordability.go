package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type AffordabilityRepository struct {
	repo      *MongoRepository[models.AffordabilityHistory]
	sonicRepo *MongoRepository[models.SonicAffordability]
}

func NewAffordabilityRepository() *AffordabilityRepository {
	return &AffordabilityRepository{
		repo:      NewMongoRepository[models.AffordabilityHistory](db.MDB.Database.Collection(consts.AffordabilityHistoryCollection)),
		sonicRepo: NewMongoRepository[models.SonicAffordability](db.MDB.Database.Collection(consts.SonicAffordabilityCollection)),
	}
}

// LatestByApplication returns the newest affordability row for an application.
func (r *AffordabilityRepository) LatestByApplication(ctx context.Context, applicationID int64) (*models.AffordabilityHistory, error) {
	result, err := r.repo.ReadSorted(ctx,
		bson.M{"applicationId": applicationID},
		bson.D{{Key: "createdAt", Value: -1}},
	)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, consts.ErrorAffordabilityNotFound
		}
		return nil, err
	}
	return &result, nil
}

// SonicByApplication returns the sonic recompute row if one exists.
func (r *AffordabilityRepository) SonicByApplication(ctx context.Context, applicationID int64) (*models.SonicAffordability, error) {
	result, err := r.sonicRepo.ReadSorted(ctx,
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
