package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type CreditModelRepository struct {
	resultRepo *MongoRepository[models.CreditModelResult]
	scoreRepo  *MongoRepository[models.CreditScore]
}

func NewCreditModelRepository() *CreditModelRepository {
	return &CreditModelRepository{
		resultRepo: NewMongoRepository[models.CreditModelResult](db.MDB.Database.Collection(consts.CreditModelResultsCollection)),
		scoreRepo:  NewMongoRepository[models.CreditScore](db.MDB.Database.Collection(consts.CreditScoresCollection)),
	}
}

// ResultByApplication returns the model result for the variant the channel
// dictates: web-app applications read the web variant, partner-filled
// applications the early model, everything else model A falling back to B.
func (r *CreditModelRepository) ResultByApplication(ctx context.Context, application *models.Application) (*models.CreditModelResult, error) {
	variants := []string{models.ModelVariantA, models.ModelVariantB}
	switch {
	case application.IsWebApp:
		variants = []string{models.ModelVariantWeb}
	case application.IsForceFilledPartnerApp:
		variants = []string{models.ModelVariantEarly}
	}

	for _, variant := range variants {
		result, err := r.resultRepo.ReadSorted(ctx,
			bson.M{"applicationId": application.ApplicationID, "variant": variant},
			bson.D{{Key: "createdAt", Value: -1}},
		)
		if err == nil {
			return &result, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}
	return nil, consts.ErrorCreditModelNotFound
}

func (r *CreditModelRepository) ScoreByApplication(ctx context.Context, applicationID int64) (*models.CreditScore, error) {
	result, err := r.scoreRepo.ReadSorted(ctx,
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
