package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type channelingConfigDocument struct {
	LenderCode string                 `bson:"lenderCode"`
	IsActive   bool                   `bson:"isActive"`
	Config     models.ChannelingConfig `bson:"config"`
}

type ChannelingConfigRepository struct {
	repo *MongoRepository[channelingConfigDocument]
}

func NewChannelingConfigRepository() *ChannelingConfigRepository {
	return &ChannelingConfigRepository{
		repo: NewMongoRepository[channelingConfigDocument](db.MDB.Database.Collection(consts.ChannelingConfigsCollection)),
	}
}

// ConfigByLender returns the active channeling configuration for the
// lender, or nil when none is maintained. The RAC checker treats nil as
// "RAC not set".
func (r *ChannelingConfigRepository) ConfigByLender(ctx context.Context, lenderCode string) (*models.ChannelingConfig, error) {
	result, err := r.repo.Read(ctx, bson.M{"lenderCode": lenderCode, "isActive": true})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result.Config, nil
}
