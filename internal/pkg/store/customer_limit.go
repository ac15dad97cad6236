package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type CustomerLimitRepository struct {
	repo *MongoRepository[models.CustomerLimit]
}

func NewCustomerLimitRepository() *CustomerLimitRepository {
	return &CustomerLimitRepository{
		repo: NewMongoRepository[models.CustomerLimit](db.MDB.Database.Collection(consts.CustomerLimitsCollection)),
	}
}

func (r *CustomerLimitRepository) ByCustomer(ctx context.Context, customerID int64) (*models.CustomerLimit, error) {
	result, err := r.repo.Read(ctx, bson.M{"customerId": customerID})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// Upsert records maxLimit for the customer. The stored value only ever
// goes up; a lower regeneration leaves the row untouched.
func (r *CustomerLimitRepository) Upsert(ctx context.Context, customerID int64, maxLimit int64) error {
	existing, err := r.ByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if existing == nil {
		limit := models.CustomerLimit{
			ID:         primitive.NewObjectID(),
			CustomerID: customerID,
			MaxLimit:   maxLimit,
			UpdatedAt:  time.Now(),
		}
		if _, err := r.repo.Create(ctx, limit); err != nil {
			logger.Error(ctx, "CustomerLimit : Error while inserting %v", err)
			return fmt.Errorf("CustomerLimit : error while inserting %v", err.Error())
		}
		return nil
	}
	if maxLimit <= existing.MaxLimit {
		return nil
	}
	err = r.repo.Update(ctx, bson.M{"_id": existing.ID}, bson.M{
		"$set": bson.M{"maxLimit": maxLimit, "updatedAt": time.Now()},
	})
	if err != nil {
		logger.Error(ctx, "CustomerLimit : Error while updating %v", err)
		return fmt.Errorf("CustomerLimit : error while updating %v", err.Error())
	}
	return nil
}
