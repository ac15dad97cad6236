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

const accountLimitCASRetries = 5

type AccountRepository struct {
	accountRepo *MongoRepository[models.Account]
	limitRepo   *MongoRepository[models.AccountLimit]
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accountRepo: NewMongoRepository[models.Account](db.MDB.Database.Collection(consts.AccountsCollection)),
		limitRepo:   NewMongoRepository[models.AccountLimit](db.MDB.Database.Collection(consts.AccountLimitsCollection)),
	}
}

func (r *AccountRepository) AccountByCustomer(ctx context.Context, customerID int64) (*models.Account, error) {
	result, err := r.accountRepo.Read(ctx, bson.M{"customerId": customerID})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// CreateAccount inserts a new inactive account for the customer.
func (r *AccountRepository) CreateAccount(ctx context.Context, customerID int64) (*models.Account, error) {
	account := models.Account{
		ID:         primitive.NewObjectID(),
		CustomerID: customerID,
		Status:     consts.AccountStatusInactive,
		CreatedAt:  time.Now(),
	}
	if _, err := r.accountRepo.Create(ctx, account); err != nil {
		logger.Error(ctx, "Account : Error while inserting %v", err)
		return nil, fmt.Errorf("Account : error while inserting %v", err.Error())
	}
	return &account, nil
}

func (r *AccountRepository) LimitByAccount(ctx context.Context, accountID primitive.ObjectID) (*models.AccountLimit, error) {
	result, err := r.limitRepo.Read(ctx, bson.M{"accountId": accountID})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// UpsertAccountLimit creates the account-limit row on first generation or
// refreshes the ceilings on regeneration. Available limit follows the new
// set limit minus whatever is already in use.
func (r *AccountRepository) UpsertAccountLimit(ctx context.Context, accountID primitive.ObjectID, maxLimit, setLimit int64, affordabilityID, creditScoreID primitive.ObjectID) (*models.AccountLimit, error) {
	existing, err := r.LimitByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		limit := models.AccountLimit{
			ID:                         primitive.NewObjectID(),
			AccountID:                  accountID,
			MaxLimit:                   maxLimit,
			SetLimit:                   setLimit,
			AvailableLimit:             setLimit,
			UsedLimit:                  0,
			LatestAffordabilityHistory: affordabilityID,
			LatestCreditScore:          creditScoreID,
			Version:                    1,
			UpdatedAt:                  time.Now(),
		}
		if _, err := r.limitRepo.Create(ctx, limit); err != nil {
			logger.Error(ctx, "AccountLimit : Error while inserting %v", err)
			return nil, fmt.Errorf("AccountLimit : error while inserting %v", err.Error())
		}
		return &limit, nil
	}

	for attempt := 0; attempt < accountLimitCASRetries; attempt++ {
		filter := bson.M{"_id": existing.ID, "version": existing.Version}
		update := bson.M{
			"$set": bson.M{
				"maxLimit":                     maxLimit,
				"setLimit":                     setLimit,
				"availableLimit":               setLimit - existing.UsedLimit,
				"latestAffordabilityHistoryId": affordabilityID,
				"latestCreditScoreId":          creditScoreID,
				"updatedAt":                    time.Now(),
			},
			"$inc": bson.M{"version": 1},
		}
		updated, err := r.limitRepo.CompareAndSwap(ctx, filter, update)
		if err == nil {
			return &updated, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
		// Lost the version race; reload and retry.
		existing, err = r.LimitByAccount(ctx, accountID)
		if err != nil || existing == nil {
			return nil, consts.ErrorAccountLimitConflict
		}
	}
	return nil, consts.ErrorAccountLimitConflict
}

// AdjustUsedLimit moves amount between available and used limit under a
// version-guarded compare-and-swap. Positive amounts model disbursement,
// negative amounts payoff. The invariant available+used == set holds on
// both sides of the swap.
func (r *AccountRepository) AdjustUsedLimit(ctx context.Context, accountID primitive.ObjectID, amount int64) (*models.AccountLimit, error) {
	for attempt := 0; attempt < accountLimitCASRetries; attempt++ {
		current, err := r.LimitByAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, mongo.ErrNoDocuments
		}
		if amount > current.AvailableLimit {
			return nil, consts.ErrorInsufficientAvailableLimit
		}

		filter := bson.M{"_id": current.ID, "version": current.Version}
		update := bson.M{
			"$set": bson.M{
				"availableLimit": current.AvailableLimit - amount,
				"usedLimit":      current.UsedLimit + amount,
				"updatedAt":      time.Now(),
			},
			"$inc": bson.M{"version": 1},
		}
		updated, err := r.limitRepo.CompareAndSwap(ctx, filter, update)
		if err == nil {
			return &updated, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
	}
	return nil, consts.ErrorAccountLimitConflict
}
