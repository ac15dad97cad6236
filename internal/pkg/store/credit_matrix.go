package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type CreditMatrixRepository struct {
	repo        *MongoRepository[models.CreditMatrix]
	currentRepo *MongoRepository[models.CurrentCreditMatrix]
}

func NewCreditMatrixRepository() *CreditMatrixRepository {
	return &CreditMatrixRepository{
		repo:        NewMongoRepository[models.CreditMatrix](db.MDB.Database.Collection(consts.CreditMatrixCollection)),
		currentRepo: NewMongoRepository[models.CurrentCreditMatrix](db.MDB.Database.Collection(consts.CurrentCreditMatrixCollection)),
	}
}

// liveMatrixIDs resolves which matrix rows are live for a transaction type.
func (r *CreditMatrixRepository) liveMatrixIDs(ctx context.Context, transactionType string) ([]primitive.ObjectID, error) {
	rows, err := r.currentRepo.Find(ctx, bson.M{"transactionType": transactionType})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CreditMatrixID)
	}
	return ids, nil
}

// FindMatrix runs the matrix lookup primitive: scope to live rows for the
// transaction type, require a non-null version, apply the segment filters,
// apply the parameter-tag filter, then take the highest
// (version, maxThreshold) row. Returns nil when nothing matches.
func (r *CreditMatrixRepository) FindMatrix(ctx context.Context, params models.MatrixParams, parameter string) (*models.CreditMatrix, error) {
	ids, err := r.liveMatrixIDs(ctx, params.TransactionType)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"_id":              bson.M{"$in": ids},
		"version":          bson.M{"$ne": nil},
		"creditMatrixType": params.CreditMatrixType,
		"minThreshold":     bson.M{"$lte": params.PGood},
		"maxThreshold":     bson.M{"$gte": params.PGood},
		"isSalaried":       params.IsSalaried,
		"isPremiumArea":    params.IsPremiumArea,
		"isFdc":            params.IsFDC,
	}
	if parameter == "" {
		filter["$or"] = []bson.M{
			{"parameter": nil},
			{"parameter": ""},
		}
	} else {
		filter["parameter"] = parameter
	}

	result, err := r.repo.ReadSorted(ctx, filter,
		bson.D{{Key: "version", Value: -1}, {Key: "maxThreshold", Value: -1}},
	)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
