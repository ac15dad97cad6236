package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type BankStatementRepository struct {
	submitRepo  *MongoRepository[models.BankStatementSubmit]
	balanceRepo *MongoRepository[models.BankStatementSubmitBalance]
}

func NewBankStatementRepository() *BankStatementRepository {
	return &BankStatementRepository{
		submitRepo:  NewMongoRepository[models.BankStatementSubmit](db.MDB.Database.Collection(consts.BankStatementSubmitsCollection)),
		balanceRepo: NewMongoRepository[models.BankStatementSubmitBalance](db.MDB.Database.Collection(consts.BankStatementBalancesCollection)),
	}
}

// SuccessfulSubmit returns the latest successfully parsed statement
// submission for the application, or nil when none exists.
func (r *BankStatementRepository) SuccessfulSubmit(ctx context.Context, applicationID int64) (*models.BankStatementSubmit, error) {
	result, err := r.submitRepo.ReadSorted(ctx,
		bson.M{"applicationId": applicationID, "status": consts.BankStatementStatusSuccess},
		bson.D{{Key: "createdAt", Value: -1}})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// BalancesByApplication returns every parsed balance row for the
// application. The leverage override picks the highest balance across all
// of them.
func (r *BankStatementRepository) BalancesByApplication(ctx context.Context, applicationID int64) ([]models.BankStatementSubmitBalance, error) {
	return r.balanceRepo.Find(ctx, bson.M{"applicationId": applicationID})
}
