package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type AccountPropertyRepository struct {
	propertyRepo *MongoRepository[models.AccountProperty]
	historyRepo  *MongoRepository[models.AccountPropertyHistory]
}

func NewAccountPropertyRepository() *AccountPropertyRepository {
	return &AccountPropertyRepository{
		propertyRepo: NewMongoRepository[models.AccountProperty](db.MDB.Database.Collection(consts.AccountPropertiesCollection)),
		historyRepo:  NewMongoRepository[models.AccountPropertyHistory](db.MDB.Database.Collection(consts.AccountPropertyHistoryCollection)),
	}
}

func (r *AccountPropertyRepository) ByAccount(ctx context.Context, accountID primitive.ObjectID) (*models.AccountProperty, error) {
	result, err := r.propertyRepo.Read(ctx, bson.M{"accountId": accountID})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *AccountPropertyRepository) Create(ctx context.Context, property models.AccountProperty) (*models.AccountProperty, error) {
	property.ID = primitive.NewObjectID()
	property.UpdatedAt = time.Now()
	if _, err := r.propertyRepo.Create(ctx, property); err != nil {
		logger.Error(ctx, "AccountProperty : Error while inserting %v", err)
		return nil, fmt.Errorf("AccountProperty : error while inserting %v", err.Error())
	}
	return &property, nil
}

// Update persists the changed fields of next and appends one history row
// per field whose value differs from current. An identical next is a no-op
// and writes nothing.
func (r *AccountPropertyRepository) Update(ctx context.Context, current models.AccountProperty, next models.AccountProperty) (bool, error) {
	changes := diffProperties(current, next)
	if len(changes) == 0 {
		return false, nil
	}

	set := bson.M{"updatedAt": time.Now()}
	for _, change := range changes {
		set[change.field] = change.next
	}
	err := r.propertyRepo.Update(ctx, bson.M{"_id": current.ID}, bson.M{"$set": set})
	if err != nil {
		logger.Error(ctx, "AccountProperty : Error while updating %v", err)
		return false, fmt.Errorf("AccountProperty : error while updating %v", err.Error())
	}

	for _, change := range changes {
		history := models.AccountPropertyHistory{
			ID:                primitive.NewObjectID(),
			AccountPropertyID: current.ID,
			FieldName:         change.field,
			ValueOld:          change.old,
			ValueNew:          change.next,
			CreatedAt:         time.Now(),
		}
		if _, err := r.historyRepo.Create(ctx, history); err != nil {
			logger.Error(ctx, "AccountPropertyHistory : Error while inserting %v", err)
			return true, fmt.Errorf("AccountPropertyHistory : error while inserting %v", err.Error())
		}
	}
	return true, nil
}

func (r *AccountPropertyRepository) HistoryByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]models.AccountPropertyHistory, error) {
	return r.historyRepo.Find(ctx, bson.M{"accountPropertyId": propertyID})
}

type propertyChange struct {
	field string
	old   string
	next  string
}

func diffProperties(current, next models.AccountProperty) []propertyChange {
	var changes []propertyChange
	compareFloat := func(field string, old, new float64) {
		if old != new {
			changes = append(changes, propertyChange{
				field: field,
				old:   strconv.FormatFloat(old, 'f', -1, 64),
				next:  strconv.FormatFloat(new, 'f', -1, 64),
			})
		}
	}
	compareBool := func(field string, old, new bool) {
		if old != new {
			changes = append(changes, propertyChange{
				field: field,
				old:   strconv.FormatBool(old),
				next:  strconv.FormatBool(new),
			})
		}
	}
	compareInt := func(field string, old, new int64) {
		if old != new {
			changes = append(changes, propertyChange{
				field: field,
				old:   strconv.FormatInt(old, 10),
				next:  strconv.FormatInt(new, 10),
			})
		}
	}

	compareFloat("pgood", current.PGood, next.PGood)
	compareFloat("p0", current.P0, next.P0)
	compareBool("isSalaried", current.IsSalaried, next.IsSalaried)
	compareBool("isProven", current.IsProven, next.IsProven)
	compareBool("isPremiumArea", current.IsPremiumArea, next.IsPremiumArea)
	compareInt("provenThreshold", current.ProvenThreshold, next.ProvenThreshold)
	compareBool("voiceRecording", current.VoiceRecording, next.VoiceRecording)
	compareBool("isEntryLevel", current.IsEntryLevel, next.IsEntryLevel)
	return changes
}
