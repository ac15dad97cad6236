package store

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type ApplicationRepository struct {
	repo     *MongoRepository[models.Application]
	tagRepo  *MongoRepository[models.ApplicationTag]
	noteRepo *MongoRepository[models.ApplicationNote]
	histRepo *MongoRepository[models.ApplicationStatusHistory]
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{
		repo:     NewMongoRepository[models.Application](db.MDB.Database.Collection(consts.ApplicationsCollection)),
		tagRepo:  NewMongoRepository[models.ApplicationTag](db.MDB.Database.Collection(consts.ApplicationTagsCollection)),
		noteRepo: NewMongoRepository[models.ApplicationNote](db.MDB.Database.Collection(consts.ApplicationNotesCollection)),
		histRepo: NewMongoRepository[models.ApplicationStatusHistory](db.MDB.Database.Collection(consts.ApplicationStatusHistoryCollection)),
	}
}

func (r *ApplicationRepository) ApplicationByID(ctx context.Context, applicationID int64) (*models.Application, error) {
	result, err := r.repo.Read(ctx, bson.M{"applicationId": applicationID})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, consts.ErrorApplicationNotFound
		}
		return nil, err
	}
	return &result, nil
}

// TurboApplicationByCustomer returns the customer's newest starter-product
// application, or nil when they never had one. The turbo-upgrade override
// carries its last generated limit forward.
func (r *ApplicationRepository) TurboApplicationByCustomer(ctx context.Context, customerID int64) (*models.Application, error) {
	result, err := r.repo.ReadSorted(ctx,
		bson.M{"customerId": customerID, "isJuloStarter": true},
		bson.D{{Key: "createdAt", Value: -1}})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// ActiveTags returns the set of active workflow tags for an application.
func (r *ApplicationRepository) ActiveTags(ctx context.Context, applicationID int64) (map[string]bool, error) {
	rows, err := r.tagRepo.Find(ctx, bson.M{"applicationId": applicationID, "isActive": true})
	if err != nil {
		return nil, fmt.Errorf("ApplicationTags : error while reading %v", err.Error())
	}

	tags := make(map[string]bool, len(rows))
	for _, row := range rows {
		tags[row.Tag] = true
	}
	return tags, nil
}

// HasStatusChangeReason reports whether any recorded transition carries the
// given change reason.
func (r *ApplicationRepository) HasStatusChangeReason(ctx context.Context, applicationID int64, reason string) (bool, error) {
	count, err := r.histRepo.CountDocuments(ctx, bson.M{"applicationId": applicationID, "changeReason": reason})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasNoteContaining reports whether any application note contains the given
// fragment, matched case-insensitively.
func (r *ApplicationRepository) HasNoteContaining(ctx context.Context, applicationID int64, fragment string) (bool, error) {
	rows, err := r.noteRepo.Find(ctx, bson.M{"applicationId": applicationID})
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.NoteText), strings.ToLower(fragment)) {
			return true, nil
		}
	}
	return false, nil
}
