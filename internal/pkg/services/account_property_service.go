package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type AccountPropertyRepo interface {
	ByAccount(ctx context.Context, accountID primitive.ObjectID) (*models.AccountProperty, error)
	Create(ctx context.Context, property models.AccountProperty) (*models.AccountProperty, error)
	Update(ctx context.Context, current models.AccountProperty, next models.AccountProperty) (bool, error)
}

type AccountPropertyService struct {
	propertyRepo    AccountPropertyRepo
	creditModelRepo CreditModelRepo
}

func NewAccountPropertyService(propertyRepo AccountPropertyRepo, creditModelRepo CreditModelRepo) *AccountPropertyService {
	return &AccountPropertyService{
		propertyRepo:    propertyRepo,
		creditModelRepo: creditModelRepo,
	}
}

// Store refreshes the derived borrower attributes for the account. A
// missing row is always created; an existing row is only touched when the
// application has reached approval, and every changed field gets one
// history row.
func (s *AccountPropertyService) Store(ctx context.Context, application *models.Application, accountID primitive.ObjectID, selection MatrixSelection) error {
	modelResult, err := s.creditModelRepo.ResultByApplication(ctx, application)
	if err != nil {
		return err
	}
	if modelResult == nil {
		return consts.ErrorCreditModelNotFound
	}

	next := models.AccountProperty{
		AccountID:     accountID,
		PGood:         modelResult.PGood,
		P0:            modelResult.ProbabilityFPD,
		IsSalaried:    selection.Params.IsSalaried,
		IsProven:      application.IsProven,
		IsPremiumArea: selection.Params.IsPremiumArea,
		IsEntryLevel:  selection.IsEntryLevel,
	}

	current, err := s.propertyRepo.ByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if current == nil {
		_, err := s.propertyRepo.Create(ctx, next)
		return err
	}

	if application.StatusID != consts.ApplicationStatusLOCApproved {
		logger.Debug(ctx, "AccountProperty : application %d not approved, skipping update", application.ApplicationID)
		return nil
	}

	// Preserve fields the refresh does not recompute.
	next.ProvenThreshold = current.ProvenThreshold
	next.VoiceRecording = current.VoiceRecording

	changed, err := s.propertyRepo.Update(ctx, *current, next)
	if err != nil {
		return err
	}
	if changed {
		logger.Info(ctx, "AccountProperty : refreshed for application %d", application.ApplicationID)
	}
	return nil
}
