package handlers

import (
	"context"
	"time"

	"globe/dodrio_credit_limit/internal/pkg/common"
	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
	"globe/dodrio_credit_limit/internal/pkg/services"
)

type ApplicationReader interface {
	ApplicationByID(ctx context.Context, applicationID int64) (*models.Application, error)
}

type LimitGenerator interface {
	GenerateLimit(ctx context.Context, application *models.Application) (services.GenerationResult, error)
}

// LimitGenerationHandler consumes application-status events and drives the
// generation pipeline.
type LimitGenerationHandler struct {
	applicationRepo ApplicationReader
	creditLimit     LimitGenerator
	accountProps    *services.AccountPropertyService
	selector        services.MatrixSelector
	accounts        services.AccountWriterRepo
	subscription    string
}

func NewLimitGenerationHandler(
	applicationRepo ApplicationReader,
	creditLimit LimitGenerator,
	accountProps *services.AccountPropertyService,
	selector services.MatrixSelector,
	accounts services.AccountWriterRepo,
	subscription string,
) *LimitGenerationHandler {
	return &LimitGenerationHandler{
		applicationRepo: applicationRepo,
		creditLimit:     creditLimit,
		accountProps:    accountProps,
		selector:        selector,
		accounts:        accounts,
		subscription:    subscription,
	}
}

// HandleApplicationStatusMessage is the Pub/Sub entry point. Status 130
// triggers limit generation; status 190 refreshes the account properties.
// Other statuses are acked and ignored.
func (h *LimitGenerationHandler) HandleApplicationStatusMessage(ctx context.Context, msg []byte) error {
	event, err := common.DeserializeApplicationStatusEvent(msg)
	if err != nil {
		logger.Error(ctx, "Dropping undecodable application status event: %v", err)
		// Ack: a malformed payload never becomes valid on redelivery.
		return nil
	}

	ctx = context.WithValue(ctx, models.LogDetailsKey, models.MessageDetails{
		RequestID:    event.GUID,
		MessageID:    event.GUID,
		Subscription: h.subscription,
		ReceivedAt:   time.Now(),
	})

	switch event.StatusID {
	case consts.ApplicationStatusLimitGenerated:
		return h.handleLimitGeneration(ctx, event)
	case consts.ApplicationStatusLOCApproved:
		return h.handleApproval(ctx, event)
	default:
		logger.Debug(ctx, "Ignoring application %d event with status %d", event.ApplicationID, event.StatusID)
		return nil
	}
}

func (h *LimitGenerationHandler) handleLimitGeneration(ctx context.Context, event models.ApplicationStatusEvent) error {
	application, err := h.applicationRepo.ApplicationByID(ctx, event.ApplicationID)
	if err != nil {
		logger.Error(ctx, "Failed to load application %d: %v", event.ApplicationID, err)
		return err
	}
	if application == nil {
		logger.Error(ctx, "Application %d not found for limit generation", event.ApplicationID)
		return consts.ErrorApplicationNotFound
	}

	result, err := h.creditLimit.GenerateLimit(ctx, application)
	if err != nil {
		logger.Error(ctx, "Limit generation failed for application %d: %v", event.ApplicationID, err)
		return err
	}

	logger.Info(ctx, "Limit generation for application %d finished with outcome %s max=%d set=%d",
		event.ApplicationID, result.Outcome, result.MaxLimit, result.SetLimit)
	return nil
}

func (h *LimitGenerationHandler) handleApproval(ctx context.Context, event models.ApplicationStatusEvent) error {
	application, err := h.applicationRepo.ApplicationByID(ctx, event.ApplicationID)
	if err != nil {
		logger.Error(ctx, "Failed to load application %d: %v", event.ApplicationID, err)
		return err
	}
	if application == nil {
		logger.Error(ctx, "Application %d not found for approval handling", event.ApplicationID)
		return consts.ErrorApplicationNotFound
	}

	account, err := h.accounts.AccountByCustomer(ctx, application.CustomerID)
	if err != nil {
		return err
	}
	if account == nil {
		logger.Warn(ctx, "Approval event for application %d with no account, skipping property refresh", event.ApplicationID)
		return nil
	}

	selection, err := h.selector.Select(ctx, application)
	if err != nil {
		return err
	}

	if err := h.accountProps.Store(ctx, application, account.ID, selection); err != nil {
		logger.Error(ctx, "Account property refresh failed for application %d: %v", event.ApplicationID, err)
		return err
	}
	return nil
}
