package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/models"
	"globe/dodrio_credit_limit/internal/pkg/services"
)

type fakeApplicationReader struct {
	application *models.Application
}

func (f *fakeApplicationReader) ApplicationByID(ctx context.Context, applicationID int64) (*models.Application, error) {
	return f.application, nil
}

type fakeLimitGenerator struct {
	result services.GenerationResult
	err    error
	calls  int
}

func (f *fakeLimitGenerator) GenerateLimit(ctx context.Context, application *models.Application) (services.GenerationResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeSelector struct {
	selection services.MatrixSelection
	calls     int
}

func (f *fakeSelector) Select(ctx context.Context, application *models.Application) (services.MatrixSelection, error) {
	f.calls++
	return f.selection, nil
}

type fakeAccountRepo struct {
	account *models.Account
}

func (f *fakeAccountRepo) AccountByCustomer(ctx context.Context, customerID int64) (*models.Account, error) {
	return f.account, nil
}

func (f *fakeAccountRepo) CreateAccount(ctx context.Context, customerID int64) (*models.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) UpsertAccountLimit(ctx context.Context, accountID primitive.ObjectID, maxLimit, setLimit int64, affordabilityID, creditScoreID primitive.ObjectID) (*models.AccountLimit, error) {
	return nil, nil
}

type fakePropertyStore struct {
	existing *models.AccountProperty
	created  []models.AccountProperty
}

func (f *fakePropertyStore) ByAccount(ctx context.Context, accountID primitive.ObjectID) (*models.AccountProperty, error) {
	return f.existing, nil
}

func (f *fakePropertyStore) Create(ctx context.Context, property models.AccountProperty) (*models.AccountProperty, error) {
	f.created = append(f.created, property)
	return &property, nil
}

func (f *fakePropertyStore) Update(ctx context.Context, current models.AccountProperty, next models.AccountProperty) (bool, error) {
	return false, nil
}

type fakeModelRepo struct {
	result *models.CreditModelResult
}

func (f *fakeModelRepo) ResultByApplication(ctx context.Context, application *models.Application) (*models.CreditModelResult, error) {
	return f.result, nil
}

func (f *fakeModelRepo) ScoreByApplication(ctx context.Context, applicationID int64) (*models.CreditScore, error) {
	return nil, nil
}

type handlerFixture struct {
	applications *fakeApplicationReader
	generator    *fakeLimitGenerator
	selector     *fakeSelector
	accounts     *fakeAccountRepo
	properties   *fakePropertyStore
	handler      *LimitGenerationHandler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		applications: &fakeApplicationReader{application: &models.Application{ApplicationID: 1, CustomerID: 7}},
		generator:    &fakeLimitGenerator{result: services.GenerationResult{Outcome: services.OutcomeOK}},
		selector:     &fakeSelector{},
		accounts:     &fakeAccountRepo{},
		properties:   &fakePropertyStore{},
	}
	props := services.NewAccountPropertyService(f.properties, &fakeModelRepo{
		result: &models.CreditModelResult{PGood: 0.8},
	})
	f.handler = NewLimitGenerationHandler(f.applications, f.generator, props, f.selector, f.accounts, "test-sub")
	return f
}

func eventPayload(t *testing.T, applicationID int64, statusID int) []byte {
	t.Helper()
	payload, err := json.Marshal(models.ApplicationStatusEvent{
		ApplicationID: applicationID,
		StatusID:      statusID,
		GUID:          "guid-1",
	})
	require.NoError(t, err)
	return payload
}

func TestHandleMalformedEventIsAcked(t *testing.T) {
	f := newHandlerFixture()

	err := f.handler.HandleApplicationStatusMessage(context.Background(), []byte("{not json"))

	assert.NoError(t, err, "malformed payloads are dropped, not retried")
	assert.Zero(t, f.generator.calls)
}

func TestHandleIncompleteEventIsAcked(t *testing.T) {
	f := newHandlerFixture()

	err := f.handler.HandleApplicationStatusMessage(context.Background(), []byte(`{"applicationId":0,"statusId":130}`))

	assert.NoError(t, err)
	assert.Zero(t, f.generator.calls)
}

func TestHandleLimitGenerationStatus(t *testing.T) {
	f := newHandlerFixture()

	err := f.handler.HandleApplicationStatusMessage(context.Background(),
		eventPayload(t, 1, consts.ApplicationStatusLimitGenerated))

	require.NoError(t, err)
	assert.Equal(t, 1, f.generator.calls)
	assert.Zero(t, f.selector.calls)
}

func TestHandleLimitGenerationMissingApplication(t *testing.T) {
	f := newHandlerFixture()
	f.applications.application = nil

	err := f.handler.HandleApplicationStatusMessage(context.Background(),
		eventPayload(t, 1, consts.ApplicationStatusLimitGenerated))

	assert.ErrorIs(t, err, consts.ErrorApplicationNotFound)
}

func TestHandleLimitGenerationErrorIsNacked(t *testing.T) {
	f := newHandlerFixture()
	f.generator.err = consts.ErrorAffordabilityNotFound

	err := f.handler.HandleApplicationStatusMessage(context.Background(),
		eventPayload(t, 1, consts.ApplicationStatusLimitGenerated))

	assert.Error(t, err, "processing failures must surface for redelivery")
}

func TestHandleApprovalRefreshesProperties(t *testing.T) {
	f := newHandlerFixture()
	f.accounts.account = &models.Account{ID: primitive.NewObjectID(), CustomerID: 7}

	err := f.handler.HandleApplicationStatusMessage(context.Background(),
		eventPayload(t, 1, consts.ApplicationStatusLOCApproved))

	require.NoError(t, err)
	assert.Equal(t, 1, f.selector.calls)
	require.Len(t, f.properties.created, 1)
	assert.Equal(t, f.accounts.account.ID, f.properties.created[0].AccountID)
	assert.Zero(t, f.generator.calls)
}

func TestHandleApprovalWithoutAccountIsAcked(t *testing.T) {
	f := newHandlerFixture()

	err := f.handler.HandleApplicationStatusMessage(context.Background(),
		eventPayload(t, 1, consts.ApplicationStatusLOCApproved))

	assert.NoError(t, err)
	assert.Zero(t, f.selector.calls)
}

func TestHandleUnrelatedStatusIsIgnored(t *testing.T) {
	f := newHandlerFixture()

	err := f.handler.HandleApplicationStatusMessage(context.Background(), eventPayload(t, 1, 105))

	assert.NoError(t, err)
	assert.Zero(t, f.generator.calls)
	assert.Zero(t, f.selector.calls)
}
