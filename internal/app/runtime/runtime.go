package runtime

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"globe/dodrio_credit_limit/configs"
	"globe/dodrio_credit_limit/internal/app/handlers"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/kafka/producer"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/notification"
	"globe/dodrio_credit_limit/internal/pkg/pubsub"
	"globe/dodrio_credit_limit/internal/pkg/redis"
	"globe/dodrio_credit_limit/internal/pkg/services"
	"globe/dodrio_credit_limit/internal/pkg/store"
	"globe/dodrio_credit_limit/internal/pkg/store/repository"
	"globe/dodrio_credit_limit/internal/pkg/utils"
	"globe/dodrio_credit_limit/internal/pkg/utils/worker"
)

var (
	connectMongoDB = db.NewMongoDB
	connectRedisDB = func(ctx context.Context, cfg configs.RedisConfig) (*redis.RedisClient, error) {
		return redis.ConnectToRedis(ctx, cfg, nil)
	}
	newKafkaProducer = producer.NewKafkaProducer
)

// App encapsulates application resources and lifecycle.
type App struct {
	PubSubConsumer  *pubsub.PubSubConsumer
	PubSubPublisher *pubsub.PubSubPublisher
	KafkaProducer   *producer.Producer
	KafkaService    *producer.KafkaService
	MongoClient     *db.MongoDB
	RedisClient     *redis.RedisClient
	WorkerPool      *worker.WorkerPool
	Subscription    string
	Handler         *handlers.LimitGenerationHandler
}

func New(ctx context.Context) (*App, error) {
	pubsubCfg := configs.GetPubSubConfig()

	pubsubConsumer, err := pubsub.NewPubSubConsumer(ctx, pubsubCfg.ProjectID)
	if err != nil {
		logger.Error(ctx, "Failure in PubSub consumer creation: %v", err)
		return nil, err
	}

	pubsubPublisher, err := pubsub.NewPubSubPublisher(ctx, pubsubCfg.ProjectID)
	if err != nil {
		logger.Error(ctx, "Failure in PubSub publisher creation: %v", err)
		return nil, err
	}

	kafkaProducer, err := newKafkaProducer(configs.KAFKA_TOPIC)
	if err != nil {
		logger.Error(ctx, "Failure in Kafka producer creation: %v", err)
		return nil, err
	}
	kafkaService := producer.NewKafkaService(kafkaProducer)

	mClient, err := connectMongoDB()
	if err != nil {
		logger.Error(ctx, "Failed to connect to MongoDB: %v", err)
		return nil, err
	}
	db.MDB = mClient
	db.EnsureIndexes()

	rClient, err := connectRedisDB(ctx, configs.GetRedisConfig())
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: %v", err)
		return nil, err
	}

	numberOfWorkers, err := strconv.Atoi(configs.WORKER_POOL)
	if err != nil {
		logger.Error(ctx, "Invalid worker pool size %q: %v", configs.WORKER_POOL, err)
		return nil, err
	}
	workerPool := worker.NewWorkerPool(numberOfWorkers)

	app := &App{
		PubSubConsumer:  pubsubConsumer,
		PubSubPublisher: pubsubPublisher,
		KafkaProducer:   kafkaProducer,
		KafkaService:    kafkaService,
		MongoClient:     mClient,
		RedisClient:     rClient,
		WorkerPool:      workerPool,
		Subscription:    pubsubCfg.ApplicationSub,
	}
	app.Handler = buildHandler(app)
	return app, nil
}

// buildHandler wires the repositories and services behind the message handler.
func buildHandler(a *App) *handlers.LimitGenerationHandler {
	applicationRepo := store.NewApplicationRepository()
	affordabilityRepo := store.NewAffordabilityRepository()
	creditModelRepo := store.NewCreditModelRepository()
	matrixRepo := store.NewCreditMatrixRepository()
	generationRepo := store.NewCreditLimitGenerationRepository()
	accountRepo := store.NewAccountRepository()
	propertyRepo := store.NewAccountPropertyRepository()
	customerLimitRepo := store.NewCustomerLimitRepository()
	bankStatementRepo := store.NewBankStatementRepository()
	settingsRepo := store.NewFeatureSettingRepository()
	quotaCounter := repository.NewQuotaCounter(a.RedisClient.Client)

	notifier := notification.NewNotificationService(a.PubSubPublisher)

	eligibility := services.NewEligibilityService(
		affordabilityRepo, applicationRepo, settingsRepo,
		bankStatementRepo, quotaCounter, notifier,
		func(nik string) bool { return utils.IsValidNIK(utils.CleanNIK(nik)) })
	selector := services.NewMatrixSelectorService(
		applicationRepo, creditModelRepo, matrixRepo, settingsRepo,
		bankStatementRepo, quotaCounter, notifier)
	calculator := services.NewLimitCalculatorService()
	overrides := services.NewOverrideService(
		settingsRepo, bankStatementRepo, applicationRepo, generationRepo, notifier)
	accountProps := services.NewAccountPropertyService(propertyRepo, creditModelRepo)
	creditLimit := services.NewCreditLimitService(
		eligibility, selector, calculator, overrides, settingsRepo,
		creditModelRepo, generationRepo, accountRepo, customerLimitRepo,
		accountProps, a.KafkaService, a.WorkerPool)

	return handlers.NewLimitGenerationHandler(
		applicationRepo, creditLimit, accountProps, selector, accountRepo,
		a.Subscription)
}

// Run starts the subscription receive loop and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.PubSubConsumer.StartConsumer(a.Subscription, a.Handler.HandleApplicationStatusMessage)
	logger.Info(ctx, "Worker consuming subscription %s", a.Subscription)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.Shutdown(ctx)
	logger.Info(ctx, "Worker exiting")
	return nil
}

// Shutdown closes resources in dependency order. The worker pool is
// drained first so in-flight event emissions still have a live producer.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.PubSubConsumer.Close(); err != nil {
		logger.Error(ctx, "Error closing PubSub consumer: %v", err)
	}
	a.WorkerPool.Stop()
	if err := a.PubSubPublisher.Close(); err != nil {
		logger.Error(ctx, "Error closing PubSub publisher: %v", err)
	}
	a.KafkaProducer.Close()
	a.MongoClient.Close()
	a.RedisClient.Client.Close()
}
