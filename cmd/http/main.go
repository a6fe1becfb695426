package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabib-service/internal/app/config"
	"tabib-service/internal/app/delivery/http/middlewares"
	"tabib-service/internal/app/delivery/http/routers"
	"tabib-service/internal/app/drivers/database"
	"tabib-service/internal/app/drivers/logger"
	smtpDriver "tabib-service/internal/app/drivers/mailer"
	"tabib-service/internal/app/drivers/messaging"
	"tabib-service/internal/app/services/core/consultations"
	"tabib-service/internal/app/services/core/directory"
	"tabib-service/internal/app/services/core/payments"
	"tabib-service/internal/app/services/core/scheduling"
	"tabib-service/internal/app/services/shared/locker"
	"tabib-service/internal/app/services/shared/mailer"
	paymentGateway "tabib-service/internal/app/services/shared/payment_gateway"
	"tabib-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	postgresDB := database.NewPostgresDB(driverConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		PostgresDB:     postgresDB,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapingTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error while releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockerService(redisRepository, bootstrap.Logger)

	// Payment gateways
	stripeService := paymentGateway.NewStripeService(bootstrap.InternalConfig)
	mobileMoneyService := paymentGateway.NewMobileMoneyService(bootstrap.InternalConfig)
	paypalService := paymentGateway.NewPayPalService(bootstrap.InternalConfig)

	// Mailer
	mailerService, err := mailer.NewMailerService(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.RabbitMQMailerQueue, bootstrap.Logger)
	if err != nil {
		bootstrap.Logger.Fatal("failed to initialize mailer service", zap.Error(err))
	}
	smtpClient := smtpDriver.NewSMTPClient(bootstrap.DriverConfig)
	mailerWorker, err := mailer.NewMailerWorker(bootstrap.RabbitMQ, smtpClient, bootstrap.InternalConfig.App.RabbitMQMailerQueue, bootstrap.Logger)
	if err != nil {
		bootstrap.Logger.Fatal("failed to initialize mailer worker", zap.Error(err))
	}
	workerCtx, stopWorker := context.WithCancel(context.Background())
	bootstrap.WorkerStop = stopWorker
	go func() {
		if err := mailerWorker.Run(workerCtx); err != nil {
			bootstrap.Logger.Error("mailer worker stopped", zap.Error(err))
		}
	}()

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Directory
	directoryLookup := directory.NewDirectoryMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Transactions
	transactionManager := database.NewSQLTransactionManager(bootstrap.PostgresDB)

	// Consultations
	consultationRepository := consultations.NewConsultationPostgresRepository(bootstrap.PostgresDB)
	prescriptionRepository := consultations.NewPrescriptionPostgresRepository(bootstrap.PostgresDB)
	schedulingGuard := scheduling.NewSchedulingGuard(consultationRepository, bootstrap.Logger)
	consultationUsecase := consultations.NewConsultationUsecase(
		consultationRepository,
		prescriptionRepository,
		directoryLookup,
		schedulingGuard,
		lockerService,
		transactionManager,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	consultationController := consultations.NewConsultationController(bootstrap.Logger, consultationUsecase, schedulingGuard)

	// Payments
	paymentRepository := payments.NewPaymentPostgresRepository(bootstrap.PostgresDB)
	paymentUsecase := payments.NewPaymentUsecase(
		paymentRepository,
		consultationRepository,
		stripeService,
		mobileMoneyService,
		paypalService,
		mailerService,
		transactionManager,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	refundUsecase := payments.NewRefundUsecase(
		paymentRepository,
		consultationRepository,
		stripeService,
		mailerService,
		transactionManager,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	paymentController := payments.NewPaymentController(bootstrap.Logger, paymentUsecase, refundUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, consultationController, paymentController)
}
