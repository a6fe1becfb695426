package config

import (
	"tabib-service/internal/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("No .env file found, falling back to environment variables")
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", "development"),
			Port:                           utils.GetEnvString("APP_PORT", ":8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Address:                        utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "Africa/Casablanca"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			ShutdownTimeout:                utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			DefaultCurrency:                utils.GetEnvString("APP_DEFAULT_CURRENCY", "MAD"),
			VideoCallBaseURL:               utils.GetEnvString("APP_VIDEO_CALL_BASE_URL", "https://meet.tabib.life"),
			VideoTokenExpTimeInHour:        utils.GetEnvInt("APP_VIDEO_TOKEN_EXP_TIME_IN_HOUR", 24),
			MailerEmailSender:              utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "no-reply@tabib.life"),
			RabbitMQMailerQueue:            utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mailer_queue"),
			BookingLockTTLInSeconds:        utils.GetEnvInt("APP_BOOKING_LOCK_TTL_IN_SECONDS", 30),
			PaymentGatewayTimeoutInSeconds: utils.GetEnvInt("APP_PAYMENT_GATEWAY_TIMEOUT_IN_SECONDS", 30),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "defaultSecret"),
		},
		PaymentGateway: PaymentGateway{
			StripeSecretKey:    utils.GetEnvString("STRIPE_SECRET_KEY", ""),
			MobileMoneyBaseUrl: utils.GetEnvString("MOBILE_MONEY_BASE_URL", "https://api.mobile-money.example"),
			MobileMoneyApiKey:  utils.GetEnvString("MOBILE_MONEY_API_KEY", ""),
			PayPalBaseUrl:      utils.GetEnvString("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
			PayPalClientID:     utils.GetEnvString("PAYPAL_CLIENT_ID", ""),
			PayPalSecret:       utils.GetEnvString("PAYPAL_SECRET", ""),
		},
	}
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "defaultPassword"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "tabib"),
		},
		MongoDB: MongoDB{
			Host:     utils.GetEnvString("MONGO_HOST", "localhost"),
			Port:     utils.GetEnvString("MONGO_PORT", "27017"),
			DbName:   utils.GetEnvString("MONGO_DB_NAME", "tabib"),
			Username: utils.GetEnvString("MONGO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGO_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "smtp_host"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILE_NAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILE_NAME", "logger_error.log"),
		},
	}
}
