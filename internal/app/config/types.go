package config

type (
	InternalConfig struct {
		App            App
		JWT            JWT
		PaymentGateway PaymentGateway
	}

	DriverConfig struct {
		PostgresDB PostgresDB
		MongoDB    MongoDB
		Redis      Redis
		RabbitMQ   RabbitMQ
		SMTP       SMTP
		Logger     Logger
	}

	App struct {
		Env                            string
		Port                           string
		Version                        string
		Address                        string
		Timezone                       string
		EndpointPrefix                 string
		MaxRequests                    int
		ShutdownTimeout                int
		DefaultCurrency                string
		VideoCallBaseURL               string
		VideoTokenExpTimeInHour        int
		MailerEmailSender              string
		RabbitMQMailerQueue            string
		BookingLockTTLInSeconds        int
		PaymentGatewayTimeoutInSeconds int
	}

	PostgresDB struct {
		Host     string
		Port     string
		Username string
		Password string
		DBName   string
	}

	MongoDB struct {
		Host     string
		Port     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}

	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	JWT struct {
		Secret string
	}

	PaymentGateway struct {
		StripeSecretKey    string
		MobileMoneyBaseUrl string
		MobileMoneyApiKey  string
		PayPalBaseUrl      string
		PayPalClientID     string
		PayPalSecret       string
	}
)
