package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingQueryKey          = "query"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingConsultationIDKey = "consultation_id"
	LoggingPaymentIDKey      = "payment_id"
	LoggingPaymentMethodKey  = "payment_method"
	LoggingPaymentStatusKey  = "payment_status"
	LoggingRefundStatusKey   = "refund_status"
	LoggingAmountKey         = "amount"
	LoggingStateKey          = "state"
	LoggingQueueNameKey      = "queue_name"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingEmailKey          = "email"
)
