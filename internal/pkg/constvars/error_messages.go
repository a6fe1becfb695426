package constvars

// Client-facing messages. Kept deliberately vague for anything the caller
// cannot act on.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"

	ErrClientDoctorNotFound       = "Doctor not found"
	ErrClientPatientNotFound      = "Patient not found"
	ErrClientConsultationNotFound = "Consultation not found"
	ErrClientPaymentNotFound      = "Payment not found"

	ErrClientDoctorSlotConflict = "The doctor already has a consultation within 15 minutes of the requested time"

	ErrClientInvalidConsultationState = "The consultation cannot move to the requested state"
	ErrClientPaymentNotRefundable     = "The payment is not in a refundable state"
	ErrClientPaymentNotPending        = "The payment is not awaiting confirmation"
	ErrClientPaymentAlreadyRefunded   = "The payment is already fully refunded"
	ErrClientPaymentAlreadyPending    = "A payment for this consultation and method is already in progress"

	ErrClientInvalidAmount         = "Payment amount must be greater than zero"
	ErrClientRefundExceedsBalance  = "Refund amount exceeds the remaining refundable balance"
	ErrClientMissingPaymentDetails = "Required payment details are missing"

	ErrClientPaymentGatewayFailure = "The payment provider could not process the request, please try again later"
)

// Developer-facing messages, logged, never returned to clients.
const (
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "failed to parse JSON body"
	ErrDevCannotParseDate           = "failed to parse date parameter"
	ErrDevCannotMarshalJSON         = "failed to marshal JSON"
	ErrDevURLParamValidationFailed  = "URL parameter %s failed validation"
	ErrDevServerDeadlineExceeded    = "request deadline exceeded"
	ErrDevDoctorNotFound            = "doctor does not exist in directory"
	ErrDevPatientNotFound           = "patient does not exist in directory"
	ErrDevConsultationNotFound      = "consultation does not exist"
	ErrDevPaymentNotFound           = "payment does not exist"
	ErrDevDoctorSlotConflict        = "requested start falls inside the conflict window of an existing consultation"
	ErrDevInvalidTransition         = "illegal consultation state transition from %s to %s"
	ErrDevPaymentNotSucceeded       = "refund requested on payment with status %s"
	ErrDevPaymentNotPending         = "card confirmation requested on payment with status %s"
	ErrDevPaymentFullyRefunded      = "refund requested on fully refunded payment"
	ErrDevPendingPaymentExists      = "a pending payment already exists for this consultation and method"
	ErrDevInvalidAmount             = "amount is zero or negative"
	ErrDevRefundExceedsBalance      = "refund amount exceeds remaining balance"
	ErrDevMissingPaymentField       = "missing required field %s for payment method %s"
	ErrDevPaymentGatewayCall        = "payment gateway %s call failed"
	ErrDevPaymentGatewayTimeout     = "payment gateway call timed out"
	ErrDevDBFailedToFindData        = "database failed to find data"
	ErrDevDBFailedToInsertData      = "database failed to insert data"
	ErrDevDBFailedToUpdateData      = "database failed to update data"
	ErrDevDBFailedToIterateDataset  = "database failed to iterate dataset"
	ErrDevDBFailedToBeginTx         = "database failed to begin transaction"
	ErrDevDBFailedToCommitTx        = "database failed to commit transaction"
	ErrDevMongoDBFailedToFind       = "mongodb failed to find document"
	ErrDevRedisFailedToSet          = "redis failed to set key"
	ErrDevRedisFailedToGet          = "redis failed to get key %s"
	ErrDevRedisFailedToDelete       = "redis failed to delete key"
	ErrDevRedisFailedToUnlock       = "redis failed to release lock"
	ErrDevRabbitMQFailedToPublish   = "rabbitmq failed to publish to queue %s"
	ErrDevSMTPFailedToSend          = "smtp server %s failed to send email"

	ErrDevFailedToGenerateSessionToken = "failed to sign video session token"
)
