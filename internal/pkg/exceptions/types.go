package exceptions

import (
	"fmt"
	"tabib-service/internal/pkg/constvars"
)

var (
	// Input / parsing
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseDate = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseDate)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName))
	}
	ErrInvalidAmount = func() *CustomError {
		return BuildNewCustomError(nil, KindValidation, constvars.StatusBadRequest, constvars.ErrClientInvalidAmount, constvars.ErrDevInvalidAmount)
	}
	ErrMissingPaymentField = func(field, method string) *CustomError {
		return BuildNewCustomError(nil, KindValidation, constvars.StatusBadRequest, constvars.ErrClientMissingPaymentDetails, fmt.Sprintf(constvars.ErrDevMissingPaymentField, field, method))
	}
	ErrRefundExceedsBalance = func() *CustomError {
		return BuildNewCustomError(nil, KindValidation, constvars.StatusBadRequest, constvars.ErrClientRefundExceedsBalance, constvars.ErrDevRefundExceedsBalance)
	}

	// Not found
	ErrDoctorNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientDoctorNotFound, constvars.ErrDevDoctorNotFound)
	}
	ErrPatientNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientPatientNotFound, constvars.ErrDevPatientNotFound)
	}
	ErrConsultationNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientConsultationNotFound, constvars.ErrDevConsultationNotFound)
	}
	ErrPaymentNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientPaymentNotFound, constvars.ErrDevPaymentNotFound)
	}

	// Scheduling
	ErrDoctorSlotConflict = func() *CustomError {
		return BuildNewCustomError(nil, KindConflict, constvars.StatusConflict, constvars.ErrClientDoctorSlotConflict, constvars.ErrDevDoctorSlotConflict)
	}

	// Lifecycle
	ErrInvalidTransition = func(from, to string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidTransition, constvars.StatusUnprocessableEntity, constvars.ErrClientInvalidConsultationState, fmt.Sprintf(constvars.ErrDevInvalidTransition, from, to))
	}

	// Ledger state
	ErrPaymentNotSucceeded = func(status string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusUnprocessableEntity, constvars.ErrClientPaymentNotRefundable, fmt.Sprintf(constvars.ErrDevPaymentNotSucceeded, status))
	}
	ErrPaymentNotPending = func(status string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusUnprocessableEntity, constvars.ErrClientPaymentNotPending, fmt.Sprintf(constvars.ErrDevPaymentNotPending, status))
	}
	ErrPaymentFullyRefunded = func() *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusUnprocessableEntity, constvars.ErrClientPaymentAlreadyRefunded, constvars.ErrDevPaymentFullyRefunded)
	}
	ErrPendingPaymentExists = func() *CustomError {
		return BuildNewCustomError(nil, KindConflict, constvars.StatusConflict, constvars.ErrClientPaymentAlreadyPending, constvars.ErrDevPendingPaymentExists)
	}

	// External gateways
	ErrPaymentGateway = func(err error, gateway string) *CustomError {
		return BuildNewCustomError(err, KindProcessor, constvars.StatusBadGateway, constvars.ErrClientPaymentGatewayFailure, fmt.Sprintf(constvars.ErrDevPaymentGatewayCall, gateway))
	}
	ErrPaymentGatewayTimeout = func(err error) *CustomError {
		return BuildNewCustomError(err, KindProcessor, constvars.StatusGatewayTimeout, constvars.ErrClientPaymentGatewayFailure, constvars.ErrDevPaymentGatewayTimeout)
	}

	// Infrastructure
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToGenerateSessionToken)
	}

	// Postgres
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData)
	}
	ErrPostgresDBIterateDataset = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDataset)
	}
	ErrPostgresDBBeginTx = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToBeginTx)
	}
	ErrPostgresDBCommitTx = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCommitTx)
	}

	// Mongo
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBFailedToFind)
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToSet)
	}
	ErrRedisGet = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisFailedToGet, key))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToDelete)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisFailedToUnlock)
	}

	// RabbitMQ / SMTP
	ErrRabbitMQPublishMessage = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQFailedToPublish, queue))
	}
	ErrSMTPSendEmail = func(err error, host string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevSMTPFailedToSend, host))
	}
)
