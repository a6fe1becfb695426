package consultations

import (
	"context"
	"fmt"
	"tabib-service/internal/app/config"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
	"tabib-service/internal/pkg/exceptions"
	"tabib-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type consultationUsecase struct {
	ConsultationRepository contracts.ConsultationRepository
	PrescriptionRepository contracts.PrescriptionRepository
	DirectoryLookup        contracts.DirectoryLookup
	SchedulingGuard        contracts.SchedulingGuard
	LockerService          contracts.LockerService
	TransactionManager     contracts.TransactionManager
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewConsultationUsecase(
	consultationRepository contracts.ConsultationRepository,
	prescriptionRepository contracts.PrescriptionRepository,
	directoryLookup contracts.DirectoryLookup,
	schedulingGuard contracts.SchedulingGuard,
	lockerService contracts.LockerService,
	transactionManager contracts.TransactionManager,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConsultationLifecycle {
	return &consultationUsecase{
		ConsultationRepository: consultationRepository,
		PrescriptionRepository: prescriptionRepository,
		DirectoryLookup:        directoryLookup,
		SchedulingGuard:        schedulingGuard,
		LockerService:          lockerService,
		TransactionManager:     transactionManager,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

func (uc *consultationUsecase) Book(ctx context.Context, request *requests.BookConsultationRequest) (*responses.ConsultationResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consultationUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.Int64(constvars.LoggingPatientIDKey, request.PatientID),
	)

	doctor, err := uc.DirectoryLookup.GetDoctor(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %d not in directory", request.DoctorID))
	}
	patient, err := uc.DirectoryLookup.GetPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(fmt.Errorf("patient %d not in directory", request.PatientID))
	}

	// Per-doctor lock serializes the availability check and the insert, so
	// two racing requests for the same window cannot both pass the guard.
	lockKey := fmt.Sprintf(constvars.BookingLockKeyFormat, request.DoctorID)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		uc.Log.Info("consultationUsecase.Book lock contention, rejecting",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingDoctorIDKey, request.DoctorID),
		)
		return nil, exceptions.ErrDoctorSlotConflict()
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("consultationUsecase.Book failed to release booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	videoCallLink, err := utils.GenerateVideoCallLink(
		uc.InternalConfig.App.VideoCallBaseURL,
		uc.InternalConfig.JWT.Secret,
		uc.InternalConfig.App.VideoTokenExpTimeInHour,
	)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	var booked *models.Consultation
	err = uc.TransactionManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		available, err := uc.SchedulingGuard.IsAvailable(txCtx, request.DoctorID, request.ScheduledAt)
		if err != nil {
			return err
		}
		if !available {
			return exceptions.ErrDoctorSlotConflict()
		}

		consultation := &models.Consultation{
			DoctorID:         request.DoctorID,
			PatientID:        request.PatientID,
			ScheduledAt:      request.ScheduledAt,
			State:            models.ConsultationPending,
			Reason:           request.Reason,
			ConsultationType: request.ConsultationType,
			Price:            request.Price,
			TotalPrice:       request.TotalPrice,
			VideoCallLink:    videoCallLink,
		}
		booked, err = uc.ConsultationRepository.CreateConsultation(txCtx, consultation)
		if err != nil {
			return err
		}

		// Every booking starts with a blank prescription the doctor fills
		// in later.
		_, err = uc.PrescriptionRepository.CreatePrescription(txCtx, &models.Prescription{
			ConsultationID: booked.ID,
			DoctorID:       booked.DoctorID,
			PatientID:      booked.PatientID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("consultationUsecase.Book booked consultation",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingConsultationIDKey, booked.ID),
		zap.Int64(constvars.LoggingDoctorIDKey, booked.DoctorID),
	)
	return responses.NewConsultationResponse(booked), nil
}

func (uc *consultationUsecase) Transition(ctx context.Context, consultationID int64, newState models.ConsultationState) (*models.Consultation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consultationUsecase.Transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingStateKey, string(newState)),
	)

	if !newState.Valid() {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("unknown consultation state %q", newState))
	}

	consultation, err := uc.ConsultationRepository.FindConsultationByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, exceptions.ErrConsultationNotFound(fmt.Errorf("consultation %d not found", consultationID))
	}

	if !consultation.State.CanTransitionTo(newState) {
		return nil, exceptions.ErrInvalidTransition(string(consultation.State), string(newState))
	}

	updated, err := uc.ConsultationRepository.UpdateConsultationState(ctx, consultationID, newState)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrConsultationNotFound(fmt.Errorf("consultation %d disappeared during update", consultationID))
	}

	uc.Log.Info("consultationUsecase.Transition updated state",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingConsultationIDKey, updated.ID),
		zap.String(constvars.LoggingStateKey, string(updated.State)),
	)
	return updated, nil
}

func (uc *consultationUsecase) ListByDoctor(ctx context.Context, doctorID int64) ([]responses.ConsultationResponse, error) {
	consultations, err := uc.ConsultationRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return responses.NewConsultationListResponse(consultations), nil
}

func (uc *consultationUsecase) ListByPatient(ctx context.Context, patientID int64) ([]responses.ConsultationResponse, error) {
	consultations, err := uc.ConsultationRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return responses.NewConsultationListResponse(consultations), nil
}

func (uc *consultationUsecase) ListPending(ctx context.Context, doctorID int64) ([]responses.ConsultationResponse, error) {
	consultations, err := uc.ConsultationRepository.FindPendingByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return responses.NewConsultationListResponse(consultations), nil
}
