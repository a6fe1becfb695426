package contracts

import (
	"context"
	"tabib-service/internal/app/models"
	"time"

	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
)

type ConsultationRepository interface {
	CreateConsultation(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error)
	FindConsultationByID(ctx context.Context, consultationID int64) (*models.Consultation, error)
	FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error)
	FindByPatientID(ctx context.Context, patientID int64) ([]models.Consultation, error)
	FindPendingByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error)
	// FindByDoctorBetween returns consultations for the doctor whose start
	// lies in the half-open interval [from, to).
	FindByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Consultation, error)
	UpdateConsultationState(ctx context.Context, consultationID int64, state models.ConsultationState) (*models.Consultation, error)
}

// ConsultationLifecycle owns booking and the consultation state machine.
type ConsultationLifecycle interface {
	Book(ctx context.Context, request *requests.BookConsultationRequest) (*responses.ConsultationResponse, error)
	Transition(ctx context.Context, consultationID int64, newState models.ConsultationState) (*models.Consultation, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]responses.ConsultationResponse, error)
	ListByPatient(ctx context.Context, patientID int64) ([]responses.ConsultationResponse, error)
	ListPending(ctx context.Context, doctorID int64) ([]responses.ConsultationResponse, error)
}
