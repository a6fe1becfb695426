package contracts

import (
	"context"
	"tabib-service/internal/app/models"
)

type PrescriptionRepository interface {
	CreatePrescription(ctx context.Context, prescription *models.Prescription) (*models.Prescription, error)
	FindByConsultationID(ctx context.Context, consultationID int64) (*models.Prescription, error)
}
