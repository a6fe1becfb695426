package consultations

import (
	"context"
	"database/sql"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/drivers/database"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/exceptions"
	"tabib-service/internal/pkg/queries"
)

type prescriptionPostgresRepository struct {
	DB *sql.DB
}

func NewPrescriptionPostgresRepository(db *sql.DB) contracts.PrescriptionRepository {
	return &prescriptionPostgresRepository{
		DB: db,
	}
}

func (repo *prescriptionPostgresRepository) CreatePrescription(ctx context.Context, prescription *models.Prescription) (*models.Prescription, error) {
	var inserted models.Prescription
	err := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.InsertPrescription,
		prescription.ConsultationID,
		prescription.DoctorID,
		prescription.PatientID,
		prescription.Content,
	).Scan(
		&inserted.ID,
		&inserted.ConsultationID,
		&inserted.DoctorID,
		&inserted.PatientID,
		&inserted.Content,
		&inserted.CreatedAt,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return &inserted, nil
}

func (repo *prescriptionPostgresRepository) FindByConsultationID(ctx context.Context, consultationID int64) (*models.Prescription, error) {
	var prescription models.Prescription
	err := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.GetPrescriptionByConsultationID, consultationID).Scan(
		&prescription.ID,
		&prescription.ConsultationID,
		&prescription.DoctorID,
		&prescription.PatientID,
		&prescription.Content,
		&prescription.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &prescription, nil
}
