package consultations

import (
	"context"
	"database/sql"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/drivers/database"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/exceptions"
	"tabib-service/internal/pkg/queries"
	"time"
)

type consultationPostgresRepository struct {
	DB *sql.DB
}

func NewConsultationPostgresRepository(db *sql.DB) contracts.ConsultationRepository {
	return &consultationPostgresRepository{
		DB: db,
	}
}

func scanConsultation(row *sql.Row) (*models.Consultation, error) {
	var consultation models.Consultation
	err := row.Scan(
		&consultation.ID,
		&consultation.DoctorID,
		&consultation.PatientID,
		&consultation.ScheduledAt,
		&consultation.State,
		&consultation.Reason,
		&consultation.ConsultationType,
		&consultation.Price,
		&consultation.TotalPrice,
		&consultation.VideoCallLink,
		&consultation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &consultation, nil
}

func (repo *consultationPostgresRepository) CreateConsultation(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	row := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.InsertConsultation,
		consultation.DoctorID,
		consultation.PatientID,
		consultation.ScheduledAt,
		consultation.State,
		consultation.Reason,
		consultation.ConsultationType,
		consultation.Price,
		consultation.TotalPrice,
		consultation.VideoCallLink,
	)
	inserted, err := scanConsultation(row)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return inserted, nil
}

func (repo *consultationPostgresRepository) FindConsultationByID(ctx context.Context, consultationID int64) (*models.Consultation, error) {
	row := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.GetConsultationByID, consultationID)
	consultation, err := scanConsultation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return consultation, nil
}

func (repo *consultationPostgresRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	return repo.queryConsultations(ctx, queries.GetConsultationsByDoctorID, doctorID)
}

func (repo *consultationPostgresRepository) FindByPatientID(ctx context.Context, patientID int64) ([]models.Consultation, error) {
	return repo.queryConsultations(ctx, queries.GetConsultationsByPatientID, patientID)
}

func (repo *consultationPostgresRepository) FindPendingByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	return repo.queryConsultations(ctx, queries.GetPendingConsultationsByDoctorID, doctorID)
}

func (repo *consultationPostgresRepository) FindByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Consultation, error) {
	return repo.queryConsultations(ctx, queries.GetConsultationsByDoctorBetween, doctorID, from, to)
}

func (repo *consultationPostgresRepository) UpdateConsultationState(ctx context.Context, consultationID int64, state models.ConsultationState) (*models.Consultation, error) {
	row := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.UpdateConsultationState, consultationID, state)
	updated, err := scanConsultation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return updated, nil
}

func (repo *consultationPostgresRepository) queryConsultations(ctx context.Context, query string, args ...interface{}) ([]models.Consultation, error) {
	rows, err := database.Conn(ctx, repo.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var consultations []models.Consultation
	for rows.Next() {
		var model models.Consultation
		if err := rows.Scan(
			&model.ID,
			&model.DoctorID,
			&model.PatientID,
			&model.ScheduledAt,
			&model.State,
			&model.Reason,
			&model.ConsultationType,
			&model.Price,
			&model.TotalPrice,
			&model.VideoCallLink,
			&model.CreatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		consultations = append(consultations, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return consultations, nil
}
