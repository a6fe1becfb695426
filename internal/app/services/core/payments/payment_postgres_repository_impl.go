package payments

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

type paymentPostgresRepository struct {
	DB *sql.DB
}

func NewPaymentPostgresRepository(db *sql.DB) contracts.PaymentRepository {
	return &paymentPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner, payment *models.Payment) error {
	return row.Scan(
		&payment.ID,
		&payment.PaymentID,
		&payment.ConsultationID,
		&payment.PatientID,
		&payment.DoctorID,
		&payment.Amount,
		&payment.Currency,
		&payment.Method,
		&payment.Status,
		&payment.TransactionID,
		&payment.CustomerEmail,
		&payment.CustomerName,
		&payment.PhoneNumber,
		&payment.MobileMoneyProvider,
		&payment.PayPalOrderID,
		&payment.RefundedAmount,
		&payment.RefundStatus,
		&payment.RefundReason,
		&payment.ErrorMessage,
		&payment.CreatedAt,
		&payment.UpdatedAt,
		&payment.RefundedAt,
		&payment.ConfirmationSent,
		&payment.ConfirmationSentAt,
	)
}

func (repo *paymentPostgresRepository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	row := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.InsertPayment,
		payment.PaymentID,
		payment.ConsultationID,
		payment.PatientID,
		payment.DoctorID,
		payment.Amount,
		payment.Currency,
		payment.Method,
		payment.Status,
		payment.CustomerEmail,
		payment.CustomerName,
		payment.PhoneNumber,
		payment.MobileMoneyProvider,
		payment.PayPalOrderID,
		payment.RefundedAmount,
		payment.RefundStatus,
	)
	var inserted models.Payment
	if err := scanPayment(row, &inserted); err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return &inserted, nil
}

func (repo *paymentPostgresRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	row := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.GetPaymentByPaymentID, paymentID)
	var payment models.Payment
	err := scanPayment(row, &payment)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (repo *paymentPostgresRepository) FindPendingByConsultationAndMethod(ctx context.Context, consultationID int64, method models.PaymentMethod) (*models.Payment, error) {
	row := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.GetPendingPaymentByConsultationAndMethod, consultationID, method)
	var payment models.Payment
	err := scanPayment(row, &payment)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (repo *paymentPostgresRepository) UpdatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	row := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.UpdatePayment,
		payment.PaymentID,
		payment.Status,
		payment.TransactionID,
		payment.RefundedAmount,
		payment.RefundStatus,
		payment.RefundReason,
		payment.ErrorMessage,
		payment.RefundedAt,
	)
	var updated models.Payment
	err := scanPayment(row, &updated)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return &updated, nil
}

func (repo *paymentPostgresRepository) MarkConfirmationSent(ctx context.Context, paymentID string, sentAt time.Time) error {
	_, err := database.Conn(ctx, repo.DB).ExecContext(ctx, queries.MarkPaymentConfirmationSent, paymentID, sentAt)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *paymentPostgresRepository) FindByPatientID(ctx context.Context, patientID int64) ([]models.Payment, error) {
	return repo.queryPayments(ctx, queries.GetPaymentsByPatientID, patientID)
}

func (repo *paymentPostgresRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Payment, error) {
	return repo.queryPayments(ctx, queries.GetPaymentsByDoctorID, doctorID)
}

func (repo *paymentPostgresRepository) FindByConsultationID(ctx context.Context, consultationID int64) ([]models.Payment, error) {
	return repo.queryPayments(ctx, queries.GetPaymentsByConsultationID, consultationID)
}

func (repo *paymentPostgresRepository) SucceededStatisticsSince(ctx context.Context, since time.Time) (*models.PaymentStatistics, error) {
	var statistics models.PaymentStatistics
	err := database.Conn(ctx, repo.DB).QueryRowContext(ctx, queries.GetSucceededPaymentStatisticsSince, since).Scan(
		&statistics.Count,
		&statistics.TotalAmount,
	)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &statistics, nil
}

func (repo *paymentPostgresRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := database.Conn(ctx, repo.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var model models.Payment
		if err := scanPayment(rows, &model); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		payments = append(payments, model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return payments, nil
}
