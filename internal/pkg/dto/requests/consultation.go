package requests

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookConsultationRequest struct {
	DoctorID         int64           `json:"doctor_id" validate:"required,gt=0"`
	PatientID        int64           `json:"patient_id" validate:"required,gt=0"`
	ScheduledAt      time.Time       `json:"scheduled_at" validate:"required"`
	Reason           string          `json:"reason" validate:"max=500"`
	ConsultationType string          `json:"consultation_type" validate:"omitempty,oneof=ONLINE OFFLINE"`
	Price            decimal.Decimal `json:"price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}

type TransitionConsultationRequest struct {
	ConsultationID int64  `json:"-"`
	State          string `json:"state" validate:"required"`
}
