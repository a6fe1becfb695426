package responses

import (
	"time"

	"tabib-service/internal/app/models"

	"github.com/shopspring/decimal"
)

type ConsultationResponse struct {
	ID               int64           `json:"id"`
	DoctorID         int64           `json:"doctor_id"`
	PatientID        int64           `json:"patient_id"`
	ScheduledAt      time.Time       `json:"scheduled_at"`
	State            string          `json:"state"`
	StateLabel       string          `json:"state_label"`
	Reason           string          `json:"reason,omitempty"`
	ConsultationType string          `json:"consultation_type,omitempty"`
	Price            decimal.Decimal `json:"price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	VideoCallLink    string          `json:"video_call_link"`
	CreatedAt        time.Time       `json:"created_at"`
}

func NewConsultationResponse(consultation *models.Consultation) *ConsultationResponse {
	return &ConsultationResponse{
		ID:               consultation.ID,
		DoctorID:         consultation.DoctorID,
		PatientID:        consultation.PatientID,
		ScheduledAt:      consultation.ScheduledAt,
		State:            string(consultation.State),
		StateLabel:       consultation.State.Label(),
		Reason:           consultation.Reason,
		ConsultationType: consultation.ConsultationType,
		Price:            consultation.Price,
		TotalPrice:       consultation.TotalPrice,
		VideoCallLink:    consultation.VideoCallLink,
		CreatedAt:        consultation.CreatedAt,
	}
}

func NewConsultationListResponse(consultations []models.Consultation) []ConsultationResponse {
	result := make([]ConsultationResponse, 0, len(consultations))
	for i := range consultations {
		result = append(result, *NewConsultationResponse(&consultations[i]))
	}
	return result
}

type AvailableSlotsResponse struct {
	DoctorID int64    `json:"doctor_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}
