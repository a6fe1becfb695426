package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConsultationState string

const (
	ConsultationPending   ConsultationState = "PENDING"
	ConsultationAccepted  ConsultationState = "ACCEPTED"
	ConsultationCompleted ConsultationState = "COMPLETED"
	ConsultationCancelled ConsultationState = "CANCELLED"
)

var consultationStateLabels = map[ConsultationState]string{
	ConsultationPending:   "Pending",
	ConsultationAccepted:  "Accepted",
	ConsultationCompleted: "Completed",
	ConsultationCancelled: "Cancelled",
}

// allowedTransitions is the full edge set of the consultation lifecycle.
// Payment success drives PENDING→ACCEPTED, a full refund drives
// PENDING/ACCEPTED→CANCELLED, the doctor closes ACCEPTED→COMPLETED.
var allowedTransitions = map[ConsultationState][]ConsultationState{
	ConsultationPending:  {ConsultationAccepted, ConsultationCancelled},
	ConsultationAccepted: {ConsultationCompleted, ConsultationCancelled},
}

func (s ConsultationState) Label() string {
	if label, ok := consultationStateLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s ConsultationState) Valid() bool {
	_, ok := consultationStateLabels[s]
	return ok
}

func (s ConsultationState) CanTransitionTo(next ConsultationState) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Consultation struct {
	ID               int64             `json:"id"`
	DoctorID         int64             `json:"doctor_id"`
	PatientID        int64             `json:"patient_id"`
	ScheduledAt      time.Time         `json:"scheduled_at"`
	State            ConsultationState `json:"state"`
	Reason           string            `json:"reason,omitempty"`
	ConsultationType string            `json:"consultation_type,omitempty"`
	Price            decimal.Decimal   `json:"price"`
	TotalPrice       decimal.Decimal   `json:"total_price"`
	VideoCallLink    string            `json:"video_call_link"`
	CreatedAt        time.Time         `json:"created_at"`
}
