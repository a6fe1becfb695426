package models

import "time"

// Prescription is the free-text clinical note bound 1:1 to a consultation.
// A blank one is created together with every booking.
type Prescription struct {
	ID             int64     `json:"id"`
	ConsultationID int64     `json:"consultation_id"`
	DoctorID       int64     `json:"doctor_id"`
	PatientID      int64     `json:"patient_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
