package contracts

import (
	"context"
	"tabib-service/internal/app/models"
)

// DirectoryLookup is the external doctor/patient directory. The core never
// mutates these records.
type DirectoryLookup interface {
	GetDoctor(ctx context.Context, doctorID int64) (*models.Doctor, error)
	GetPatient(ctx context.Context, patientID int64) (*models.Patient, error)
}
