package scheduling

import (
	"context"
	"testing"
	"time"

	"tabib-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConsultationRepository struct {
	consultations []models.Consultation
}

func (f *fakeConsultationRepository) CreateConsultation(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	return consultation, nil
}

func (f *fakeConsultationRepository) FindConsultationByID(ctx context.Context, consultationID int64) (*models.Consultation, error) {
	for i := range f.consultations {
		if f.consultations[i].ID == consultationID {
			return &f.consultations[i], nil
		}
	}
	return nil, nil
}

func (f *fakeConsultationRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	return f.consultations, nil
}

func (f *fakeConsultationRepository) FindByPatientID(ctx context.Context, patientID int64) ([]models.Consultation, error) {
	return f.consultations, nil
}

func (f *fakeConsultationRepository) FindPendingByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	return nil, nil
}

func (f *fakeConsultationRepository) FindByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Consultation, error) {
	var result []models.Consultation
	for _, c := range f.consultations {
		if c.DoctorID != doctorID {
			continue
		}
		if !c.ScheduledAt.Before(from) && c.ScheduledAt.Before(to) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeConsultationRepository) UpdateConsultationState(ctx context.Context, consultationID int64, state models.ConsultationState) (*models.Consultation, error) {
	return nil, nil
}

func TestSchedulingGuardIsAvailable(t *testing.T) {
	nineAM := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeConsultationRepository{
		consultations: []models.Consultation{
			{ID: 1, DoctorID: 7, ScheduledAt: nineAM, State: models.ConsultationPending},
		},
	}
	guard := NewSchedulingGuard(repo, zap.NewNop())

	t.Run("Nearby Start Is Rejected", func(t *testing.T) {
		available, err := guard.IsAvailable(context.Background(), 7, nineAM.Add(10*time.Minute))
		require.NoError(t, err)
		assert.False(t, available, "09:10 collides with the 09:00 consultation")
	})

	t.Run("Start Past The Window Is Accepted", func(t *testing.T) {
		available, err := guard.IsAvailable(context.Background(), 7, nineAM.Add(20*time.Minute))
		require.NoError(t, err)
		assert.True(t, available, "09:20 is outside the 09:00 blocking window")
	})

	t.Run("Other Doctors Are Unaffected", func(t *testing.T) {
		available, err := guard.IsAvailable(context.Background(), 8, nineAM)
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("Cancelled Consultations Do Not Block", func(t *testing.T) {
		cancelledRepo := &fakeConsultationRepository{
			consultations: []models.Consultation{
				{ID: 2, DoctorID: 7, ScheduledAt: nineAM, State: models.ConsultationCancelled},
			},
		}
		cancelledGuard := NewSchedulingGuard(cancelledRepo, zap.NewNop())
		available, err := cancelledGuard.IsAvailable(context.Background(), 7, nineAM)
		require.NoError(t, err)
		assert.True(t, available)
	})
}

func TestSchedulingGuardAvailableSlots(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Empty Day Exposes The Full Grid", func(t *testing.T) {
		guard := NewSchedulingGuard(&fakeConsultationRepository{}, zap.NewNop())
		slots, err := guard.AvailableSlots(context.Background(), 7, date)
		require.NoError(t, err)
		assert.Len(t, slots, 16)
	})

	t.Run("Off Grid Booking Shadows Nearby Slots", func(t *testing.T) {
		// A 09:40 consultation blocks slots inside [09:26, 09:55):
		// 09:30 goes, 09:00 and 10:00 stay.
		repo := &fakeConsultationRepository{
			consultations: []models.Consultation{
				{ID: 1, DoctorID: 7, ScheduledAt: date.Add(9*time.Hour + 40*time.Minute), State: models.ConsultationAccepted},
			},
		}
		guard := NewSchedulingGuard(repo, zap.NewNop())
		slots, err := guard.AvailableSlots(context.Background(), 7, date)
		require.NoError(t, err)
		assert.NotContains(t, slots, "09:30")
		assert.Contains(t, slots, "09:00")
		assert.Contains(t, slots, "10:00")
		assert.Len(t, slots, 15)
	})

	t.Run("On Grid Booking Removes Exactly One Slot", func(t *testing.T) {
		repo := &fakeConsultationRepository{
			consultations: []models.Consultation{
				{ID: 1, DoctorID: 7, ScheduledAt: date.Add(14 * time.Hour), State: models.ConsultationPending},
			},
		}
		guard := NewSchedulingGuard(repo, zap.NewNop())
		slots, err := guard.AvailableSlots(context.Background(), 7, date)
		require.NoError(t, err)
		assert.NotContains(t, slots, "14:00")
		assert.Contains(t, slots, "13:30")
		assert.Contains(t, slots, "14:30")
		assert.Len(t, slots, 15)
	})
}
