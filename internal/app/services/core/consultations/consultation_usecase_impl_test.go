package consultations

import (
	"context"
	"testing"
	"time"

	"tabib-service/internal/app/config"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryConsultationRepository struct {
	consultations map[int64]*models.Consultation
	nextID        int64
}

func newMemoryConsultationRepository() *memoryConsultationRepository {
	return &memoryConsultationRepository{
		consultations: make(map[int64]*models.Consultation),
		nextID:        1,
	}
}

func (m *memoryConsultationRepository) CreateConsultation(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	stored := *consultation
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.consultations[stored.ID] = &stored
	m.nextID++
	result := stored
	return &result, nil
}

func (m *memoryConsultationRepository) FindConsultationByID(ctx context.Context, consultationID int64) (*models.Consultation, error) {
	consultation, ok := m.consultations[consultationID]
	if !ok {
		return nil, nil
	}
	result := *consultation
	return &result, nil
}

func (m *memoryConsultationRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	var result []models.Consultation
	for _, c := range m.consultations {
		if c.DoctorID == doctorID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *memoryConsultationRepository) FindByPatientID(ctx context.Context, patientID int64) ([]models.Consultation, error) {
	var result []models.Consultation
	for _, c := range m.consultations {
		if c.PatientID == patientID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *memoryConsultationRepository) FindPendingByDoctorID(ctx context.Context, doctorID int64) ([]models.Consultation, error) {
	var result []models.Consultation
	for _, c := range m.consultations {
		if c.DoctorID == doctorID && c.State == models.ConsultationPending {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *memoryConsultationRepository) FindByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) ([]models.Consultation, error) {
	var result []models.Consultation
	for _, c := range m.consultations {
		if c.DoctorID == doctorID && !c.ScheduledAt.Before(from) && c.ScheduledAt.Before(to) {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *memoryConsultationRepository) UpdateConsultationState(ctx context.Context, consultationID int64, state models.ConsultationState) (*models.Consultation, error) {
	consultation, ok := m.consultations[consultationID]
	if !ok {
		return nil, nil
	}
	consultation.State = state
	result := *consultation
	return &result, nil
}

type memoryPrescriptionRepository struct {
	prescriptions []models.Prescription
}

func (m *memoryPrescriptionRepository) CreatePrescription(ctx context.Context, prescription *models.Prescription) (*models.Prescription, error) {
	stored := *prescription
	stored.ID = int64(len(m.prescriptions) + 1)
	m.prescriptions = append(m.prescriptions, stored)
	return &stored, nil
}

func (m *memoryPrescriptionRepository) FindByConsultationID(ctx context.Context, consultationID int64) (*models.Prescription, error) {
	for i := range m.prescriptions {
		if m.prescriptions[i].ConsultationID == consultationID {
			return &m.prescriptions[i], nil
		}
	}
	return nil, nil
}

type fakeDirectory struct {
	doctors  map[int64]*models.Doctor
	patients map[int64]*models.Patient
}

func (f *fakeDirectory) GetDoctor(ctx context.Context, doctorID int64) (*models.Doctor, error) {
	return f.doctors[doctorID], nil
}

func (f *fakeDirectory) GetPatient(ctx context.Context, patientID int64) (*models.Patient, error) {
	return f.patients[patientID], nil
}

type fakeGuard struct {
	available bool
}

func (f *fakeGuard) IsAvailable(ctx context.Context, doctorID int64, requestedStart time.Time) (bool, error) {
	return f.available, nil
}

func (f *fakeGuard) AvailableSlots(ctx context.Context, doctorID int64, date time.Time) ([]string, error) {
	return nil, nil
}

type fakeLocker struct {
	acquire  bool
	unlocked bool
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return f.acquire, "lock-value", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlocked = true
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			VideoCallBaseURL:        "https://meet.tabib.life",
			VideoTokenExpTimeInHour: 24,
			BookingLockTTLInSeconds: 10,
			DefaultCurrency:         "MAD",
		},
		JWT: config.JWT{Secret: "test-secret"},
	}
}

func newTestFixture() (*consultationUsecase, *memoryConsultationRepository, *memoryPrescriptionRepository, *fakeLocker) {
	consultationRepo := newMemoryConsultationRepository()
	prescriptionRepo := &memoryPrescriptionRepository{}
	locker := &fakeLocker{acquire: true}
	directory := &fakeDirectory{
		doctors:  map[int64]*models.Doctor{7: {ID: 7, FirstName: "Amina", LastName: "Benali"}},
		patients: map[int64]*models.Patient{3: {ID: 3, FirstName: "Youssef", LastName: "El Fassi"}},
	}
	usecase := NewConsultationUsecase(
		consultationRepo,
		prescriptionRepo,
		directory,
		&fakeGuard{available: true},
		locker,
		passthroughTxManager{},
		testInternalConfig(),
		zap.NewNop(),
	).(*consultationUsecase)
	return usecase, consultationRepo, prescriptionRepo, locker
}

func bookRequest() *requests.BookConsultationRequest {
	return &requests.BookConsultationRequest{
		DoctorID:    7,
		PatientID:   3,
		ScheduledAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Reason:      "follow-up",
		Price:       decimal.NewFromInt(200),
		TotalPrice:  decimal.NewFromInt(200),
	}
}

func TestBookConsultation(t *testing.T) {
	t.Run("Successful Booking Starts Pending With Prescription And Video Link", func(t *testing.T) {
		usecase, _, prescriptionRepo, locker := newTestFixture()

		booked, err := usecase.Book(context.Background(), bookRequest())
		require.NoError(t, err)
		assert.Equal(t, string(models.ConsultationPending), booked.State)
		assert.Contains(t, booked.VideoCallLink, "teleconsult-")
		assert.Contains(t, booked.VideoCallLink, "token=")
		assert.Len(t, prescriptionRepo.prescriptions, 1, "booking creates a blank prescription")
		assert.Empty(t, prescriptionRepo.prescriptions[0].Content)
		assert.True(t, locker.unlocked, "booking lock is released")
	})

	t.Run("Unknown Doctor Is Rejected", func(t *testing.T) {
		usecase, _, _, _ := newTestFixture()
		request := bookRequest()
		request.DoctorID = 99

		_, err := usecase.Book(context.Background(), request)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Unknown Patient Is Rejected", func(t *testing.T) {
		usecase, _, _, _ := newTestFixture()
		request := bookRequest()
		request.PatientID = 99

		_, err := usecase.Book(context.Background(), request)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("Occupied Window Is Rejected As Conflict", func(t *testing.T) {
		usecase, repo, _, _ := newTestFixture()
		usecase.SchedulingGuard = &fakeGuard{available: false}

		_, err := usecase.Book(context.Background(), bookRequest())
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
		assert.Empty(t, repo.consultations, "nothing is stored on conflict")
	})

	t.Run("Lock Contention Is Rejected As Conflict", func(t *testing.T) {
		usecase, repo, _, _ := newTestFixture()
		usecase.LockerService = &fakeLocker{acquire: false}

		_, err := usecase.Book(context.Background(), bookRequest())
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
		assert.Empty(t, repo.consultations)
	})
}

func TestTransitionConsultation(t *testing.T) {
	seed := func(repo *memoryConsultationRepository, state models.ConsultationState) int64 {
		created, _ := repo.CreateConsultation(context.Background(), &models.Consultation{
			DoctorID:    7,
			PatientID:   3,
			ScheduledAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			State:       state,
		})
		return created.ID
	}

	t.Run("Pending To Accepted Succeeds", func(t *testing.T) {
		usecase, repo, _, _ := newTestFixture()
		id := seed(repo, models.ConsultationPending)

		updated, err := usecase.Transition(context.Background(), id, models.ConsultationAccepted)
		require.NoError(t, err)
		assert.Equal(t, models.ConsultationAccepted, updated.State)
	})

	t.Run("Accepted To Completed Succeeds", func(t *testing.T) {
		usecase, repo, _, _ := newTestFixture()
		id := seed(repo, models.ConsultationAccepted)

		updated, err := usecase.Transition(context.Background(), id, models.ConsultationCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.ConsultationCompleted, updated.State)
	})

	t.Run("Completed Is Terminal", func(t *testing.T) {
		usecase, repo, _, _ := newTestFixture()
		id := seed(repo, models.ConsultationCompleted)

		_, err := usecase.Transition(context.Background(), id, models.ConsultationCancelled)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidTransition))
	})

	t.Run("Pending Cannot Jump To Completed", func(t *testing.T) {
		usecase, repo, _, _ := newTestFixture()
		id := seed(repo, models.ConsultationPending)

		_, err := usecase.Transition(context.Background(), id, models.ConsultationCompleted)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidTransition))
	})

	t.Run("Unknown State Is A Validation Error", func(t *testing.T) {
		usecase, repo, _, _ := newTestFixture()
		id := seed(repo, models.ConsultationPending)

		_, err := usecase.Transition(context.Background(), id, models.ConsultationState("ARCHIVED"))
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("Missing Consultation Is Not Found", func(t *testing.T) {
		usecase, _, _, _ := newTestFixture()

		_, err := usecase.Transition(context.Background(), 404, models.ConsultationAccepted)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}
