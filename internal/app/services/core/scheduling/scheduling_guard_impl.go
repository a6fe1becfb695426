package scheduling

import (
	"context"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

type schedulingGuard struct {
	ConsultationRepository contracts.ConsultationRepository
	Log                    *zap.Logger
}

func NewSchedulingGuard(consultationRepository contracts.ConsultationRepository, logger *zap.Logger) contracts.SchedulingGuard {
	return &schedulingGuard{
		ConsultationRepository: consultationRepository,
		Log:                    logger,
	}
}

func (s *schedulingGuard) IsAvailable(ctx context.Context, doctorID int64, requestedStart time.Time) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	// Any consultation whose window can cover requestedStart starts within
	// this fetch range; exact membership is checked per row.
	from := requestedStart.Add(-ConflictWindowAfter)
	to := requestedStart.Add(ConflictWindowAfter)
	consultations, err := s.ConsultationRepository.FindByDoctorBetween(ctx, doctorID, from, to)
	if err != nil {
		s.Log.Error("schedulingGuard.IsAvailable error fetching consultations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return false, err
	}

	for i := range consultations {
		if consultations[i].State == models.ConsultationCancelled {
			continue
		}
		if InConflictWindow(consultations[i].ScheduledAt, requestedStart) {
			s.Log.Info("schedulingGuard.IsAvailable found conflicting consultation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingDoctorIDKey, doctorID),
				zap.Int64(constvars.LoggingConsultationIDKey, consultations[i].ID),
			)
			return false, nil
		}
	}
	return true, nil
}

func (s *schedulingGuard) AvailableSlots(ctx context.Context, doctorID int64, date time.Time) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	consultations, err := s.ConsultationRepository.FindByDoctorBetween(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		s.Log.Error("schedulingGuard.AvailableSlots error fetching consultations",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	booked := make([]time.Time, 0, len(consultations))
	for i := range consultations {
		if consultations[i].State == models.ConsultationCancelled {
			continue
		}
		booked = append(booked, consultations[i].ScheduledAt)
	}

	free := make([]string, 0)
	for _, slot := range DailySlots(date) {
		blocked := false
		for _, existing := range booked {
			if InConflictWindow(existing, slot) {
				blocked = true
				break
			}
		}
		if !blocked {
			free = append(free, FormatSlot(slot))
		}
	}
	return free, nil
}
