package consultations

import (
	"context"
	"net/http"
	"strconv"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
	"tabib-service/internal/pkg/exceptions"
	"tabib-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

type ConsultationController struct {
	Log                 *zap.Logger
	ConsultationUsecase contracts.ConsultationLifecycle
	SchedulingGuard     contracts.SchedulingGuard
}

func NewConsultationController(
	logger *zap.Logger,
	consultationUsecase contracts.ConsultationLifecycle,
	schedulingGuard contracts.SchedulingGuard,
) *ConsultationController {
	return &ConsultationController{
		Log:                 logger,
		ConsultationUsecase: consultationUsecase,
		SchedulingGuard:     schedulingGuard,
	}
}

func (ctrl *ConsultationController) BookConsultation(w http.ResponseWriter, r *http.Request) {
	request := new(requests.BookConsultationRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	consultation, err := ctrl.ConsultationUsecase.Book(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookConsultationSuccessMessage, consultation)
}

func (ctrl *ConsultationController) TransitionConsultation(w http.ResponseWriter, r *http.Request) {
	consultationID, err := parseInt64URLParam(r, constvars.URLParamConsultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.TransitionConsultationRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	consultation, err := ctrl.ConsultationUsecase.Transition(ctx, consultationID, models.ConsultationState(request.State))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TransitionConsultationSuccessMessage, responses.NewConsultationResponse(consultation))
}

func (ctrl *ConsultationController) GetConsultationsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := parseInt64URLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	consultations, err := ctrl.ConsultationUsecase.ListByDoctor(ctx, doctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsultationsSuccessMessage, consultations)
}

func (ctrl *ConsultationController) GetConsultationsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseInt64URLParam(r, constvars.URLParamPatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	consultations, err := ctrl.ConsultationUsecase.ListByPatient(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsultationsSuccessMessage, consultations)
}

func (ctrl *ConsultationController) GetPendingConsultations(w http.ResponseWriter, r *http.Request) {
	doctorID, err := parseInt64URLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	consultations, err := ctrl.ConsultationUsecase.ListPending(ctx, doctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsultationsSuccessMessage, consultations)
}

func (ctrl *ConsultationController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := parseInt64URLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	rawDate := r.URL.Query().Get(constvars.QueryParamDate)
	date, parseErr := time.Parse(constvars.DateOnlyFormat, rawDate)
	if parseErr != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseDate(parseErr))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	slots, err := ctrl.SchedulingGuard.AvailableSlots(ctx, doctorID, date)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailableSlotsSuccessMessage, &responses.AvailableSlotsResponse{
		DoctorID: doctorID,
		Date:     rawDate,
		Slots:    slots,
	})
}

func parseInt64URLParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, exceptions.ErrURLParamValidation(err, name)
	}
	return value, nil
}
