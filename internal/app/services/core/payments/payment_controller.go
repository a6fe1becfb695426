package payments

import (
	"context"
	"net/http"
	"strconv"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/exceptions"
	"tabib-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

type PaymentController struct {
	Log           *zap.Logger
	PaymentLedger contracts.PaymentLedger
	RefundLedger  contracts.RefundLedger
}

func NewPaymentController(
	logger *zap.Logger,
	paymentLedger contracts.PaymentLedger,
	refundLedger contracts.RefundLedger,
) *PaymentController {
	return &PaymentController{
		Log:           logger,
		PaymentLedger: paymentLedger,
		RefundLedger:  refundLedger,
	}
}

func (ctrl *PaymentController) CreateCardIntent(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CardPaymentIntentRequest)
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

	result, err := ctrl.PaymentLedger.CreateCardIntent(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateCardIntentSuccessMessage, result)
}

func (ctrl *PaymentController) ConfirmCardPayment(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ConfirmCardPaymentRequest)
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

	result, err := ctrl.PaymentLedger.ConfirmCardPayment(ctx, request.PaymentIntentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmCardPaymentSuccessMessage, result)
}

func (ctrl *PaymentController) ProcessMobileMoney(w http.ResponseWriter, r *http.Request) {
	request := new(requests.MobileMoneyPaymentRequest)
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

	result, err := ctrl.PaymentLedger.ProcessMobileMoney(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProcessPaymentSuccessMessage, result)
}

func (ctrl *PaymentController) ProcessPayPal(w http.ResponseWriter, r *http.Request) {
	request := new(requests.PayPalPaymentRequest)
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

	result, err := ctrl.PaymentLedger.ProcessPayPal(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProcessPaymentSuccessMessage, result)
}

func (ctrl *PaymentController) RefundPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, constvars.URLParamPaymentID)
	if paymentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamPaymentID))
		return
	}

	request := new(requests.RefundPaymentRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	request.PaymentID = paymentID

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.RefundLedger.Refund(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RefundPaymentSuccessMessage, result)
}

func (ctrl *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, constvars.URLParamPaymentID)
	if paymentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamPaymentID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payment, err := ctrl.PaymentLedger.GetByPaymentID(ctx, paymentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentsSuccessMessage, payment)
}

func (ctrl *PaymentController) GetPaymentsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := parsePaymentInt64URLParam(r, constvars.URLParamPatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payments, err := ctrl.PaymentLedger.ListByPatient(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentsSuccessMessage, payments)
}

func (ctrl *PaymentController) GetPaymentsByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := parsePaymentInt64URLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payments, err := ctrl.PaymentLedger.ListByDoctor(ctx, doctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentsSuccessMessage, payments)
}

func (ctrl *PaymentController) GetPaymentsByConsultation(w http.ResponseWriter, r *http.Request) {
	consultationID, err := parsePaymentInt64URLParam(r, constvars.URLParamConsultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payments, err := ctrl.PaymentLedger.ListByConsultation(ctx, consultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentsSuccessMessage, payments)
}

func (ctrl *PaymentController) GetPaymentStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	statistics, err := ctrl.PaymentLedger.MonthlyStatistics(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPaymentStatisticsSuccessMessage, statistics)
}

func parsePaymentInt64URLParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, exceptions.ErrURLParamValidation(err, name)
	}
	return value, nil
}
