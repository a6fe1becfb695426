package routers

import (
	"tabib-service/internal/app/delivery/http/middlewares"
	"tabib-service/internal/app/services/core/payments"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *payments.PaymentController) {
	router.With(middlewares.PaymentLimiter.Limit).Post("/card/intent", paymentController.CreateCardIntent)
	router.With(middlewares.PaymentLimiter.Limit).Post("/card/confirm", paymentController.ConfirmCardPayment)
	router.With(middlewares.PaymentLimiter.Limit).Post("/mobile-money", paymentController.ProcessMobileMoney)
	router.With(middlewares.PaymentLimiter.Limit).Post("/paypal", paymentController.ProcessPayPal)
	router.With(middlewares.PaymentLimiter.Limit).Post("/{paymentID}/refund", paymentController.RefundPayment)
	router.Get("/statistics", paymentController.GetPaymentStatistics)
	router.Get("/{paymentID}", paymentController.GetPayment)
	router.Get("/patient/{patientID}", paymentController.GetPaymentsByPatient)
	router.Get("/doctor/{doctorID}", paymentController.GetPaymentsByDoctor)
	router.Get("/consultation/{consultationID}", paymentController.GetPaymentsByConsultation)
}
