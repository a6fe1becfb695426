package routers

import (
	"tabib-service/internal/app/delivery/http/middlewares"
	"tabib-service/internal/app/services/core/consultations"

	"github.com/go-chi/chi/v5"
)

func attachConsultationRoutes(router chi.Router, middlewares *middlewares.Middlewares, consultationController *consultations.ConsultationController) {
	router.Post("/", consultationController.BookConsultation)
	router.Patch("/{consultationID}/state", consultationController.TransitionConsultation)
	router.Get("/doctor/{doctorID}", consultationController.GetConsultationsByDoctor)
	router.Get("/doctor/{doctorID}/pending", consultationController.GetPendingConsultations)
	router.Get("/doctor/{doctorID}/slots", consultationController.GetAvailableSlots)
	router.Get("/patient/{patientID}", consultationController.GetConsultationsByPatient)
}
