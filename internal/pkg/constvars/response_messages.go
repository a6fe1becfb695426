package constvars

const (
	BookConsultationSuccessMessage       = "Successfully booked consultation"
	TransitionConsultationSuccessMessage = "Successfully updated consultation state"
	GetConsultationsSuccessMessage       = "Successfully retrieved consultations"
	GetAvailableSlotsSuccessMessage      = "Successfully retrieved available slots"

	CreateCardIntentSuccessMessage     = "Successfully created card payment intent"
	ConfirmCardPaymentSuccessMessage   = "Successfully confirmed card payment"
	ProcessPaymentSuccessMessage       = "Successfully processed payment"
	RefundPaymentSuccessMessage        = "Successfully processed refund"
	GetPaymentsSuccessMessage          = "Successfully retrieved payments"
	GetPaymentStatisticsSuccessMessage = "Successfully retrieved payment statistics"
)
