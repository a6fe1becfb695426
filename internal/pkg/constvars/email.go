package constvars

const (
	EmailPaymentConfirmationSubject = "Payment Confirmation - Tabib.life"
	EmailRefundConfirmationSubject  = "Refund Confirmation - Tabib.life"

	EmailSendBasicEmailFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"
)
