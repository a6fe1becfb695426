package queries

const paymentColumns = `id, payment_id, consultation_id, patient_id, doctor_id, amount, currency, payment_method, status, transaction_id, customer_email, customer_name, phone_number, mobile_money_provider, paypal_order_id, refunded_amount, refund_status, refund_reason, error_message, created_at, updated_at, refunded_at, confirmation_sent, confirmation_sent_at`

const InsertPayment = `
INSERT INTO payments (payment_id, consultation_id, patient_id, doctor_id, amount, currency, payment_method, status, customer_email, customer_name, phone_number, mobile_money_provider, paypal_order_id, refunded_amount, refund_status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + paymentColumns

const GetPaymentByPaymentID = `
SELECT ` + paymentColumns + `
FROM payments
WHERE payment_id = $1`

const GetPendingPaymentByConsultationAndMethod = `
SELECT ` + paymentColumns + `
FROM payments
WHERE consultation_id = $1 AND payment_method = $2 AND status = 'PENDING'
ORDER BY created_at DESC
LIMIT 1`

const UpdatePayment = `
UPDATE payments
SET status = $2,
    transaction_id = $3,
    refunded_amount = $4,
    refund_status = $5,
    refund_reason = $6,
    error_message = $7,
    refunded_at = $8,
    updated_at = NOW()
WHERE payment_id = $1
RETURNING ` + paymentColumns

const MarkPaymentConfirmationSent = `
UPDATE payments
SET confirmation_sent = TRUE,
    confirmation_sent_at = $2,
    updated_at = NOW()
WHERE payment_id = $1`

const GetPaymentsByPatientID = `
SELECT ` + paymentColumns + `
FROM payments
WHERE patient_id = $1
ORDER BY created_at DESC`

const GetPaymentsByDoctorID = `
SELECT ` + paymentColumns + `
FROM payments
WHERE doctor_id = $1
ORDER BY created_at DESC`

const GetPaymentsByConsultationID = `
SELECT ` + paymentColumns + `
FROM payments
WHERE consultation_id = $1
ORDER BY created_at DESC`

const GetSucceededPaymentStatisticsSince = `
SELECT COUNT(*), COALESCE(SUM(amount), 0)
FROM payments
WHERE status = 'SUCCEEDED' AND created_at >= $1`
