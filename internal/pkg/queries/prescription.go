package queries

const prescriptionColumns = `id, consultation_id, doctor_id, patient_id, content, created_at`

const InsertPrescription = `
INSERT INTO prescriptions (consultation_id, doctor_id, patient_id, content)
VALUES ($1, $2, $3, $4)
RETURNING ` + prescriptionColumns

const GetPrescriptionByConsultationID = `
SELECT ` + prescriptionColumns + `
FROM prescriptions
WHERE consultation_id = $1`
