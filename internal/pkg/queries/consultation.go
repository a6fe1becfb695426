package queries

const consultationColumns = `id, doctor_id, patient_id, scheduled_at, state, reason, consultation_type, price, total_price, video_call_link, created_at`

const InsertConsultation = `
INSERT INTO consultations (doctor_id, patient_id, scheduled_at, state, reason, consultation_type, price, total_price, video_call_link)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + consultationColumns

const GetConsultationByID = `
SELECT ` + consultationColumns + `
FROM consultations
WHERE id = $1`

const GetConsultationsByDoctorID = `
SELECT ` + consultationColumns + `
FROM consultations
WHERE doctor_id = $1
ORDER BY scheduled_at`

const GetConsultationsByPatientID = `
SELECT ` + consultationColumns + `
FROM consultations
WHERE patient_id = $1
ORDER BY scheduled_at`

const GetPendingConsultationsByDoctorID = `
SELECT ` + consultationColumns + `
FROM consultations
WHERE doctor_id = $1 AND state = 'PENDING'
ORDER BY scheduled_at`

const GetConsultationsByDoctorBetween = `
SELECT ` + consultationColumns + `
FROM consultations
WHERE doctor_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
ORDER BY scheduled_at`

const UpdateConsultationState = `
UPDATE consultations
SET state = $2
WHERE id = $1
RETURNING ` + consultationColumns
