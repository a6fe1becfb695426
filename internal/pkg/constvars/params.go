package constvars

const (
	URLParamConsultationID = "consultationID"
	URLParamDoctorID       = "doctorID"
	URLParamPatientID      = "patientID"
	URLParamPaymentID      = "paymentID"

	QueryParamDate = "date"
)

const (
	MongoCollectionDoctors  = "doctors"
	MongoCollectionPatients = "patients"
)
