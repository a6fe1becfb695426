package models

// Doctor and Patient are directory records owned by the external directory
// service. The core only reads them to validate foreign references.
type Doctor struct {
	ID        int64  `json:"id" bson:"id"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
	Specialty string `json:"specialty" bson:"specialty"`
}

type Patient struct {
	ID          int64  `json:"id" bson:"id"`
	FirstName   string `json:"first_name" bson:"first_name"`
	LastName    string `json:"last_name" bson:"last_name"`
	Email       string `json:"email" bson:"email"`
	PhoneNumber string `json:"phone_number" bson:"phone_number"`
}
