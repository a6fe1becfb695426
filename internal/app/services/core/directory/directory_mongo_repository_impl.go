package directory

import (
	"context"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/app/models"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// directoryMongoRepository reads the doctor and patient collections the
// directory service maintains. This service never writes them.
type directoryMongoRepository struct {
	Doctors  *mongo.Collection
	Patients *mongo.Collection
}

func NewDirectoryMongoRepository(db *mongo.Client, dbName string) contracts.DirectoryLookup {
	return &directoryMongoRepository{
		Doctors:  db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
		Patients: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
	}
}

func (repo *directoryMongoRepository) GetDoctor(ctx context.Context, doctorID int64) (*models.Doctor, error) {
	var doctor models.Doctor
	err := repo.Doctors.FindOne(ctx, bson.M{"id": doctorID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (repo *directoryMongoRepository) GetPatient(ctx context.Context, patientID int64) (*models.Patient, error) {
	var patient models.Patient
	err := repo.Patients.FindOne(ctx, bson.M{"id": patientID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}
