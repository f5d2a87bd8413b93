package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/medtrack/medication-interaction-api/internal/model"
)

// MedicationRepository defines the interface for medication-related database
// operations.
type MedicationRepository interface {
	CreateMedication(ctx context.Context, medication *model.Medication) (*model.Medication, error)
	CreateMedications(ctx context.Context, medications []*model.Medication) ([]bson.ObjectID, error)
	CountMedications(ctx context.Context) (int64, error)
	GetMedicationByName(ctx context.Context, name string) (*model.Medication, error)
	DeleteMedication(ctx context.Context, id string) (int64, error)
}

const medicationCollection = "medication"

type medicationMongoRepository struct {
	db *mongo.Database
}

// NewMedicationMongoRepository creates the medication repository. The name
// index backs the exact-name search; names are not unique.
func NewMedicationMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) MedicationRepository {
	collection := db.Collection(medicationCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create medication indexes")
	}

	return &medicationMongoRepository{db: db}
}

func (r *medicationMongoRepository) CreateMedication(
	ctx context.Context,
	medication *model.Medication,
) (*model.Medication, error) {
	now := time.Now()
	medication.CreatedAt = now
	medication.UpdatedAt = now

	result, err := r.db.Collection(medicationCollection).InsertOne(ctx, medication)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		medication.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return medication, nil
}

// CreateMedications inserts the batch in order and returns the generated IDs
// in batch order. Partial-failure behavior is whatever the store's ordered
// insert provides; no compensation is attempted.
func (r *medicationMongoRepository) CreateMedications(
	ctx context.Context,
	medications []*model.Medication,
) ([]bson.ObjectID, error) {
	now := time.Now()
	documents := make([]any, 0, len(medications))
	for _, medication := range medications {
		medication.CreatedAt = now
		medication.UpdatedAt = now
		documents = append(documents, medication)
	}

	result, err := r.db.Collection(medicationCollection).
		InsertMany(ctx, documents, options.InsertMany().SetOrdered(true))
	if err != nil {
		return nil, err
	}

	objectIDs := make([]bson.ObjectID, 0, len(result.InsertedIDs))
	for _, insertedID := range result.InsertedIDs {
		objectID, ok := insertedID.(bson.ObjectID)
		if !ok {
			return nil, errors.New("failed to convert inserted ID to ObjectID")
		}
		objectIDs = append(objectIDs, objectID)
	}

	return objectIDs, nil
}

func (r *medicationMongoRepository) CountMedications(ctx context.Context) (int64, error) {
	return r.db.Collection(medicationCollection).CountDocuments(ctx, bson.M{})
}

func (r *medicationMongoRepository) GetMedicationByName(
	ctx context.Context,
	name string,
) (*model.Medication, error) {
	result := r.db.Collection(medicationCollection).FindOne(ctx, bson.M{"name": name})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var medication model.Medication
	if err := result.Decode(&medication); err != nil {
		return nil, err
	}

	return &medication, nil
}

func (r *medicationMongoRepository) DeleteMedication(ctx context.Context, id string) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// Wrong-length ids fail with ErrInvalidHex but 24-character non-hex
		// ids fail with an encoding/hex error. Neither can name a stored
		// document, so collapse both into the one sentinel.
		return 0, bson.ErrInvalidHex
	}

	result, err := r.db.Collection(medicationCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
