package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/medtrack/medication-interaction-api/internal/model"
	"github.com/medtrack/medication-interaction-api/internal/repository"
)

// MedicationUsecase defines the interface for medication-related use cases.
type MedicationUsecase interface {
	CreateMedication(ctx context.Context, params MedicationParams) (*model.Medication, error)
	CreateMedications(ctx context.Context, params []MedicationParams) (map[int]string, error)
	CountMedications(ctx context.Context) (int64, error)
	SearchMedication(ctx context.Context, name string) (*model.Medication, error)
	DeleteMedication(ctx context.Context, id string) error
}

// MedicationParams defines the parameters for creating a medication.
type MedicationParams struct {
	Name         string
	Interactions any
	Source       string
}

var ErrMedicationNotFound = errors.New("medication not found")

// Source recorded when the caller does not supply one.
const defaultSource = "manual"

type medicationUsecase struct {
	medicationRepo repository.MedicationRepository
}

// NewMedicationUsecase creates a new instance of MedicationUsecase.
func NewMedicationUsecase(medicationRepo repository.MedicationRepository) MedicationUsecase {
	return &medicationUsecase{medicationRepo: medicationRepo}
}

func (u *medicationUsecase) CreateMedication(
	ctx context.Context,
	params MedicationParams,
) (*model.Medication, error) {
	return u.medicationRepo.CreateMedication(ctx, newMedication(params))
}

// CreateMedications inserts the batch in order and returns a mapping from
// batch position to the generated identifier.
func (u *medicationUsecase) CreateMedications(
	ctx context.Context,
	params []MedicationParams,
) (map[int]string, error) {
	medications := make([]*model.Medication, 0, len(params))
	for _, p := range params {
		medications = append(medications, newMedication(p))
	}

	objectIDs, err := u.medicationRepo.CreateMedications(ctx, medications)
	if err != nil {
		return nil, err
	}

	ids := make(map[int]string, len(objectIDs))
	for position, objectID := range objectIDs {
		ids[position] = objectID.Hex()
	}

	return ids, nil
}

func (u *medicationUsecase) CountMedications(ctx context.Context) (int64, error) {
	return u.medicationRepo.CountMedications(ctx)
}

func (u *medicationUsecase) SearchMedication(
	ctx context.Context,
	name string,
) (*model.Medication, error) {
	medication, err := u.medicationRepo.GetMedicationByName(ctx, name)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMedicationNotFound
		}

		return nil, err
	}

	return medication, nil
}

// DeleteMedication deletes by id and reports ErrMedicationNotFound when
// nothing was deleted. An unparseable id cannot name a stored document and
// maps to the same error.
func (u *medicationUsecase) DeleteMedication(ctx context.Context, id string) error {
	deleted, err := u.medicationRepo.DeleteMedication(ctx, id)
	if err != nil {
		if errors.Is(err, bson.ErrInvalidHex) {
			return ErrMedicationNotFound
		}

		return err
	}

	if deleted == 0 {
		return ErrMedicationNotFound
	}

	return nil
}

func newMedication(params MedicationParams) *model.Medication {
	source := params.Source
	if source == "" {
		source = defaultSource
	}

	return &model.Medication{
		Name:         params.Name,
		Interactions: params.Interactions,
		Source:       source,
	}
}
