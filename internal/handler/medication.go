package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/medtrack/medication-interaction-api/internal/payload"
	"github.com/medtrack/medication-interaction-api/internal/usecase"
	"github.com/medtrack/medication-interaction-api/internal/validation"
)

// Upper bound on items per bulk create request.
const maxBulkMedications = 10

// MedicationHandler serves the medication routes.
type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
	validator         *validation.Validator
	logger            *zerolog.Logger
}

// NewMedicationHandler creates a new MedicationHandler instance.
func NewMedicationHandler(
	medicationUsecase usecase.MedicationUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase: medicationUsecase,
		validator:         validator,
		logger:            logger,
	}
}

// Create handles POST /medication.
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	medication, err := h.medicationUsecase.CreateMedication(r.Context(), usecase.MedicationParams{
		Name:         req.Name,
		Interactions: req.Interactions,
		Source:       req.Source,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create medication")
		respondMessage(w, http.StatusInternalServerError, "Error creating medication")
		return
	}

	respondJSON(w, http.StatusCreated, payload.CreateMedicationResponse{
		Message: "Medication created successfully",
		ID:      medication.ID.Hex(),
		Name:    medication.Name,
	})
}

// CreateBulk handles POST /medications.
func (h *MedicationHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var reqs []payload.CreateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be an array of medications")
		return
	}

	if len(reqs) > maxBulkMedications {
		respondMessage(w, http.StatusTooManyRequests, "Maximum number of medications exceeded (max 10)")
		return
	}

	params := make([]usecase.MedicationParams, 0, len(reqs))
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if err := h.validator.Struct(req); err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		params = append(params, usecase.MedicationParams{
			Name:         req.Name,
			Interactions: req.Interactions,
			Source:       req.Source,
		})
		names = append(names, req.Name)
	}

	ids, err := h.medicationUsecase.CreateMedications(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create medications")
		respondMessage(w, http.StatusInternalServerError, "Error creating medications")
		return
	}

	respondJSON(w, http.StatusCreated, payload.CreateMedicationsResponse{
		Message: "Medications created successfully",
		Count:   len(ids),
		IDs:     ids,
		Names:   names,
	})
}

// Count handles GET /medication/count. The response is plain text, not JSON.
func (h *MedicationHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.medicationUsecase.CountMedications(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count medications")
		respondMessage(w, http.StatusInternalServerError, "Error counting medications")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Total number of medications: %d", count)
}

// Search handles GET /medication/search/{name}.
func (h *MedicationHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	medication, err := h.medicationUsecase.SearchMedication(r.Context(), name)
	if err != nil {
		if errors.Is(err, usecase.ErrMedicationNotFound) {
			respondMessage(w, http.StatusNotFound, "Medication name not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to search medication")
		respondMessage(w, http.StatusInternalServerError, "Error searching medication")
		return
	}

	respondJSON(w, http.StatusOK, medication)
}

// Delete handles DELETE /medication/{id}.
func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.medicationUsecase.DeleteMedication(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrMedicationNotFound) {
			respondMessage(w, http.StatusNotFound, "Medication not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete medication")
		respondMessage(w, http.StatusInternalServerError, "Error deleting medication")
		return
	}

	respondMessage(w, http.StatusOK, "Medication deleted successfully")
}
