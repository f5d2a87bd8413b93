package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/medtrack/medication-interaction-api/internal/model"
	"github.com/medtrack/medication-interaction-api/internal/usecase"
	"github.com/medtrack/medication-interaction-api/internal/validation"
)

type stubMedicationUsecase struct {
	createFunc     func(ctx context.Context, params usecase.MedicationParams) (*model.Medication, error)
	createBulkFunc func(ctx context.Context, params []usecase.MedicationParams) (map[int]string, error)
	countFunc      func(ctx context.Context) (int64, error)
	searchFunc     func(ctx context.Context, name string) (*model.Medication, error)
	deleteFunc     func(ctx context.Context, id string) error
}

func (s *stubMedicationUsecase) CreateMedication(
	ctx context.Context,
	params usecase.MedicationParams,
) (*model.Medication, error) {
	return s.createFunc(ctx, params)
}

func (s *stubMedicationUsecase) CreateMedications(
	ctx context.Context,
	params []usecase.MedicationParams,
) (map[int]string, error) {
	return s.createBulkFunc(ctx, params)
}

func (s *stubMedicationUsecase) CountMedications(ctx context.Context) (int64, error) {
	return s.countFunc(ctx)
}

func (s *stubMedicationUsecase) SearchMedication(ctx context.Context, name string) (*model.Medication, error) {
	return s.searchFunc(ctx, name)
}

func (s *stubMedicationUsecase) DeleteMedication(ctx context.Context, id string) error {
	return s.deleteFunc(ctx, id)
}

func newMedicationRouter(t *testing.T, u usecase.MedicationUsecase) *chi.Mux {
	t.Helper()

	validator, err := validation.New()
	require.NoError(t, err)

	logger := zerolog.Nop()
	h := NewMedicationHandler(u, validator, &logger)

	router := chi.NewRouter()
	router.Post("/medication", h.Create)
	router.Post("/medications", h.CreateBulk)
	router.Get("/medication/count", h.Count)
	router.Get("/medication/search/{name}", h.Search)
	router.Delete("/medication/{id}", h.Delete)

	return router
}

func TestCreateMedication_Success(t *testing.T) {
	t.Parallel()

	medicationID := bson.NewObjectID()
	router := newMedicationRouter(t, &stubMedicationUsecase{
		createFunc: func(_ context.Context, params usecase.MedicationParams) (*model.Medication, error) {
			require.Equal(t, "Aspirin", params.Name)
			return &model.Medication{ID: medicationID, Name: params.Name, Source: "manual"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/medication",
		strings.NewReader(`{"name":"Aspirin","interactions":[]}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string `json:"message"`
		ID      string `json:"id"`
		Name    string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Medication created successfully", body.Message)
	require.Equal(t, medicationID.Hex(), body.ID)
	require.Equal(t, "Aspirin", body.Name)
}

func TestCreateMedication_MissingName(t *testing.T) {
	t.Parallel()

	router := newMedicationRouter(t, &stubMedicationUsecase{
		createFunc: func(_ context.Context, _ usecase.MedicationParams) (*model.Medication, error) {
			t.Fatal("usecase must not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/medication",
		strings.NewReader(`{"interactions":[]}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMedications_Success(t *testing.T) {
	t.Parallel()

	ids := map[int]string{}
	for i := 0; i < 10; i++ {
		ids[i] = bson.NewObjectID().Hex()
	}

	router := newMedicationRouter(t, &stubMedicationUsecase{
		createBulkFunc: func(_ context.Context, params []usecase.MedicationParams) (map[int]string, error) {
			require.Len(t, params, 10)
			return ids, nil
		},
	})

	items := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, fmt.Sprintf(`{"name":"med-%d"}`, i))
	}
	body := "[" + strings.Join(items, ",") + "]"

	req := httptest.NewRequest(http.MethodPost, "/medications", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string            `json:"message"`
		Count   int               `json:"count"`
		IDs     map[string]string `json:"ids"`
		Names   []string          `json:"names"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Medications created successfully", resp.Message)
	require.Equal(t, 10, resp.Count)
	require.Len(t, resp.IDs, 10)
	require.Equal(t, ids[0], resp.IDs["0"])
	require.Equal(t, "med-0", resp.Names[0])
}

func TestCreateMedications_TooMany(t *testing.T) {
	t.Parallel()

	router := newMedicationRouter(t, &stubMedicationUsecase{
		createBulkFunc: func(_ context.Context, _ []usecase.MedicationParams) (map[int]string, error) {
			t.Fatal("usecase must not be called")
			return nil, nil
		},
	})

	items := make([]string, 0, 11)
	for i := 0; i < 11; i++ {
		items = append(items, fmt.Sprintf(`{"name":"med-%d"}`, i))
	}
	body := "[" + strings.Join(items, ",") + "]"

	req := httptest.NewRequest(http.MethodPost, "/medications", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "Maximum number of medications exceeded (max 10)")
}

func TestCreateMedications_NotAnArray(t *testing.T) {
	t.Parallel()

	router := newMedicationRouter(t, &stubMedicationUsecase{
		createBulkFunc: func(_ context.Context, _ []usecase.MedicationParams) (map[int]string, error) {
			t.Fatal("usecase must not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/medications",
		strings.NewReader(`{"name":"Aspirin"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Request body must be an array of medications")
}

func TestCountMedications_PlainText(t *testing.T) {
	t.Parallel()

	router := newMedicationRouter(t, &stubMedicationUsecase{
		countFunc: func(_ context.Context) (int64, error) {
			return 7, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/medication/count", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	require.Equal(t, "Total number of medications: 7", rec.Body.String())
}

func TestSearchMedication_Found(t *testing.T) {
	t.Parallel()

	router := newMedicationRouter(t, &stubMedicationUsecase{
		searchFunc: func(_ context.Context, name string) (*model.Medication, error) {
			require.Equal(t, "Aspirin", name)
			return &model.Medication{Name: "Aspirin", Source: "manual"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/medication/search/Aspirin", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name   string `json:"name"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Aspirin", body.Name)
	require.Equal(t, "manual", body.Source)
}

func TestSearchMedication_NotFound(t *testing.T) {
	t.Parallel()

	router := newMedicationRouter(t, &stubMedicationUsecase{
		searchFunc: func(_ context.Context, _ string) (*model.Medication, error) {
			return nil, usecase.ErrMedicationNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/medication/search/Nothing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Medication name not found")
}

func TestDeleteMedication_Success(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID().Hex()
	router := newMedicationRouter(t, &stubMedicationUsecase{
		deleteFunc: func(_ context.Context, gotID string) error {
			require.Equal(t, id, gotID)
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/medication/"+id, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Medication deleted successfully")
}

func TestDeleteMedication_NotFound(t *testing.T) {
	t.Parallel()

	router := newMedicationRouter(t, &stubMedicationUsecase{
		deleteFunc: func(_ context.Context, _ string) error {
			return usecase.ErrMedicationNotFound
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/medication/"+bson.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Medication not found")
}
