package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/delivery/http/middleware"
	"patient-records-api/internal/usecase"
	"patient-records-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePatientUsecase is an in-memory PatientUsecase. Ids are never reused
// after delete, matching the serial-key behavior of the real store.
type fakePatientUsecase struct {
	patients map[uint]*dto.PatientResponse
	nextID   uint
}

var _ usecase.PatientUsecase = (*fakePatientUsecase)(nil)

func newFakePatientUsecase() *fakePatientUsecase {
	return &fakePatientUsecase{
		patients: make(map[uint]*dto.PatientResponse),
		nextID:   1,
	}
}

func (f *fakePatientUsecase) ListPatients(ctx context.Context) ([]dto.PatientResponse, error) {
	ids := make([]int, 0, len(f.patients))
	for id := range f.patients {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	out := make([]dto.PatientResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.patients[uint(id)])
	}
	return out, nil
}

func (f *fakePatientUsecase) GetPatient(ctx context.Context, id uint) (*dto.PatientResponse, error) {
	patient, ok := f.patients[id]
	if !ok {
		return nil, usecase.ErrPatientNotFound
	}
	return patient, nil
}

func (f *fakePatientUsecase) CreatePatient(ctx context.Context, userID uint, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	patient := &dto.PatientResponse{
		ID:      f.nextID,
		Age:     *req.Age,
		Gender:  req.Gender,
		Address: req.Address,
		PhoneNo: req.PhoneNo,
		UserID:  userID,
	}
	f.patients[f.nextID] = patient
	f.nextID++
	return patient, nil
}

func (f *fakePatientUsecase) UpdatePatient(ctx context.Context, id uint, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	patient, ok := f.patients[id]
	if !ok {
		return nil, usecase.ErrPatientNotFound
	}
	patient.Age = *req.Age
	patient.Gender = req.Gender
	patient.Address = req.Address
	patient.PhoneNo = req.PhoneNo
	return patient, nil
}

func (f *fakePatientUsecase) DeletePatient(ctx context.Context, id uint) error {
	if _, ok := f.patients[id]; !ok {
		return usecase.ErrPatientNotFound
	}
	delete(f.patients, id)
	return nil
}

// newPatientRouter wires the handler behind a router that injects the
// given user id into the request context, standing in for the auth
// middleware.
func newPatientRouter(u usecase.PatientUsecase, userID uint) *mux.Router {
	h := NewPatientHandler(u, validator.NewValidator())

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.HandleFunc("/api/patients", h.ListPatients).Methods(http.MethodGet)
	r.HandleFunc("/api/patients", h.CreatePatient).Methods(http.MethodPost)
	r.HandleFunc("/api/patients/{id}", h.GetPatient).Methods(http.MethodGet)
	r.HandleFunc("/api/patients/{id}", h.UpdatePatient).Methods(http.MethodPut)
	r.HandleFunc("/api/patients/{id}", h.DeletePatient).Methods(http.MethodDelete)
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePatient_OwnerComesFromToken(t *testing.T) {
	fake := newFakePatientUsecase()
	router := newPatientRouter(fake, 7)

	// user_id in the body must be ignored
	body := `{"age":30,"gender":"male","address":"123 Main St","phone_no":"1234567890","user_id":999}`
	rec := doJSON(t, router, http.MethodPost, "/api/patients", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Patient created successfully"}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/patients/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.PatientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, 30, got.Age)
	assert.Equal(t, "male", got.Gender)
	assert.Equal(t, "123 Main St", got.Address)
	assert.Equal(t, "1234567890", got.PhoneNo)
}

func TestCreatePatient_MissingAgeCreatesNothing(t *testing.T) {
	fake := newFakePatientUsecase()
	router := newPatientRouter(fake, 7)

	rec := doJSON(t, router, http.MethodPost, "/api/patients", `{"gender":"male","address":"123 Main St","phone_no":"1234567890"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "Age")

	assert.Empty(t, fake.patients, "no row should be created on validation failure")
}

func TestCreatePatient_ZeroAgeIsAccepted(t *testing.T) {
	router := newPatientRouter(newFakePatientUsecase(), 1)

	rec := doJSON(t, router, http.MethodPost, "/api/patients", `{"age":0,"gender":"female","address":"456 Elm St","phone_no":"0987654321"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreatePatient_MistypedAge(t *testing.T) {
	fake := newFakePatientUsecase()
	router := newPatientRouter(fake, 1)

	rec := doJSON(t, router, http.MethodPost, "/api/patients", `{"age":"thirty","gender":"male","address":"123 Main St","phone_no":"1234567890"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	// A wrong type on a known field enumerates the field like any
	// other validation failure
	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "age")

	assert.Empty(t, fake.patients)
}

func TestCreatePatient_MalformedBody(t *testing.T) {
	fake := newFakePatientUsecase()
	router := newPatientRouter(fake, 1)

	rec := doJSON(t, router, http.MethodPost, "/api/patients", `{"age":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
	assert.Empty(t, fake.patients)
}

func TestGetPatient_NotFound(t *testing.T) {
	router := newPatientRouter(newFakePatientUsecase(), 1)

	rec := doJSON(t, router, http.MethodGet, "/api/patients/999999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Patient not found"}`, rec.Body.String())
}

func TestGetPatient_NonNumericID(t *testing.T) {
	router := newPatientRouter(newFakePatientUsecase(), 1)

	rec := doJSON(t, router, http.MethodGet, "/api/patients/abc", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Patient not found"}`, rec.Body.String())
}

func TestUpdatePatient_ExistenceCheckedBeforeValidation(t *testing.T) {
	router := newPatientRouter(newFakePatientUsecase(), 1)

	// Valid body against a missing id: 404, never 400
	rec := doJSON(t, router, http.MethodPut, "/api/patients/42", `{"age":31,"gender":"female","address":"456 Elm St","phone_no":"0987654321"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Patient not found"}`, rec.Body.String())

	// Invalid body against a missing id: still 404
	rec = doJSON(t, router, http.MethodPut, "/api/patients/42", `{"age":`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Patient not found"}`, rec.Body.String())
}

func TestUpdatePatient_ValidationAfterExistence(t *testing.T) {
	fake := newFakePatientUsecase()
	router := newPatientRouter(fake, 7)

	doJSON(t, router, http.MethodPost, "/api/patients", `{"age":30,"gender":"male","address":"123 Main St","phone_no":"1234567890"}`)

	rec := doJSON(t, router, http.MethodPut, "/api/patients/1", `{"gender":"female"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The failed update must not partially apply
	assert.Equal(t, "male", fake.patients[1].Gender)
	assert.Equal(t, 30, fake.patients[1].Age)
}

func TestUpdatePatient_Success(t *testing.T) {
	fake := newFakePatientUsecase()
	router := newPatientRouter(fake, 7)

	doJSON(t, router, http.MethodPost, "/api/patients", `{"age":30,"gender":"male","address":"123 Main St","phone_no":"1234567890"}`)

	rec := doJSON(t, router, http.MethodPut, "/api/patients/1", `{"age":31,"gender":"female","address":"456 Elm St","phone_no":"0987654321"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Patient updated successfully"}`, rec.Body.String())

	updated := fake.patients[1]
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "female", updated.Gender)
	assert.Equal(t, "456 Elm St", updated.Address)
	assert.Equal(t, "0987654321", updated.PhoneNo)
	assert.Equal(t, uint(7), updated.UserID, "update must not touch the owner")
}

func TestDeletePatient_Twice(t *testing.T) {
	router := newPatientRouter(newFakePatientUsecase(), 7)

	doJSON(t, router, http.MethodPost, "/api/patients", `{"age":30,"gender":"male","address":"123 Main St","phone_no":"1234567890"}`)

	rec := doJSON(t, router, http.MethodDelete, "/api/patients/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Patient deleted successfully"}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodDelete, "/api/patients/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Patient not found"}`, rec.Body.String())
}

func TestListPatients_InsertionOrder(t *testing.T) {
	router := newPatientRouter(newFakePatientUsecase(), 7)

	doJSON(t, router, http.MethodPost, "/api/patients", `{"age":30,"gender":"male","address":"123 Main St","phone_no":"1234567890"}`)
	doJSON(t, router, http.MethodPost, "/api/patients", `{"age":45,"gender":"female","address":"456 Elm St","phone_no":"0987654321"}`)

	rec := doJSON(t, router, http.MethodGet, "/api/patients", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.PatientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)
}
