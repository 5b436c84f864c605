package handler

import (
	"errors"
	"net/http"
	"strconv"

	"patient-records-api/internal/delivery/dto"
	"patient-records-api/internal/delivery/http/middleware"
	"patient-records-api/internal/usecase"
	"patient-records-api/pkg/response"
	"patient-records-api/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// parsePatientID reads the {id} path variable. An id that is not a
// positive integer can never resolve to a record, so callers treat a
// false return the same as a missing patient.
func parsePatientID(r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.JSON(w, http.StatusOK, patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parsePatientID(r)
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.JSON(w, http.StatusOK, patient)
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertPatientRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	// The owner is always the authenticated caller; a user_id in the
	// body is ignored by the request shape.
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if _, err := h.patientUsecase.CreatePatient(r.Context(), userID, &req); err != nil {
		response.InternalServerError(w, "Failed to create patient")
		return
	}

	response.Message(w, http.StatusCreated, "Patient created successfully")
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parsePatientID(r)
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	// Existence is checked before body validation: a malformed body
	// against a missing id yields 404, not 400.
	if _, err := h.patientUsecase.GetPatient(r.Context(), patientID); err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to update patient")
		return
	}

	var req dto.UpsertPatientRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if _, err := h.patientUsecase.UpdatePatient(r.Context(), patientID, &req); err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to update patient")
		return
	}

	response.Message(w, http.StatusOK, "Patient updated successfully")
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := parsePatientID(r)
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), patientID); err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to delete patient")
		return
	}

	response.Message(w, http.StatusOK, "Patient deleted successfully")
}
