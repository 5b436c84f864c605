package dto

import "time"

// Request DTOs

// UpsertPatientRequest is the body for both create and update.
// Age is a pointer so that an explicit 0 passes "required" while a
// missing field fails it. No range or format rules beyond presence.
type UpsertPatientRequest struct {
	Age     *int   `json:"age" validate:"required"`
	Gender  string `json:"gender" validate:"required"`
	Address string `json:"address" validate:"required"`
	PhoneNo string `json:"phone_no" validate:"required"`
}

// Response DTOs

// PatientResponse represents a patient record with its owning user embedded
type PatientResponse struct {
	ID        uint          `json:"id"`
	Age       int           `json:"age"`
	Gender    string        `json:"gender"`
	Address   string        `json:"address"`
	PhoneNo   string        `json:"phone_no"`
	UserID    uint          `json:"user_id"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
