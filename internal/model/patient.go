package model

import "time"

// Patient represents a registered patient in the database.
// Email is the patient's identity for authorization checks.
type Patient struct {
	ID             int64     `json:"patient_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Gender         *string   `json:"gender"`
	DateOfBirth    *Date     `json:"date_of_birth"`
	Phone          *string   `json:"phone"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Address        *string   `json:"address"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
	Active         bool      `json:"active"`
}

// FullName joins first and last name.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// CreatePatientRequest represents a patient registration request.
type CreatePatientRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Gender      *string `json:"gender"`
	DateOfBirth *Date   `json:"date_of_birth"`
	Phone       *string `json:"phone" validate:"omitempty,min=10,max=15"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password"`
	Address     *string `json:"address"`
}

// PatientCreateResponse is returned after a successful registration.
type PatientCreateResponse struct {
	PatientID int64  `json:"patient_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LoginRequest represents a patient login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the authenticated patient.
type LoginResponse struct {
	Token          string  `json:"token"`
	TokenType      string  `json:"token_type"`
	PatientDetails Patient `json:"patient_details"`
}
