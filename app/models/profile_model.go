package models

import "time"

// BasicInfo is written once at signup under user:<id>:basic.
type BasicInfo struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// ElderProfile lives under user:<id>:profile with Role "elder". Every field
// is optional except the role marker stamped at the store boundary.
type ElderProfile struct {
	Name          string    `json:"name,omitempty"`
	Age           string    `json:"age,omitempty"`
	BloodGroup    string    `json:"bloodGroup,omitempty"`
	Medications   string    `json:"medications,omitempty"`
	GuardianName  string    `json:"guardianName,omitempty"`
	GuardianEmail string    `json:"guardianEmail,omitempty"`
	Role          string    `json:"role,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SaveElderInfoRequest struct {
	Name          string `json:"name,omitempty" validate:"omitempty,lte=255"`
	Age           string `json:"age,omitempty" validate:"omitempty,lte=3"`
	BloodGroup    string `json:"bloodGroup,omitempty" validate:"omitempty,lte=3"`
	Medications   string `json:"medications,omitempty"`
	GuardianName  string `json:"guardianName,omitempty" validate:"omitempty,lte=255"`
	GuardianEmail string `json:"guardianEmail,omitempty" validate:"omitempty,email"`
}

// DoctorProfile shares the user:<id>:profile key with Role "doctor".
type DoctorProfile struct {
	Name      string    `json:"name,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	Role      string    `json:"role,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SaveDoctorInfoRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,lte=255"`
	Specialty string `json:"specialty,omitempty" validate:"omitempty,lte=255"`
}
