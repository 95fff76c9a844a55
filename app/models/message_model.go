package models

import "time"

// GuardianMessage is a doctor-to-guardian note about a patient, stored under
// message:<patientId>:<id> and indexed per conversation.
type GuardianMessage struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patientId"`
	SenderID   string    `json:"senderId"`
	SenderType string    `json:"senderType"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

type SendGuardianMessageRequest struct {
	PatientID string `json:"patientId" validate:"required"`
	Message   string `json:"message" validate:"required"`
}
