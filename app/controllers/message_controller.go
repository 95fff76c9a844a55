package controllers

import (
	"fmt"
	"time"

	"github.com/eldermood/mood-mirror-backend/app/models"
	"github.com/eldermood/mood-mirror-backend/app/queries"
	"github.com/eldermood/mood-mirror-backend/pkg/database"
	"github.com/eldermood/mood-mirror-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SendGuardianMessage stores a doctor's message for a patient and queues an
// email notification to the patient's guardian. The notification is best
// effort; the message itself is already persisted when it is queued.
func SendGuardianMessage(c *fiber.Ctx) error {
	senderID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.SendGuardianMessageRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: patientId, message"})
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid patient id"})
	}

	rq := queries.RecordQueries{KV: database.KV}
	patientInfo, err := rq.GetElderProfile(patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patient info"})
	}
	if patientInfo == nil || patientInfo.GuardianEmail == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Guardian email not found for this patient"})
	}

	msg := models.GuardianMessage{
		ID:         uuid.New().String(),
		PatientID:  req.PatientID,
		SenderID:   senderID.String(),
		SenderType: "doctor",
		Content:    req.Message,
		CreatedAt:  time.Now(),
		Read:       false,
	}
	if err := rq.SaveGuardianMessage(msg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save message"})
	}

	doctorName := "Your Doctor"
	doctor, err := rq.GetDoctorProfile(senderID)
	if err == nil && doctor != nil && doctor.Name != "" {
		doctorName = "Dr. " + doctor.Name
	}

	patientName := patientInfo.Name
	if patientName == "" {
		patientName = "Your loved one"
	}

	enqueueGuardianNotification(guardianNotification{
		to:      patientInfo.GuardianEmail,
		subject: fmt.Sprintf("New message from %s", doctorName),
		html:    utils.RenderGuardianMessageHTML(doctorName, patientName, req.Message),
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "Message sent successfully",
		"messageId": msg.ID,
	})
}

func GetGuardianMessages(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromHeader(c.Get("Authorization")); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	patientID := c.Params("patientId")
	if _, err := uuid.Parse(patientID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid patient id"})
	}

	rq := queries.RecordQueries{KV: database.KV}
	messages, err := rq.GetGuardianMessages(patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}
