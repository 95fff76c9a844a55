package controllers

import (
	"time"

	"github.com/eldermood/mood-mirror-backend/app/models"
	"github.com/eldermood/mood-mirror-backend/app/queries"
	"github.com/eldermood/mood-mirror-backend/pkg/database"
	"github.com/eldermood/mood-mirror-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func SaveElderInfo(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.SaveElderInfoRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := &models.ElderProfile{
		Name:          req.Name,
		Age:           req.Age,
		BloodGroup:    req.BloodGroup,
		Medications:   req.Medications,
		GuardianName:  req.GuardianName,
		GuardianEmail: req.GuardianEmail,
		UpdatedAt:     time.Now(),
	}

	rq := queries.RecordQueries{KV: database.KV}
	if err := rq.SaveElderProfile(userID, profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save elder info"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Elder info saved successfully",
		"profile": profile,
	})
}

func GetElderInfo(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	rq := queries.RecordQueries{KV: database.KV}
	profile, err := rq.GetElderProfile(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch elder info"})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Elder info not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

func SaveDoctorInfo(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.SaveDoctorInfoRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := &models.DoctorProfile{
		Name:      req.Name,
		Specialty: req.Specialty,
		UpdatedAt: time.Now(),
	}

	rq := queries.RecordQueries{KV: database.KV}
	if err := rq.SaveDoctorProfile(userID, profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save doctor info"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Doctor info saved successfully",
		"profile": profile,
	})
}

func GetDoctorInfo(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	rq := queries.RecordQueries{KV: database.KV}
	profile, err := rq.GetDoctorProfile(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch doctor info"})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Doctor info not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

// GetUserProfile reports which role profile the caller has saved, if any.
// Clients use it to route to the right onboarding flow after sign in.
func GetUserProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	rq := queries.RecordQueries{KV: database.KV}
	role, raw, err := rq.GetProfileRole(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user profile"})
	}

	if raw == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":    true,
			"hasProfile": false,
			"role":       role,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"hasProfile": true,
		"role":       role,
		"profile":    raw,
	})
}
