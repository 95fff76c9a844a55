package controllers

import (
	"log"
	"strings"
	"time"

	"github.com/eldermood/mood-mirror-backend/app/models"
	"github.com/eldermood/mood-mirror-backend/app/queries"
	"github.com/eldermood/mood-mirror-backend/pkg/database"
	"github.com/eldermood/mood-mirror-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// SubmitMoodSurvey stores today's questionnaire and upserts the day's
// completion flags. The flag update is advisory: its failure never fails a
// survey that was already written.
func SubmitMoodSurvey(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.SubmitMoodSurveyRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	today := utils.Today()
	rec := models.MoodSurveyRecord{
		Date:              today,
		Breakfast:         req.Breakfast,
		Dinner:            req.Dinner,
		Exercise:          req.Exercise,
		Tablets:           req.Tablets,
		CorrectTimeDose:   req.CorrectTimeDose,
		SleepQuality:      req.SleepQuality,
		OverallMood:       req.OverallMood,
		WaterIntake:       req.WaterIntake,
		SocialInteraction: req.SocialInteraction,
		EnergyLevel:       req.EnergyLevel,
		Pain:              req.Pain,
		AdditionalNotes:   req.AdditionalNotes,
		CompletedAt:       time.Now(),
	}

	rq := queries.RecordQueries{KV: database.KV}
	if err := rq.SaveSurvey(userID, rec); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save mood survey"})
	}

	status, err := rq.MarkCompleted(userID, today, queries.KindSurvey)
	if err != nil {
		log.Printf("completion update failed for user %s on %s: %v", userID, today, err)
		status = models.CompletionStatus{SurveyCompleted: true}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"message":          "Mood survey saved successfully",
		"completionStatus": status,
	})
}

func GetMoodSurveys(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	startDate := strings.TrimSpace(c.Query("startDate"))
	endDate := strings.TrimSpace(c.Query("endDate"))
	if endDate == "" {
		endDate = utils.Today()
	}

	rq := queries.RecordQueries{KV: database.KV}
	surveys, err := rq.GetSurveys(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mood surveys"})
	}

	filtered := make([]models.MoodSurveyRecord, 0, len(surveys))
	for _, s := range surveys {
		if startDate != "" && (s.Date < startDate || s.Date > endDate) {
			continue
		}
		filtered = append(filtered, s)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"surveys": filtered,
	})
}

func SubmitCameraMood(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.SubmitCameraMoodRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	today := utils.Today()
	rec := models.CameraMoodRecord{
		Date:        today,
		PrimaryMood: req.PrimaryMood,
		Confidence:  req.Confidence,
		Expressions: req.Expressions,
		CompletedAt: time.Now(),
	}

	rq := queries.RecordQueries{KV: database.KV}
	if err := rq.SaveCameraMood(userID, rec); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save camera mood"})
	}

	status, err := rq.MarkCompleted(userID, today, queries.KindCamera)
	if err != nil {
		log.Printf("completion update failed for user %s on %s: %v", userID, today, err)
		status = models.CompletionStatus{CameraCompleted: true}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"message":          "Camera mood detection saved successfully",
		"completionStatus": status,
	})
}

func GetCameraMoods(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	startDate := strings.TrimSpace(c.Query("startDate"))
	endDate := strings.TrimSpace(c.Query("endDate"))
	if endDate == "" {
		endDate = utils.Today()
	}

	rq := queries.RecordQueries{KV: database.KV}
	moods, err := rq.GetCameraMoods(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch camera moods"})
	}

	filtered := make([]models.CameraMoodRecord, 0, len(moods))
	for _, m := range moods {
		if startDate != "" && (m.Date < startDate || m.Date > endDate) {
			continue
		}
		filtered = append(filtered, m)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"cameraMoods": filtered,
	})
}

func GetCompletionStatus(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = utils.Today()
	}

	rq := queries.RecordQueries{KV: database.KV}
	status, err := rq.GetCompletion(userID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch completion status"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"completionStatus": status,
		"date":             date,
	})
}
