package routes

import (
	"github.com/eldermood/mood-mirror-backend/app/controllers"
	"github.com/eldermood/mood-mirror-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterSurveyRoutes(app *fiber.App) {
	survey := app.Group("", middleware.JWTProtected())
	survey.Post("/mood-survey", controllers.SubmitMoodSurvey)
	survey.Get("/mood-surveys", controllers.GetMoodSurveys)
	survey.Post("/camera-mood", controllers.SubmitCameraMood)
	survey.Get("/camera-moods", controllers.GetCameraMoods)
	survey.Get("/completion-status", controllers.GetCompletionStatus)
}
