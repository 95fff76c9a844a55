package routes

import (
	"github.com/eldermood/mood-mirror-backend/app/controllers"
	"github.com/eldermood/mood-mirror-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterMessageRoutes(app *fiber.App) {
	msg := app.Group("", middleware.JWTProtected())
	msg.Post("/send-guardian-message", controllers.SendGuardianMessage)
	msg.Get("/guardian-messages/:patientId", controllers.GetGuardianMessages)
}
