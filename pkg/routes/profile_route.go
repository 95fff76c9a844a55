package routes

import (
	"github.com/eldermood/mood-mirror-backend/app/controllers"
	"github.com/eldermood/mood-mirror-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterProfileRoutes(app *fiber.App) {
	profile := app.Group("", middleware.JWTProtected())
	profile.Post("/elder-info", controllers.SaveElderInfo)
	profile.Get("/elder-info", controllers.GetElderInfo)
	profile.Post("/doctor-info", controllers.SaveDoctorInfo)
	profile.Get("/doctor-info", controllers.GetDoctorInfo)
	profile.Get("/user-profile", controllers.GetUserProfile)
}
