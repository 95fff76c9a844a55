package routes

import (
	"github.com/eldermood/mood-mirror-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func RegisterAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/signup", controllers.UserSignUp)
	auth.Post("/signin", controllers.UserSignIn)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/logout", controllers.UserLogout)
}
