package main

import (
	"log"
	"os"

	"github.com/eldermood/mood-mirror-backend/pkg/database"
	"github.com/eldermood/mood-mirror-backend/pkg/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/eldermood/mood-mirror-backend/app/controllers"
)

func main() {
	_ = godotenv.Load()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	_, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	if os.Getenv("KV_BACKEND") == "memory" {
		database.UseMemoryStore()
	}

	routes.RegisterAuthRoutes(app)
	routes.RegisterProfileRoutes(app)
	routes.RegisterSurveyRoutes(app)
	routes.RegisterReportRoutes(app)
	routes.RegisterMessageRoutes(app)

	controllers.StartNotifyDispatcher()

	log.Fatal(app.Listen(":8000"))
}
