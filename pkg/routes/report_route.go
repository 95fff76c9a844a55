package routes

import (
	"github.com/eldermood/mood-mirror-backend/app/controllers"
	"github.com/eldermood/mood-mirror-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegisterReportRoutes(app *fiber.App) {
	report := app.Group("", middleware.JWTProtected())
	report.Get("/weekly-report", controllers.GetWeeklyReport)
	report.Post("/send-weekly-report", controllers.SendWeeklyReport)
	report.Get("/weekly-report/csv", controllers.DownloadWeeklyReportCSV)
	report.Get("/weekly-report/print", controllers.PrintableWeeklyReport)
	report.Get("/weekly-report/receipt", controllers.GetLastReportReceipt)
}
