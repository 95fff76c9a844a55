package controllers

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/eldermood/mood-mirror-backend/app/models"
	"github.com/eldermood/mood-mirror-backend/app/queries"
	"github.com/eldermood/mood-mirror-backend/pkg/database"
	"github.com/eldermood/mood-mirror-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// reportMailer is swapped for a fake in tests.
var reportMailer utils.Mailer = utils.SMTPMailer{}

func reportRange(c *fiber.Ctx) (string, string) {
	endDate := strings.TrimSpace(c.Query("endDate"))
	if endDate == "" {
		endDate = utils.Today()
	}
	startDate := strings.TrimSpace(c.Query("startDate"))
	if startDate == "" {
		ref, err := time.Parse(utils.DateLayout, endDate)
		if err != nil {
			ref = time.Now()
		}
		startDate = utils.WeekStart(ref)
	}
	return startDate, endDate
}

func GetWeeklyReport(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, endDate := reportRange(c)

	rq := queries.RecordQueries{KV: database.KV}
	data, err := rq.BuildWeeklyReport(userID, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build weekly report"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"reportData": data,
	})
}

func DownloadWeeklyReportCSV(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, endDate := reportRange(c)

	rq := queries.RecordQueries{KV: database.KV}
	data, err := rq.BuildWeeklyReport(userID, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build weekly report"})
	}

	csv := utils.RenderReportCSV(data, utils.Today())

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="wellness-report-%s.csv"`, endDate))
	return c.Status(fiber.StatusOK).SendString(csv)
}

func PrintableWeeklyReport(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, endDate := reportRange(c)

	rq := queries.RecordQueries{KV: database.KV}
	data, err := rq.BuildWeeklyReport(userID, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build weekly report"})
	}

	html := utils.RenderPrintableReport(data, utils.Today())

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(html)
}

// SendWeeklyReport builds the report for the requested week and emails it to
// the guardian on file. A receipt is written only after the mail actually
// went out.
func SendWeeklyReport(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, endDate := reportRange(c)

	rq := queries.RecordQueries{KV: database.KV}
	data, err := rq.BuildWeeklyReport(userID, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build weekly report"})
	}

	if data.GuardianEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Guardian email not set. Please update your profile with guardian email address.",
		})
	}

	subject := fmt.Sprintf("Weekly Wellness Report for %s (%s to %s)", data.ElderName, data.WeekStart, data.WeekEnd)
	html := utils.RenderReportEmailHTML(data)

	emailID, err := reportMailer.Send(os.Getenv("SMTP_FROM"), data.GuardianEmail, subject, html)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":    false,
			"error":      "Failed to send report email",
			"reportData": data,
		})
	}

	receipt := models.ReportSendReceipt{
		SentAt:        time.Now(),
		GuardianEmail: data.GuardianEmail,
		WeekStart:     data.WeekStart,
		WeekEnd:       data.WeekEnd,
		Statistics:    data.Statistics,
		EmailID:       emailID,
	}
	if err := rq.SaveReportReceipt(userID, data.WeekEnd, receipt); err != nil {
		log.Printf("report receipt write failed for user %s week %s: %v", userID, data.WeekEnd, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    fmt.Sprintf("Weekly report email sent successfully to %s", data.GuardianEmail),
		"reportData": data,
		"emailId":    emailID,
	})
}

func GetLastReportReceipt(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	weekEnd := strings.TrimSpace(c.Query("weekEnd"))
	if weekEnd == "" {
		weekEnd = utils.Today()
	}

	rq := queries.RecordQueries{KV: database.KV}
	receipt, err := rq.GetReportReceipt(userID, weekEnd)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch report receipt"})
	}
	if receipt == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No report has been sent for this week"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"receipt": receipt,
	})
}
