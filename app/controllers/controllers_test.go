package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/eldermood/mood-mirror-backend/app/models"
	"github.com/eldermood/mood-mirror-backend/app/queries"
	"github.com/eldermood/mood-mirror-backend/pkg/database"
	"github.com/eldermood/mood-mirror-backend/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	from, to, subject, html string
}

func (m *fakeMailer) Send(from, to, subject, html string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, sentMail{from, to, subject, html})
	return "fake-email-id", nil
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	database.KV = database.NewMemoryStore()

	// handlers are registered directly on the same paths the route files
	// use; the route files cannot be imported from here
	app := fiber.New()
	protected := app.Group("", middleware.JWTProtected())
	protected.Post("/elder-info", SaveElderInfo)
	protected.Get("/elder-info", GetElderInfo)
	protected.Post("/doctor-info", SaveDoctorInfo)
	protected.Get("/doctor-info", GetDoctorInfo)
	protected.Get("/user-profile", GetUserProfile)
	protected.Post("/mood-survey", SubmitMoodSurvey)
	protected.Get("/mood-surveys", GetMoodSurveys)
	protected.Post("/camera-mood", SubmitCameraMood)
	protected.Get("/camera-moods", GetCameraMoods)
	protected.Get("/completion-status", GetCompletionStatus)
	protected.Get("/weekly-report", GetWeeklyReport)
	protected.Post("/send-weekly-report", SendWeeklyReport)
	protected.Get("/weekly-report/csv", DownloadWeeklyReportCSV)
	protected.Get("/weekly-report/print", PrintableWeeklyReport)
	protected.Get("/weekly-report/receipt", GetLastReportReceipt)
	protected.Post("/send-guardian-message", SendGuardianMessage)
	protected.Get("/guardian-messages/:patientId", GetGuardianMessages)
	return app
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]interface{}{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	parsed["_raw"] = string(raw)
	return resp, parsed
}

func TestSurveyEndpointsRequireAuth(t *testing.T) {
	app := setupApp(t)

	resp, _ := doRequest(t, app, "POST", "/mood-survey", "", fiber.Map{"overall_mood": "happy"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, "GET", "/completion-status", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitMoodSurveyFlow(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	resp, body := doRequest(t, app, "POST", "/mood-survey", token, fiber.Map{
		"overall_mood": "happy",
		"energy_level": 7,
		"breakfast":    "yes",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	status := body["completionStatus"].(map[string]interface{})
	assert.Equal(t, true, status["surveyCompleted"])
	assert.Equal(t, false, status["cameraCompleted"])

	resp, body = doRequest(t, app, "GET", "/completion-status", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status = body["completionStatus"].(map[string]interface{})
	assert.Equal(t, true, status["surveyCompleted"])

	// second record kind merges into the same day
	resp, body = doRequest(t, app, "POST", "/camera-mood", token, fiber.Map{
		"primaryMood": "neutral",
		"confidence":  88.4,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status = body["completionStatus"].(map[string]interface{})
	assert.Equal(t, true, status["surveyCompleted"])
	assert.Equal(t, true, status["cameraCompleted"])
}

func TestSubmitMoodSurveyValidation(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	resp, _ := doRequest(t, app, "POST", "/mood-survey", token, fiber.Map{"overall_mood": "ecstatic"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/mood-survey", token, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/camera-mood", token, fiber.Map{
		"primaryMood": "happy",
		"confidence":  140,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetMoodSurveysRangeFilter(t *testing.T) {
	app := setupApp(t)
	userID := uuid.New()
	token := signToken(t, userID)

	rq := queries.RecordQueries{KV: database.KV}
	require.NoError(t, rq.SaveSurvey(userID, models.MoodSurveyRecord{Date: "2025-01-05", OverallMood: "sad"}))
	require.NoError(t, rq.SaveSurvey(userID, models.MoodSurveyRecord{Date: "2025-01-06", OverallMood: "happy"}))
	require.NoError(t, rq.SaveSurvey(userID, models.MoodSurveyRecord{Date: "2025-01-08", OverallMood: "calm"}))

	resp, body := doRequest(t, app, "GET", "/mood-surveys?startDate=2025-01-06&endDate=2025-01-12", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	surveys := body["surveys"].([]interface{})
	assert.Len(t, surveys, 2)

	// no range returns everything
	resp, body = doRequest(t, app, "GET", "/mood-surveys", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["surveys"].([]interface{}), 3)
}

func TestElderInfoAndUserProfile(t *testing.T) {
	app := setupApp(t)
	userID := uuid.New()
	token := signToken(t, userID)

	resp, body := doRequest(t, app, "GET", "/user-profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["hasProfile"])

	resp, _ = doRequest(t, app, "GET", "/elder-info", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/elder-info", token, fiber.Map{
		"name":          "Margaret Hale",
		"age":           "78",
		"guardianName":  "John Hale",
		"guardianEmail": "guardian@example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doRequest(t, app, "GET", "/elder-info", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, "Margaret Hale", profile["name"])
	assert.Equal(t, "elder", profile["role"])

	resp, body = doRequest(t, app, "GET", "/user-profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["hasProfile"])
	assert.Equal(t, "elder", body["role"])

	// malformed guardian email is rejected
	resp, _ = doRequest(t, app, "POST", "/elder-info", token, fiber.Map{"guardianEmail": "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetWeeklyReport(t *testing.T) {
	app := setupApp(t)
	userID := uuid.New()
	token := signToken(t, userID)

	rq := queries.RecordQueries{KV: database.KV}
	require.NoError(t, rq.SaveBasicInfo(userID, &models.BasicInfo{Name: "Margaret", Email: "m@example.com"}))
	require.NoError(t, rq.SaveSurvey(userID, models.MoodSurveyRecord{Date: "2025-01-06", OverallMood: "happy"}))

	resp, body := doRequest(t, app, "GET", "/weekly-report?startDate=2025-01-06&endDate=2025-01-12", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	report := body["reportData"].(map[string]interface{})
	assert.Equal(t, "Margaret", report["elderName"])
	stats := report["statistics"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["surveysCompleted"])
	assert.Equal(t, float64(7), stats["totalDays"])
	assert.Equal(t, "happy", stats["dominantMood"])
}

func TestSendWeeklyReportWithoutGuardianEmail(t *testing.T) {
	app := setupApp(t)
	userID := uuid.New()
	token := signToken(t, userID)

	mailer := &fakeMailer{}
	prev := reportMailer
	reportMailer = mailer
	defer func() { reportMailer = prev }()

	resp, body := doRequest(t, app, "POST", "/send-weekly-report?startDate=2025-01-06&endDate=2025-01-12", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Guardian email not set. Please update your profile with guardian email address.", body["error"])
	assert.Empty(t, mailer.sent)

	// no receipt must exist for the week
	rq := queries.RecordQueries{KV: database.KV}
	receipt, err := rq.GetReportReceipt(userID, "2025-01-12")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestSendWeeklyReport(t *testing.T) {
	app := setupApp(t)
	userID := uuid.New()
	token := signToken(t, userID)
	os.Setenv("SMTP_FROM", "noreply@eldermoodmirror.com")
	defer os.Unsetenv("SMTP_FROM")

	mailer := &fakeMailer{}
	prev := reportMailer
	reportMailer = mailer
	defer func() { reportMailer = prev }()

	rq := queries.RecordQueries{KV: database.KV}
	require.NoError(t, rq.SaveBasicInfo(userID, &models.BasicInfo{Name: "Margaret", Email: "m@example.com"}))
	require.NoError(t, rq.SaveElderProfile(userID, &models.ElderProfile{
		Name:          "Margaret Hale",
		GuardianName:  "John Hale",
		GuardianEmail: "guardian@example.com",
	}))
	require.NoError(t, rq.SaveSurvey(userID, models.MoodSurveyRecord{Date: "2025-01-06", OverallMood: "happy"}))

	resp, body := doRequest(t, app, "POST", "/send-weekly-report?startDate=2025-01-06&endDate=2025-01-12", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "fake-email-id", body["emailId"])

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "noreply@eldermoodmirror.com", mailer.sent[0].from)
	assert.Equal(t, "guardian@example.com", mailer.sent[0].to)
	assert.Equal(t, "Weekly Wellness Report for Margaret Hale (2025-01-06 to 2025-01-12)", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].html, "Hello John Hale,")

	receipt, err := rq.GetReportReceipt(userID, "2025-01-12")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "guardian@example.com", receipt.GuardianEmail)
	assert.Equal(t, "fake-email-id", receipt.EmailID)
}

func TestSendWeeklyReportDeliveryFailure(t *testing.T) {
	app := setupApp(t)
	userID := uuid.New()
	token := signToken(t, userID)

	mailer := &fakeMailer{err: errors.New("smtp down")}
	prev := reportMailer
	reportMailer = mailer
	defer func() { reportMailer = prev }()

	rq := queries.RecordQueries{KV: database.KV}
	require.NoError(t, rq.SaveElderProfile(userID, &models.ElderProfile{GuardianEmail: "guardian@example.com"}))

	resp, body := doRequest(t, app, "POST", "/send-weekly-report?startDate=2025-01-06&endDate=2025-01-12", token, nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotNil(t, body["reportData"])

	// delivery failed, so no receipt
	receipt, err := rq.GetReportReceipt(userID, "2025-01-12")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestDownloadWeeklyReportCSV(t *testing.T) {
	app := setupApp(t)
	userID := uuid.New()
	token := signToken(t, userID)

	resp, body := doRequest(t, app, "GET", "/weekly-report/csv?startDate=2025-01-06&endDate=2025-01-12", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "wellness-report-2025-01-12.csv")
	assert.Contains(t, body["_raw"], `"Elder Mood Mirror - Weekly Report"`)
}

func TestPrintableWeeklyReport(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	resp, body := doRequest(t, app, "GET", "/weekly-report/print?startDate=2025-01-06&endDate=2025-01-12", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body["_raw"], "<h1>Elder Mood Mirror</h1>")
}

func TestGuardianMessageFlow(t *testing.T) {
	app := setupApp(t)
	doctorID := uuid.New()
	patientID := uuid.New()
	doctorToken := signToken(t, doctorID)

	rq := queries.RecordQueries{KV: database.KV}
	require.NoError(t, rq.SaveElderProfile(patientID, &models.ElderProfile{
		Name:          "Margaret Hale",
		GuardianEmail: "guardian@example.com",
	}))
	require.NoError(t, rq.SaveDoctorProfile(doctorID, &models.DoctorProfile{Name: "Ana", Specialty: "Geriatrics"}))

	resp, body := doRequest(t, app, "POST", "/send-guardian-message", doctorToken, fiber.Map{
		"patientId": patientID.String(),
		"message":   "Please schedule a follow-up.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	messageID := body["messageId"].(string)
	assert.NotEmpty(t, messageID)

	// notification is queued before the handler returns, addressed to the
	// guardian and signed with the doctor's name
	select {
	case n := <-notifyChan:
		assert.Equal(t, "guardian@example.com", n.to)
		assert.Equal(t, "New message from Dr. Ana", n.subject)
		assert.Contains(t, n.html, "Regarding patient: Margaret Hale")
		assert.Contains(t, n.html, "Please schedule a follow-up.")
	case <-time.After(time.Second):
		t.Fatal("no guardian notification queued")
	}

	resp, body = doRequest(t, app, "GET", "/guardian-messages/"+patientID.String(), doctorToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	messages := body["messages"].([]interface{})
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, messageID, msg["id"])
	assert.Equal(t, "doctor", msg["senderType"])
	assert.Equal(t, "Please schedule a follow-up.", msg["content"])
}

func TestSendGuardianMessageWithoutGuardian(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	resp, body := doRequest(t, app, "POST", "/send-guardian-message", token, fiber.Map{
		"patientId": uuid.New().String(),
		"message":   "hello",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Guardian email not found for this patient", body["error"])
}

func TestSendGuardianMessageMissingFields(t *testing.T) {
	app := setupApp(t)
	token := signToken(t, uuid.New())

	resp, _ := doRequest(t, app, "POST", "/send-guardian-message", token, fiber.Map{"patientId": uuid.New().String()})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
