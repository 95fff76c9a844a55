package utils

import (
	"strings"
	"testing"

	"github.com/eldermood/mood-mirror-backend/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() models.WeeklyReportData {
	return models.WeeklyReportData{
		ElderName:     "Margaret Hale",
		ElderEmail:    "margaret@example.com",
		GuardianEmail: "guardian@example.com",
		GuardianName:  "John Hale",
		WeekStart:     "2025-01-06",
		WeekEnd:       "2025-01-12",
		Statistics: models.WeeklyStatistics{
			TotalDays:            7,
			SurveysCompleted:     5,
			CameraMoodsCompleted: 4,
			CompletionRate:       64,
			AverageEnergyLevel:   6.5,
			DominantMood:         "happy",
			DominantCameraMood:   "neutral",
		},
		Surveys: []models.MoodSurveyRecord{
			{Date: "2025-01-06", OverallMood: "happy", EnergyLevel: f(8)},
			{Date: "2025-01-08", OverallMood: "calm"},
		},
		CameraMoods: []models.CameraMoodRecord{
			{Date: "2025-01-06", PrimaryMood: "happy", Confidence: 91.2},
		},
		ElderInfo: &models.ElderProfile{
			Name:          "Margaret Hale",
			Age:           "78",
			BloodGroup:    "O+",
			GuardianName:  "John Hale",
			GuardianEmail: "guardian@example.com",
		},
	}
}

func TestRenderReportEmailHTMLDeterministic(t *testing.T) {
	data := sampleReport()
	first := RenderReportEmailHTML(data)
	second := RenderReportEmailHTML(data)
	assert.Equal(t, first, second)
}

func TestRenderReportEmailHTMLContent(t *testing.T) {
	data := sampleReport()
	html := RenderReportEmailHTML(data)

	assert.Contains(t, html, "Hello John Hale,")
	assert.Contains(t, html, "<strong>Margaret Hale</strong>")
	assert.Contains(t, html, "<strong>2025-01-06</strong> to <strong>2025-01-12</strong>")
	assert.Contains(t, html, ">64%<")
	assert.Contains(t, html, ">5 / 7<")
	assert.Contains(t, html, ">4 / 7<")
	assert.Contains(t, html, ">6.5 / 10<")
	assert.Contains(t, html, `The overall mood trend has been "happy".`)
	assert.Contains(t, html, "good engagement")

	// 64% is not low engagement
	assert.NotContains(t, html, "completion rate is lower than usual")
}

func TestRenderReportEmailHTMLLowEngagement(t *testing.T) {
	data := sampleReport()
	data.Statistics.CompletionRate = 21
	html := RenderReportEmailHTML(data)

	assert.Contains(t, html, "moderate engagement")
	assert.Contains(t, html, "completion rate is lower than usual")
}

func TestRenderReportEmailHTMLNoData(t *testing.T) {
	data := sampleReport()
	data.Statistics.DominantMood = NoData
	data.GuardianName = ""
	html := RenderReportEmailHTML(data)

	assert.Contains(t, html, "Hello Guardian,")
	assert.NotContains(t, html, "The overall mood trend has been")
}

func TestRenderReportCSVLayout(t *testing.T) {
	data := sampleReport()
	csv := RenderReportCSV(data, "2025-01-12")

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 28)

	assert.Equal(t, `"Elder Mood Mirror - Weekly Report"`, lines[0])
	assert.Equal(t, `"Report Period: 2025-01-06 to 2025-01-12"`, lines[2])
	assert.Equal(t, `"Name","Margaret Hale"`, lines[5])
	assert.Equal(t, `"Age","78"`, lines[6])
	assert.Equal(t, `"Surveys Completed","5"`, lines[12])
	assert.Equal(t, `"Completion Rate","64%"`, lines[14])
	assert.Equal(t, `"Average Energy Level","6.5"`, lines[15])
	assert.Equal(t, `"Date","Survey","Camera","Mood","Energy Level"`, lines[20])

	// daily table covers the 7 days ending 2025-01-12
	assert.Equal(t, `"2025-01-06","✓ Completed","✓ Completed","happy","8"`, lines[21])
	assert.Equal(t, `"2025-01-07","- Pending","- Pending","N/A","N/A"`, lines[22])
	assert.Equal(t, `"2025-01-08","✓ Completed","- Pending","calm","N/A"`, lines[23])
	assert.Equal(t, `"2025-01-12","- Pending","- Pending","N/A","N/A"`, lines[27])
}

func TestRenderReportCSVQuoting(t *testing.T) {
	data := sampleReport()
	data.ElderName = `Margaret "Peggy" Hale`
	csv := RenderReportCSV(data, "2025-01-12")

	assert.Contains(t, csv, `"Name","Margaret ""Peggy"" Hale"`)
}

func TestRenderReportCSVMissingProfile(t *testing.T) {
	data := models.WeeklyReportData{
		ElderName: "Unknown",
		WeekStart: "2025-01-06",
		WeekEnd:   "2025-01-12",
		Statistics: models.WeeklyStatistics{
			TotalDays:    7,
			DominantMood: NoData,
		},
	}
	csv := RenderReportCSV(data, "2025-01-12")

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 28)
	assert.Equal(t, `"Age","N/A"`, lines[6])
	assert.Equal(t, `"Dominant Mood","No data"`, lines[16])
	for _, line := range lines[21:] {
		assert.Contains(t, line, `"- Pending"`)
	}
}

func TestRenderPrintableReport(t *testing.T) {
	data := sampleReport()
	html := RenderPrintableReport(data, "2025-01-12")
	assert.Equal(t, html, RenderPrintableReport(data, "2025-01-12"))

	assert.Contains(t, html, "Weekly Report: January 6, 2025 - January 12, 2025")
	assert.Contains(t, html, "Mon, Jan 6")
	assert.Contains(t, html, "Sun, Jan 12")
	assert.Contains(t, html, "8/10")
	assert.Contains(t, html, "✓ Completed")
	assert.Contains(t, html, "- Pending")
	assert.Contains(t, html, "Report Date: January 12, 2025")
	assert.Contains(t, html, "64%")
}

func TestRenderGuardianMessageHTML(t *testing.T) {
	html := RenderGuardianMessageHTML("Dr. Ana", "Margaret Hale", "Please schedule a follow-up.")
	assert.Contains(t, html, "New Message from Dr. Ana")
	assert.Contains(t, html, "Regarding patient: Margaret Hale")
	assert.Contains(t, html, "Please schedule a follow-up.")

	html = RenderGuardianMessageHTML("Your Doctor", "", "Hello")
	assert.Contains(t, html, "Regarding patient: Your loved one")
}
