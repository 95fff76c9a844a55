package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eldermood/mood-mirror-backend/app/models"
)

// The renderers are deterministic: the same report data (and the same
// "today" for the daily tables) produce byte-identical documents. They
// perform no I/O.

func engagementWord(rate int) string {
	if rate >= 80 {
		return "excellent"
	}
	if rate >= 60 {
		return "good"
	}
	return "moderate"
}

func formatLongDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "N/A"
	}
	return t.Format("January 2, 2006")
}

func formatEnergy(level *float64) string {
	if level == nil {
		return ""
	}
	return strconv.FormatFloat(*level, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// RenderReportEmailHTML builds the self-contained weekly report email body.
func RenderReportEmailHTML(data models.WeeklyReportData) string {
	stats := data.Statistics

	guardianName := data.GuardianName
	if guardianName == "" {
		guardianName = "Guardian"
	}

	moodLine := ""
	if stats.DominantMood != NoData {
		moodLine = fmt.Sprintf(`The overall mood trend has been "%s".`, stats.DominantMood)
	}

	lowEngagementItem := ""
	if stats.CompletionRate < 60 {
		lowEngagementItem = "<li><strong>Consider checking in - completion rate is lower than usual</strong></li>"
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Weekly Wellness Report</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f5;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #f5f5f5; padding: 20px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">

          <!-- Header -->
          <tr>
            <td style="background: linear-gradient(135deg, #2563eb 0%, #16a34a 100%); padding: 30px; text-align: center;">
              <h1 style="margin: 0; color: #ffffff; font-size: 28px;">🧠 Elder Mood Mirror</h1>
              <p style="margin: 10px 0 0 0; color: #e0f2fe; font-size: 16px;">Weekly Wellness Report</p>
            </td>
          </tr>

          <!-- Report Period -->
          <tr>
            <td style="padding: 30px;">
`)
	fmt.Fprintf(&b, `              <h2 style="margin: 0 0 10px 0; color: #1f2937; font-size: 22px;">Hello %s,</h2>
              <p style="margin: 0 0 20px 0; color: #4b5563; font-size: 16px; line-height: 1.5;">
                This is the weekly wellness report for <strong>%s</strong> for the period
                <strong>%s</strong> to <strong>%s</strong>.
              </p>
`, guardianName, data.ElderName, data.WeekStart, data.WeekEnd)
	fmt.Fprintf(&b, `
              <!-- Statistics -->
              <table width="100%%" cellpadding="0" cellspacing="0" style="margin: 20px 0;">
                <tr>
                  <td style="background-color: #dbeafe; padding: 20px; border-radius: 8px;">
                    <h3 style="margin: 0 0 15px 0; color: #1e40af; font-size: 18px;">📊 Weekly Summary</h3>
                    <table width="100%%" cellpadding="8" cellspacing="0">
                      <tr>
                        <td style="color: #374151; font-size: 15px;">Completion Rate:</td>
                        <td style="color: #1f2937; font-size: 15px; font-weight: bold; text-align: right;">%d%%</td>
                      </tr>
                      <tr>
                        <td style="color: #374151; font-size: 15px;">Surveys Completed:</td>
                        <td style="color: #1f2937; font-size: 15px; font-weight: bold; text-align: right;">%d / %d</td>
                      </tr>
                      <tr>
                        <td style="color: #374151; font-size: 15px;">Camera Checks:</td>
                        <td style="color: #1f2937; font-size: 15px; font-weight: bold; text-align: right;">%d / %d</td>
                      </tr>
                      <tr>
                        <td style="color: #374151; font-size: 15px;">Average Energy Level:</td>
                        <td style="color: #1f2937; font-size: 15px; font-weight: bold; text-align: right;">%.1f / 10</td>
                      </tr>
                      <tr>
                        <td style="color: #374151; font-size: 15px;">Dominant Mood:</td>
                        <td style="color: #1f2937; font-size: 15px; font-weight: bold; text-align: right;">%s</td>
                      </tr>
                    </table>
                  </td>
                </tr>
              </table>
`, stats.CompletionRate, stats.SurveysCompleted, stats.TotalDays, stats.CameraMoodsCompleted, stats.TotalDays, stats.AverageEnergyLevel, stats.DominantMood)
	fmt.Fprintf(&b, `
              <!-- Key Insights -->
              <div style="background-color: #fef3c7; padding: 20px; border-radius: 8px; border-left: 4px solid #f59e0b; margin: 20px 0;">
                <h3 style="margin: 0 0 10px 0; color: #92400e; font-size: 18px;">💡 Key Insights</h3>
                <p style="margin: 0; color: #78350f; font-size: 15px; line-height: 1.5;">
                  %s has shown %s engagement this week with a completion rate of %d%%. %s
                </p>
              </div>

              <!-- Action Items -->
              <div style="background-color: #dcfce7; padding: 20px; border-radius: 8px; border-left: 4px solid #16a34a; margin: 20px 0;">
                <h3 style="margin: 0 0 10px 0; color: #14532d; font-size: 18px;">✅ Recommendations</h3>
                <ul style="margin: 0; padding-left: 20px; color: #166534; font-size: 15px; line-height: 1.8;">
                  <li>Continue encouraging daily mood tracking for better insights</li>
                  <li>Reach out if %s needs support or assistance</li>
                  <li>Monitor any significant changes in mood patterns</li>
                  %s
                </ul>
              </div>
`, data.ElderName, engagementWord(stats.CompletionRate), stats.CompletionRate, moodLine, data.ElderName, lowEngagementItem)
	b.WriteString(`
              <!-- Footer Message -->
              <p style="margin: 30px 0 0 0; color: #6b7280; font-size: 14px; line-height: 1.5;">
                For detailed analytics and full history, please log in to the Elder Mood Mirror dashboard.
              </p>
            </td>
          </tr>

          <!-- Footer -->
          <tr>
            <td style="background-color: #f9fafb; padding: 20px; text-align: center; border-top: 1px solid #e5e7eb;">
              <p style="margin: 0; color: #6b7280; font-size: 13px;">
                Elder Mood Mirror - Reflecting Care, Restoring Smiles<br>
                This is an automated weekly report. Please do not reply to this email.
              </p>
            </td>
          </tr>

        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`)
	return b.String()
}

// RenderGuardianMessageHTML builds the notification email for a doctor's
// message to a patient's guardian.
func RenderGuardianMessageHTML(doctorName, patientName, message string) string {
	if patientName == "" {
		patientName = "Your loved one"
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">New Message from %s</h2>
  <p>Regarding patient: %s</p>
  <div style="background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 0;">%s</p>
  </div>
  <p style="color: #6b7280; font-size: 14px;">
    This message was sent through the Elder Mood Mirror doctor portal.
  </p>
</div>
`, doctorName, patientName, message)
}

// dailyRow is one line of the seven-day activity table shared by the CSV
// and printable renditions. The table always covers the 7 days ending
// "today", independent of the statistics range.
type dailyRow struct {
	date   time.Time
	survey *models.MoodSurveyRecord
	camera *models.CameraMoodRecord
}

func dailyRows(data models.WeeklyReportData, today string) []dailyRow {
	end, err := time.Parse(DateLayout, today)
	if err != nil {
		end, _ = time.Parse(DateLayout, data.WeekEnd)
	}

	rows := make([]dailyRow, 0, 7)
	for i := 0; i < 7; i++ {
		date := end.AddDate(0, 0, -(6 - i))
		dateStr := date.Format(DateLayout)
		row := dailyRow{date: date}
		for j := range data.Surveys {
			if data.Surveys[j].Date == dateStr {
				row.survey = &data.Surveys[j]
				break
			}
		}
		for j := range data.CameraMoods {
			if data.CameraMoods[j].Date == dateStr {
				row.camera = &data.CameraMoods[j]
				break
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderReportCSV produces the downloadable report: title, period, elder
// block, statistics block and the seven-row daily table. Every cell is
// double-quoted.
func RenderReportCSV(data models.WeeklyReportData, today string) string {
	stats := data.Statistics
	elder := data.ElderInfo
	if elder == nil {
		elder = &models.ElderProfile{}
	}

	guardianName := data.GuardianName
	if guardianName == "" {
		guardianName = elder.GuardianName
	}
	guardianEmail := data.GuardianEmail
	if guardianEmail == "" {
		guardianEmail = elder.GuardianEmail
	}

	rows := [][]string{
		{"Elder Mood Mirror - Weekly Report"},
		{""},
		{fmt.Sprintf("Report Period: %s to %s", data.WeekStart, data.WeekEnd)},
		{""},
		{"Elder Information"},
		{"Name", orNA(data.ElderName)},
		{"Age", orNA(elder.Age)},
		{"Blood Group", orNA(elder.BloodGroup)},
		{"Guardian", orNA(guardianName)},
		{"Guardian Email", orNA(guardianEmail)},
		{""},
		{"Weekly Statistics"},
		{"Surveys Completed", strconv.Itoa(stats.SurveysCompleted)},
		{"Camera Checks", strconv.Itoa(stats.CameraMoodsCompleted)},
		{"Completion Rate", fmt.Sprintf("%d%%", stats.CompletionRate)},
		{"Average Energy Level", fmt.Sprintf("%.1f", stats.AverageEnergyLevel)},
		{"Dominant Mood", orNA(stats.DominantMood)},
		{"Camera Detected Mood", orNA(stats.DominantCameraMood)},
		{""},
		{"Daily Activities"},
		{"Date", "Survey", "Camera", "Mood", "Energy Level"},
	}

	for _, r := range dailyRows(data, today) {
		surveyStatus := "- Pending"
		mood := "N/A"
		energy := "N/A"
		if r.survey != nil {
			surveyStatus = "✓ Completed"
			if r.survey.OverallMood != "" {
				mood = r.survey.OverallMood
			}
			if e := formatEnergy(r.survey.EnergyLevel); e != "" {
				energy = e
			}
		}
		cameraStatus := "- Pending"
		if r.camera != nil {
			cameraStatus = "✓ Completed"
		}
		rows = append(rows, []string{r.date.Format(DateLayout), surveyStatus, cameraStatus, mood, energy})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// RenderPrintableReport produces the print-ready HTML document.
func RenderPrintableReport(data models.WeeklyReportData, today string) string {
	stats := data.Statistics
	elder := data.ElderInfo
	if elder == nil {
		elder = &models.ElderProfile{}
	}

	guardianName := data.GuardianName
	if guardianName == "" {
		guardianName = elder.GuardianName
	}

	dominantMood := stats.DominantMood
	if dominantMood == "" {
		dominantMood = NoData
	}
	dominantCameraMood := stats.DominantCameraMood
	if dominantCameraMood == "" {
		dominantCameraMood = NoData
	}

	var tableRows strings.Builder
	for _, r := range dailyRows(data, today) {
		surveyBadge, surveyText := "badge-pending", "- Pending"
		mood, energy := "-", "-"
		if r.survey != nil {
			surveyBadge, surveyText = "badge-success", "✓ Completed"
			if r.survey.OverallMood != "" {
				mood = strings.ReplaceAll(r.survey.OverallMood, "_", " ")
			}
			if e := formatEnergy(r.survey.EnergyLevel); e != "" {
				energy = e + "/10"
			}
		}
		cameraBadge, cameraText := "badge-pending", "- Pending"
		if r.camera != nil {
			cameraBadge, cameraText = "badge-success", "✓ Completed"
		}
		fmt.Fprintf(&tableRows, `        <tr>
          <td>%s</td>
          <td><span class="badge %s">%s</span></td>
          <td><span class="badge %s">%s</span></td>
          <td style="text-transform: capitalize;">%s</td>
          <td>%s</td>
        </tr>
`, r.date.Format("Mon, Jan 2"), surveyBadge, surveyText, cameraBadge, cameraText, mood, energy)
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Elder Mood Mirror - Weekly Report</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; padding: 40px; max-width: 1200px; margin: 0 auto; }
    .header { text-align: center; margin-bottom: 40px; padding-bottom: 20px; border-bottom: 3px solid #3b82f6; }
    .logo { font-size: 36px; margin-bottom: 10px; }
    h1 { color: #1e40af; font-size: 32px; margin-bottom: 10px; }
    .report-period { color: #6b7280; font-size: 18px; }
    .section { margin-bottom: 30px; page-break-inside: avoid; }
    .section-title { color: #1e40af; font-size: 24px; margin-bottom: 15px; padding-bottom: 10px; border-bottom: 2px solid #e5e7eb; }
    .info-grid { display: grid; grid-template-columns: repeat(2, 1fr); gap: 20px; margin-bottom: 20px; }
    .info-item { padding: 15px; background: #f9fafb; border-radius: 8px; }
    .info-label { color: #6b7280; font-size: 14px; margin-bottom: 5px; }
    .info-value { font-size: 18px; font-weight: 600; color: #111827; }
    .stats-grid { display: grid; grid-template-columns: repeat(4, 1fr); gap: 20px; margin-bottom: 30px; }
    .stat-card { text-align: center; padding: 20px; background: linear-gradient(135deg, #3b82f6 0%, #10b981 100%); border-radius: 12px; color: white; }
    .stat-value { font-size: 36px; font-weight: bold; margin-bottom: 5px; }
    .stat-label { font-size: 14px; opacity: 0.9; }
    table { width: 100%; border-collapse: collapse; margin-top: 15px; }
    th { background: #f3f4f6; padding: 12px; text-align: left; font-weight: 600; color: #374151; border-bottom: 2px solid #e5e7eb; }
    td { padding: 12px; border-bottom: 1px solid #e5e7eb; }
    .badge { display: inline-block; padding: 4px 12px; border-radius: 12px; font-size: 12px; font-weight: 600; }
    .badge-success { background: #d1fae5; color: #065f46; }
    .badge-pending { background: #e5e7eb; color: #6b7280; }
    .footer { margin-top: 50px; padding-top: 20px; border-top: 2px solid #e5e7eb; text-align: center; color: #6b7280; font-size: 14px; }
    @media print { body { padding: 20px; } .no-print { display: none; } }
  </style>
</head>
<body>
`)
	fmt.Fprintf(&b, `  <div class="header">
    <div class="logo">🌲</div>
    <h1>Elder Mood Mirror</h1>
    <p class="report-period">Weekly Report: %s - %s</p>
  </div>

  <div class="section">
    <h2 class="section-title">Elder Information</h2>
    <div class="info-grid">
      <div class="info-item">
        <div class="info-label">Name</div>
        <div class="info-value">%s</div>
      </div>
      <div class="info-item">
        <div class="info-label">Age</div>
        <div class="info-value">%s</div>
      </div>
      <div class="info-item">
        <div class="info-label">Blood Group</div>
        <div class="info-value">%s</div>
      </div>
      <div class="info-item">
        <div class="info-label">Guardian</div>
        <div class="info-value">%s</div>
      </div>
    </div>
  </div>
`, formatLongDate(data.WeekStart), formatLongDate(data.WeekEnd),
		orNA(data.ElderName), orNA(elder.Age), orNA(elder.BloodGroup), orNA(guardianName))
	fmt.Fprintf(&b, `
  <div class="section">
    <h2 class="section-title">Weekly Statistics</h2>
    <div class="stats-grid">
      <div class="stat-card">
        <div class="stat-value">%d</div>
        <div class="stat-label">Surveys Completed</div>
      </div>
      <div class="stat-card">
        <div class="stat-value">%d</div>
        <div class="stat-label">Camera Checks</div>
      </div>
      <div class="stat-card">
        <div class="stat-value">%d%%</div>
        <div class="stat-label">Completion Rate</div>
      </div>
      <div class="stat-card">
        <div class="stat-value">%.1f</div>
        <div class="stat-label">Avg Energy Level</div>
      </div>
    </div>
  </div>

  <div class="section">
    <h2 class="section-title">Mood Analysis</h2>
    <div class="info-grid">
      <div class="info-item">
        <div class="info-label">Survey Mood Pattern</div>
        <div class="info-value" style="text-transform: capitalize;">%s</div>
      </div>
      <div class="info-item">
        <div class="info-label">Camera Detected Mood</div>
        <div class="info-value" style="text-transform: capitalize;">%s</div>
      </div>
    </div>
  </div>
`, stats.SurveysCompleted, stats.CameraMoodsCompleted, stats.CompletionRate, stats.AverageEnergyLevel,
		dominantMood, dominantCameraMood)
	fmt.Fprintf(&b, `
  <div class="section">
    <h2 class="section-title">Daily Activities</h2>
    <table>
      <thead>
        <tr>
          <th>Date</th>
          <th>Survey Status</th>
          <th>Camera Check</th>
          <th>Mood</th>
          <th>Energy Level</th>
        </tr>
      </thead>
      <tbody>
%s      </tbody>
    </table>
  </div>

  <div class="section">
    <h2 class="section-title">Report Summary</h2>
    <p style="margin-bottom: 15px;">
      This weekly report provides a comprehensive overview of %s's
      mood and wellness tracking activities. The report includes daily survey responses,
      camera-based mood detection results, and key health metrics.
    </p>
    <p style="margin-bottom: 15px;">
      <strong>Tracking Consistency:</strong> %d%% of activities were completed
      this week, demonstrating %s engagement with the wellness tracking program.
    </p>
    <p>
      <strong>Next Steps:</strong> Continue daily tracking for better trend analysis.
      Guardian will receive automated weekly email reports for ongoing monitoring and care coordination.
    </p>
  </div>

  <div class="footer">
    <p>Generated by Elder Mood Mirror - Your Daily Wellness Companion</p>
    <p>Report Date: %s</p>
  </div>
</body>
</html>
`, tableRows.String(), orNA(data.ElderName), stats.CompletionRate, engagementWord(stats.CompletionRate), formatLongDate(today))
	return b.String()
}
