package models

import "time"

type WeeklyStatistics struct {
	TotalDays            int     `json:"totalDays"`
	SurveysCompleted     int     `json:"surveysCompleted"`
	CameraMoodsCompleted int     `json:"cameraMoodsCompleted"`
	CompletionRate       int     `json:"completionRate"`
	AverageEnergyLevel   float64 `json:"averageEnergyLevel"`
	DominantMood         string  `json:"dominantMood"`
	DominantCameraMood   string  `json:"dominantCameraMood"`
}

// WeeklyReportData is computed on demand and never persisted.
type WeeklyReportData struct {
	ElderName     string             `json:"elderName"`
	ElderEmail    string             `json:"elderEmail"`
	GuardianEmail string             `json:"guardianEmail"`
	GuardianName  string             `json:"guardianName"`
	WeekStart     string             `json:"weekStart"`
	WeekEnd       string             `json:"weekEnd"`
	Statistics    WeeklyStatistics   `json:"statistics"`
	Surveys       []MoodSurveyRecord `json:"surveys"`
	CameraMoods   []CameraMoodRecord `json:"cameraMoods"`
	ElderInfo     *ElderProfile      `json:"elderInfo"`
}

// ReportSendReceipt is the durable trace of a dispatched weekly report,
// keyed by (user, weekEnd) and overwritten on repeated sends for the same
// week.
type ReportSendReceipt struct {
	SentAt        time.Time        `json:"sentAt"`
	GuardianEmail string           `json:"guardianEmail"`
	WeekStart     string           `json:"weekStart"`
	WeekEnd       string           `json:"weekEnd"`
	Statistics    WeeklyStatistics `json:"statistics"`
	EmailID       string           `json:"emailId,omitempty"`
}
