package models

import "time"

// MoodSurveyRecord is one day's questionnaire for one user. At most one per
// (user, date); a re-submission overwrites the whole record.
type MoodSurveyRecord struct {
	Date              string   `json:"date"`
	Breakfast         string   `json:"breakfast,omitempty"`
	Dinner            string   `json:"dinner,omitempty"`
	Exercise          string   `json:"exercise,omitempty"`
	Tablets           string   `json:"tablets,omitempty"`
	CorrectTimeDose   string   `json:"correct_time_dose,omitempty"`
	SleepQuality      string   `json:"sleep_quality,omitempty"`
	OverallMood       string   `json:"overall_mood,omitempty"`
	WaterIntake       string   `json:"water_intake,omitempty"`
	SocialInteraction string   `json:"social_interaction,omitempty"`
	EnergyLevel       *float64 `json:"energy_level,omitempty"`
	Pain              string   `json:"pain,omitempty"`
	AdditionalNotes   string   `json:"additional_notes,omitempty"`

	CompletedAt time.Time `json:"completedAt"`
}

type SubmitMoodSurveyRequest struct {
	Breakfast         string   `json:"breakfast,omitempty"`
	Dinner            string   `json:"dinner,omitempty"`
	Exercise          string   `json:"exercise,omitempty"`
	Tablets           string   `json:"tablets,omitempty"`
	CorrectTimeDose   string   `json:"correct_time_dose,omitempty"`
	SleepQuality      string   `json:"sleep_quality,omitempty" validate:"omitempty,oneof=good average poor"`
	OverallMood       string   `json:"overall_mood" validate:"required,oneof=happy calm anxious sad"`
	WaterIntake       string   `json:"water_intake,omitempty"`
	SocialInteraction string   `json:"social_interaction,omitempty"`
	EnergyLevel       *float64 `json:"energy_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	Pain              string   `json:"pain,omitempty"`
	AdditionalNotes   string   `json:"additional_notes,omitempty"`
}

// CameraMoodRecord is one day's facial-expression snapshot. The expressions
// map carries the model's independent per-class percentages; they are not
// required to sum to 100.
type CameraMoodRecord struct {
	Date        string             `json:"date"`
	PrimaryMood string             `json:"primaryMood"`
	Confidence  float64            `json:"confidence"`
	Expressions map[string]float64 `json:"expressions,omitempty"`

	CompletedAt time.Time `json:"completedAt"`
}

type SubmitCameraMoodRequest struct {
	PrimaryMood string             `json:"primaryMood" validate:"required,oneof=happy sad angry fearful disgusted surprised neutral"`
	Confidence  float64            `json:"confidence" validate:"gte=0,lte=100"`
	Expressions map[string]float64 `json:"expressions,omitempty"`
}

// CompletionStatus is the derived per-day flag record. It is a cache, never
// a source of truth: it must stay re-derivable from the presence of the
// day's survey and camera records.
type CompletionStatus struct {
	SurveyCompleted   bool       `json:"surveyCompleted"`
	CameraCompleted   bool       `json:"cameraCompleted"`
	SurveyCompletedAt *time.Time `json:"surveyCompletedAt,omitempty"`
	CameraCompletedAt *time.Time `json:"cameraCompletedAt,omitempty"`
}
