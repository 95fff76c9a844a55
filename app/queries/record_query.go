package queries

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/eldermood/mood-mirror-backend/app/models"
	"github.com/eldermood/mood-mirror-backend/pkg/database"
	"github.com/eldermood/mood-mirror-backend/pkg/utils"
	"github.com/google/uuid"
)

const (
	KindSurvey = "survey"
	KindCamera = "camera"
)

// RecordQueries owns the key namespace of the record store. All JSON
// (un)marshalling happens at this boundary.
type RecordQueries struct {
	KV database.Store
}

func basicKey(userID uuid.UUID) string   { return fmt.Sprintf("user:%s:basic", userID) }
func profileKey(userID uuid.UUID) string { return fmt.Sprintf("user:%s:profile", userID) }

func surveyKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("user:%s:survey:%s", userID, date)
}

func cameraKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("user:%s:camera:%s", userID, date)
}

func completionKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("user:%s:completion:%s", userID, date)
}

func reportKey(userID uuid.UUID, weekEnd string) string {
	return fmt.Sprintf("user:%s:report:%s", userID, weekEnd)
}

func messageKey(patientID, messageID string) string {
	return fmt.Sprintf("message:%s:%s", patientID, messageID)
}

func conversationKey(patientID string) string {
	return fmt.Sprintf("conversation:%s:messages", patientID)
}

func (q *RecordQueries) setJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return q.KV.Set(key, data)
}

// getJSON unmarshals the value at key into out and reports whether the key
// existed.
func (q *RecordQueries) getJSON(key string, out interface{}) (bool, error) {
	data, err := q.KV.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (q *RecordQueries) SaveBasicInfo(userID uuid.UUID, info *models.BasicInfo) error {
	return q.setJSON(basicKey(userID), info)
}

func (q *RecordQueries) GetBasicInfo(userID uuid.UUID) (*models.BasicInfo, error) {
	info := &models.BasicInfo{}
	ok, err := q.getJSON(basicKey(userID), info)
	if err != nil || !ok {
		return nil, err
	}
	return info, nil
}

func (q *RecordQueries) SaveElderProfile(userID uuid.UUID, p *models.ElderProfile) error {
	p.Role = utils.RoleElder
	p.UpdatedAt = time.Now()
	return q.setJSON(profileKey(userID), p)
}

// GetElderProfile returns nil when the user has no profile or the stored
// profile belongs to another role. Legacy profiles without a role marker
// count as elder profiles.
func (q *RecordQueries) GetElderProfile(userID uuid.UUID) (*models.ElderProfile, error) {
	p := &models.ElderProfile{}
	ok, err := q.getJSON(profileKey(userID), p)
	if err != nil || !ok {
		return nil, err
	}
	if p.Role != "" && p.Role != utils.RoleElder {
		return nil, nil
	}
	return p, nil
}

func (q *RecordQueries) SaveDoctorProfile(userID uuid.UUID, p *models.DoctorProfile) error {
	p.Role = utils.RoleDoctor
	p.UpdatedAt = time.Now()
	return q.setJSON(profileKey(userID), p)
}

func (q *RecordQueries) GetDoctorProfile(userID uuid.UUID) (*models.DoctorProfile, error) {
	p := &models.DoctorProfile{}
	ok, err := q.getJSON(profileKey(userID), p)
	if err != nil || !ok {
		return nil, err
	}
	if p.Role != utils.RoleDoctor {
		return nil, nil
	}
	return p, nil
}

// GetProfileRole returns the raw stored profile plus its role marker, or
// ("", nil, nil) when no profile exists.
func (q *RecordQueries) GetProfileRole(userID uuid.UUID) (string, json.RawMessage, error) {
	data, err := q.KV.Get(profileKey(userID))
	if err != nil || data == nil {
		return "", nil, err
	}
	marker := struct {
		Role string `json:"role"`
	}{}
	if err := json.Unmarshal(data, &marker); err != nil {
		return "", nil, err
	}
	role := marker.Role
	if role == "" {
		role = utils.RoleElder
	}
	return role, json.RawMessage(data), nil
}

func (q *RecordQueries) SaveSurvey(userID uuid.UUID, rec models.MoodSurveyRecord) error {
	return q.setJSON(surveyKey(userID, rec.Date), rec)
}

// GetSurveys returns every survey of the user in insertion order of first
// submission.
func (q *RecordQueries) GetSurveys(userID uuid.UUID) ([]models.MoodSurveyRecord, error) {
	values, err := q.KV.GetByPrefix(fmt.Sprintf("user:%s:survey:", userID))
	if err != nil {
		return nil, err
	}
	var surveys []models.MoodSurveyRecord
	for _, v := range values {
		var s models.MoodSurveyRecord
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		surveys = append(surveys, s)
	}
	return surveys, nil
}

func (q *RecordQueries) SaveCameraMood(userID uuid.UUID, rec models.CameraMoodRecord) error {
	return q.setJSON(cameraKey(userID, rec.Date), rec)
}

func (q *RecordQueries) GetCameraMoods(userID uuid.UUID) ([]models.CameraMoodRecord, error) {
	values, err := q.KV.GetByPrefix(fmt.Sprintf("user:%s:camera:", userID))
	if err != nil {
		return nil, err
	}
	var moods []models.CameraMoodRecord
	for _, v := range values {
		var m models.CameraMoodRecord
		if err := json.Unmarshal(v, &m); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, nil
}

// MarkCompleted merges the flag for one record kind into the day's
// completion record. The existing state is re-read immediately before the
// write so that near-simultaneous submissions of different kinds do not
// drop each other's flag. Best effort only: the store offers no
// compare-and-swap.
func (q *RecordQueries) MarkCompleted(userID uuid.UUID, date, kind string) (models.CompletionStatus, error) {
	status := models.CompletionStatus{}
	if _, err := q.getJSON(completionKey(userID, date), &status); err != nil {
		return status, err
	}

	now := time.Now()
	switch kind {
	case KindSurvey:
		status.SurveyCompleted = true
		status.SurveyCompletedAt = &now
	case KindCamera:
		status.CameraCompleted = true
		status.CameraCompletedAt = &now
	default:
		return status, fmt.Errorf("unknown completion kind %q", kind)
	}

	if err := q.setJSON(completionKey(userID, date), status); err != nil {
		return status, err
	}
	return status, nil
}

// GetCompletion returns the day's completion record, defaulting to both
// flags false when none exists.
func (q *RecordQueries) GetCompletion(userID uuid.UUID, date string) (models.CompletionStatus, error) {
	status := models.CompletionStatus{}
	if _, err := q.getJSON(completionKey(userID, date), &status); err != nil {
		return models.CompletionStatus{}, err
	}
	return status, nil
}

// inRange relies on ISO date strings sorting lexically the same as
// chronologically.
func inRange(date, start, end string) bool {
	return date >= start && date <= end
}

// BuildWeeklyReport scans all of the user's survey and camera records,
// filters them to [startDate, endDate] and computes the statistics block.
// Read-only; a store failure aborts with no partial result.
func (q *RecordQueries) BuildWeeklyReport(userID uuid.UUID, startDate, endDate string) (models.WeeklyReportData, error) {
	data := models.WeeklyReportData{
		ElderName:   "Unknown",
		WeekStart:   startDate,
		WeekEnd:     endDate,
		Surveys:     []models.MoodSurveyRecord{},
		CameraMoods: []models.CameraMoodRecord{},
	}

	basic, err := q.GetBasicInfo(userID)
	if err != nil {
		return data, err
	}
	if basic != nil {
		data.ElderName = basic.Name
		data.ElderEmail = basic.Email
	}

	elder, err := q.GetElderProfile(userID)
	if err != nil {
		return data, err
	}
	if elder != nil {
		data.ElderInfo = elder
		data.GuardianEmail = elder.GuardianEmail
		data.GuardianName = elder.GuardianName
		if elder.Name != "" {
			data.ElderName = elder.Name
		}
	}

	allSurveys, err := q.GetSurveys(userID)
	if err != nil {
		return data, err
	}
	for _, s := range allSurveys {
		if inRange(s.Date, startDate, endDate) {
			data.Surveys = append(data.Surveys, s)
		}
	}

	allMoods, err := q.GetCameraMoods(userID)
	if err != nil {
		return data, err
	}
	for _, m := range allMoods {
		if inRange(m.Date, startDate, endDate) {
			data.CameraMoods = append(data.CameraMoods, m)
		}
	}

	var energies []*float64
	var surveyMoods []string
	for _, s := range data.Surveys {
		energies = append(energies, s.EnergyLevel)
		surveyMoods = append(surveyMoods, s.OverallMood)
	}
	var cameraMoods []string
	for _, m := range data.CameraMoods {
		cameraMoods = append(cameraMoods, m.PrimaryMood)
	}

	data.Statistics = models.WeeklyStatistics{
		TotalDays:            7,
		SurveysCompleted:     len(data.Surveys),
		CameraMoodsCompleted: len(data.CameraMoods),
		CompletionRate:       utils.CompletionRate(len(data.Surveys), len(data.CameraMoods)),
		AverageEnergyLevel:   utils.AverageEnergy(energies),
		DominantMood:         utils.DominantMood(surveyMoods),
		DominantCameraMood:   utils.DominantMood(cameraMoods),
	}
	return data, nil
}

func (q *RecordQueries) SaveReportReceipt(userID uuid.UUID, weekEnd string, receipt models.ReportSendReceipt) error {
	return q.setJSON(reportKey(userID, weekEnd), receipt)
}

func (q *RecordQueries) GetReportReceipt(userID uuid.UUID, weekEnd string) (*models.ReportSendReceipt, error) {
	r := &models.ReportSendReceipt{}
	ok, err := q.getJSON(reportKey(userID, weekEnd), r)
	if err != nil || !ok {
		return nil, err
	}
	return r, nil
}

// SaveGuardianMessage stores the message and appends its id to the
// patient's conversation index.
func (q *RecordQueries) SaveGuardianMessage(msg models.GuardianMessage) error {
	if err := q.setJSON(messageKey(msg.PatientID, msg.ID), msg); err != nil {
		return err
	}
	var ids []string
	if _, err := q.getJSON(conversationKey(msg.PatientID), &ids); err != nil {
		return err
	}
	ids = append(ids, msg.ID)
	return q.setJSON(conversationKey(msg.PatientID), ids)
}

// GetGuardianMessages returns the patient's conversation ordered oldest
// first.
func (q *RecordQueries) GetGuardianMessages(patientID string) ([]models.GuardianMessage, error) {
	var ids []string
	if _, err := q.getJSON(conversationKey(patientID), &ids); err != nil {
		return nil, err
	}
	messages := make([]models.GuardianMessage, 0, len(ids))
	for _, id := range ids {
		var msg models.GuardianMessage
		ok, err := q.getJSON(messageKey(patientID, id), &msg)
		if err != nil {
			return nil, err
		}
		if ok {
			messages = append(messages, msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}
