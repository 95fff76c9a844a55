package utils

import "time"

const DateLayout = "2006-01-02"

// Today returns the current date in the server's local clock as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// WeekStart returns the Monday on or before ref as YYYY-MM-DD. Sunday counts
// as the seventh day of the running week.
func WeekStart(ref time.Time) string {
	if wd := int(ref.Weekday()); wd == 0 {
		ref = ref.AddDate(0, 0, -6)
	} else {
		ref = ref.AddDate(0, 0, -(wd - 1))
	}
	return ref.Format(DateLayout)
}
