package utils

import "math"

// NoData is emitted for the dominant mood of an empty record range.
const NoData = "No data"

// weeklyMax is 2 record kinds x 7 days. The denominator stays fixed
// whatever the requested range length.
const weeklyMax = 14

// CompletionRate returns the integer percentage of completed check-ins over
// the weekly maximum.
func CompletionRate(surveys, cameraMoods int) int {
	return int(math.Round(float64(surveys+cameraMoods) / weeklyMax * 100))
}

// AverageEnergy averages the numeric energy levels that are present, rounded
// to one decimal. Records without the field count in neither numerator nor
// denominator; zero usable values yields 0.
func AverageEnergy(levels []*float64) float64 {
	sum := 0.0
	n := 0
	for _, l := range levels {
		if l == nil {
			continue
		}
		sum += *l
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}

// DominantMood returns the most frequent non-empty mood. Ties go to the mood
// encountered first in scan order. An empty slice yields NoData; a non-empty
// slice whose records all lack the field yields "neutral".
func DominantMood(moods []string) string {
	if len(moods) == 0 {
		return NoData
	}

	counts := map[string]int{}
	var seen []string
	for _, m := range moods {
		if m == "" {
			continue
		}
		if _, ok := counts[m]; !ok {
			seen = append(seen, m)
		}
		counts[m]++
	}

	dominant := "neutral"
	max := 0
	for _, m := range seen {
		if counts[m] > max {
			max = counts[m]
			dominant = m
		}
	}
	return dominant
}
