package normalizer

import "strings"

// TimeRange is an inclusive time-of-day window in 24-hour HHMM integer
// encoding. A range with Start > End wraps midnight.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains tests HHMM membership, special-casing wraparound ranges: for
// Start > End the test is t >= Start OR t <= End, not a normal interval.
func (r TimeRange) Contains(hhmm int) bool {
	if r.Start > r.End {
		return hhmm >= r.Start || hhmm <= r.End
	}
	return hhmm >= r.Start && hhmm <= r.End
}

var timeOfDayRanges = map[string]TimeRange{
	"morning":   {Start: 600, End: 1159},
	"afternoon": {Start: 1200, End: 1759},
	"evening":   {Start: 1800, End: 2159},
	"night":     {Start: 2200, End: 559}, // wraps midnight
}

var timeOfDaySynonyms = map[string]string{
	"mañana":    "morning",
	"manana":    "morning",
	"temprano":  "morning",
	"mediodía":  "afternoon",
	"mediodia":  "afternoon",
	"tarde":     "afternoon",
	"noche":     "evening",
	"madrugada": "night",
}

// TimeOfDayRange maps a time-of-day preference word onto its HHMM window.
func TimeOfDayRange(pref string) (TimeRange, bool) {
	key, ok := CanonicalTimeOfDay(pref)
	if !ok {
		return TimeRange{}, false
	}
	return timeOfDayRanges[key], true
}

// CanonicalTimeOfDay collapses a preference word, Spanish synonyms included,
// onto its canonical key.
func CanonicalTimeOfDay(pref string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(pref))
	if canonical, ok := timeOfDaySynonyms[key]; ok {
		return canonical, true
	}
	if _, ok := timeOfDayRanges[key]; ok {
		return key, true
	}
	return "", false
}
