// Package rules evaluates menstrual-cycle observations against fixed
// clinical thresholds. The functions are pure: no storage, no sessions.
package rules

import "strings"

// Classification statuses
const (
	StatusNormal   = "Normal"
	StatusAbnormal = "Abnormal"
)

// Recommendation strings returned with a classification
const (
	RecommendationNone    = "No action needed"
	RecommendationConsult = "Consult a healthcare provider for further evaluation."
)

// Abnormality flag names, one per rule
const (
	FlagPolymenorrhea      = "Polymenorrhea"
	FlagOligomenorrhea     = "Oligomenorrhea"
	FlagAbnormalDuration   = "Abnormal duration"
	FlagAmenorrhea         = "Amenorrhea"
	FlagMenorrhagia        = "Menorrhagia"
	FlagConcerningSymptoms = "Concerning symptoms"
)

// Normal bands, boundaries inclusive
const (
	minCycleLength   = 21
	maxCycleLength   = 45
	minCycleDuration = 3
	maxCycleDuration = 7
)

var concerningSymptoms = []string{"severe pain", "heavy bleeding", "missed cycles"}

// Observation is one cycle report to classify
type Observation struct {
	CycleLength   int
	CycleDuration int
	Symptoms      []string
	MissedPeriods int
}

// Result is the outcome of classifying a single observation
type Result struct {
	Status        string   `json:"status"`
	Abnormalities []string `json:"abnormalities"`
	Recommendation string  `json:"recommendation"`
}

// rule pairs a flag name with its predicate. Rules are kept in an ordered
// slice so evaluation order, and with it the order of reported
// abnormalities, is explicit.
type rule struct {
	flag  string
	match func(obs Observation) bool
}

var cycleRules = []rule{
	{FlagPolymenorrhea, func(o Observation) bool {
		return o.CycleLength < minCycleLength
	}},
	{FlagOligomenorrhea, func(o Observation) bool {
		return o.CycleLength > maxCycleLength
	}},
	{FlagAbnormalDuration, func(o Observation) bool {
		return o.CycleDuration < minCycleDuration || o.CycleDuration > maxCycleDuration
	}},
	{FlagAmenorrhea, func(o Observation) bool {
		return o.MissedPeriods > 3
	}},
	{FlagMenorrhagia, func(o Observation) bool {
		return hasSymptom(o.Symptoms, "heavy bleeding") && o.CycleDuration > maxCycleDuration
	}},
	{FlagConcerningSymptoms, func(o Observation) bool {
		for _, s := range concerningSymptoms {
			if hasSymptom(o.Symptoms, s) {
				return true
			}
		}
		return false
	}},
}

// ClassifyCycle evaluates every rule independently and reports all matches.
// Boundary values (length 21 or 45, duration 3 or 7) are Normal.
func ClassifyCycle(obs Observation) Result {
	abnormalities := []string{}
	for _, r := range cycleRules {
		if r.match(obs) {
			abnormalities = append(abnormalities, r.flag)
		}
	}

	if len(abnormalities) == 0 {
		return Result{
			Status:         StatusNormal,
			Abnormalities:  []string{},
			Recommendation: RecommendationNone,
		}
	}

	return Result{
		Status:         StatusAbnormal,
		Abnormalities:  abnormalities,
		Recommendation: RecommendationConsult,
	}
}

// RecommendationForSeverity maps a matched condition's severity to advice
func RecommendationForSeverity(severity string) string {
	if strings.EqualFold(severity, "high") {
		return "Seek medical attention immediately."
	}
	return "Monitor and consult a doctor if persists."
}

func hasSymptom(symptoms []string, name string) bool {
	for _, s := range symptoms {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}
