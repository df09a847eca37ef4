package analysis

import "strings"

// keywordEntry maps a phrase that may appear in a free-text description to
// the canonical symptom name used in the graph. Matching is plain
// lowercase substring containment; this is keyword spotting, not NLP.
type keywordEntry struct {
	phrase  string
	symptom string
}

var symptomVocabulary = []keywordEntry{
	{"severe cramps", "Dysmenorrhea"},
	{"cramps", "Dysmenorrhea"},
	{"painful period", "Dysmenorrhea"},
	{"migraine", "Menstrual Migraine"},
	{"headache", "Menstrual Migraine"},
	{"heavy bleeding", "heavy bleeding"},
	{"heavy flow", "heavy bleeding"},
	{"severe pain", "severe pain"},
	{"missed period", "missed cycles"},
	{"missed cycles", "missed cycles"},
	{"no period", "missed cycles"},
}

// ExtractSymptoms returns the canonical symptom names mentioned in a
// description, in vocabulary order, without duplicates. An unrecognized
// description yields an empty slice.
func ExtractSymptoms(description string) []string {
	lowered := strings.ToLower(description)

	seen := make(map[string]bool)
	symptoms := []string{}
	for _, entry := range symptomVocabulary {
		if !strings.Contains(lowered, entry.phrase) {
			continue
		}
		if seen[entry.symptom] {
			continue
		}
		seen[entry.symptom] = true
		symptoms = append(symptoms, entry.symptom)
	}

	return symptoms
}
