package graph

// ConditionMatch is one Symptom→Condition traversal hit. The same condition
// appears once per matching symptom edge; callers that want uniqueness have
// to deduplicate themselves.
type ConditionMatch struct {
	Condition string `json:"condition"`
	Severity  string `json:"severity"`
	Action    string `json:"action"`
}

// ContentRef points at a piece of educational content linked to a condition
type ContentRef struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Cause is a known cause of a condition
type Cause struct {
	Name      string `json:"name"`
	Condition string `json:"condition"`
}

// NormalRange is the physiologically normal band for a measured cycle attribute
type NormalRange struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Unit string `json:"unit"`
}

// SeedSymptom, SeedCondition, SeedContent and SeedRelationship describe the
// initial graph contents consumed by InitializeGraph.
type SeedSymptom struct {
	Name string `json:"name"`
}

type SeedCondition struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Action   string `json:"action"`
}

type SeedContent struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

type SeedCause struct {
	Name string `json:"name"`
}

type SeedRelationship struct {
	FromLabel string         `json:"from_label"`
	FromProps map[string]any `json:"from_props"`
	ToLabel   string         `json:"to_label"`
	ToProps   map[string]any `json:"to_props"`
	Type      string         `json:"type"`
}

// SeedData is a full graph snapshot for reset-and-reseed
type SeedData struct {
	Symptoms      []SeedSymptom      `json:"symptoms"`
	Conditions    []SeedCondition    `json:"conditions"`
	NormalRanges  []NormalRange      `json:"normal_ranges"`
	Content       []SeedContent      `json:"content"`
	Causes        []SeedCause        `json:"causes"`
	Relationships []SeedRelationship `json:"relationships"`
}
