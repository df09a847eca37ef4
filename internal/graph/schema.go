package graph

import (
	"fmt"
	"regexp"
	"strings"

	"dottie-backend/pkg/apperrors"
)

// Known node labels. Labels outside this set may still be created (the
// schema is open for experimentation) but get no required-field validation.
const (
	LabelSymptom            = "Symptom"
	LabelCondition          = "Condition"
	LabelNormalRange        = "NormalRange"
	LabelEducationalContent = "EducationalContent"
	LabelCause              = "Cause"
	LabelAbnormality        = "Abnormality"
	LabelUser               = "User"
)

// Relationship types form a closed vocabulary: CreateRelationship rejects
// anything outside this set before the type is interpolated into a query.
const (
	RelCauses         = "CAUSES"
	RelRelatedTo      = "RELATED_TO"
	RelRelevantTo     = "RELEVANT_TO"
	RelMonitors       = "MONITORS"
	RelIsSymptomOf    = "IS_SYMPTOM_OF"
	RelIndicates      = "INDICATES"
	RelLinkedTo       = "LINKED_TO"
	RelContextualizes = "CONTEXTUALIZES"
)

// requiredProperties lists the fields a node of a known label must carry
var requiredProperties = map[string][]string{
	LabelSymptom:            {"name"},
	LabelCondition:          {"name", "severity", "action"},
	LabelNormalRange:        {"name", "min", "max", "unit"},
	LabelEducationalContent: {"type", "url", "title", "source"},
	LabelCause:              {"name"},
}

var knownRelationships = map[string]bool{
	RelCauses:         true,
	RelRelatedTo:      true,
	RelRelevantTo:     true,
	RelMonitors:       true,
	RelIsSymptomOf:    true,
	RelIndicates:      true,
	RelLinkedTo:       true,
	RelContextualizes: true,
}

// identifierPattern matches safe Cypher identifiers. Labels and property
// keys are interpolated into query text, so they must never carry anything
// beyond a plain identifier even when they come from internal callers.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func validateLabel(label string, properties map[string]any) error {
	if !identifierPattern.MatchString(label) {
		return apperrors.Validation(fmt.Sprintf("invalid label %q", label), nil)
	}
	required, known := requiredProperties[label]
	if !known {
		return nil
	}
	var missing []string
	for _, field := range required {
		if _, ok := properties[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return apperrors.Validation(
			fmt.Sprintf("missing required fields for %s: %s", label, strings.Join(missing, ", ")), nil)
	}
	return nil
}

func validateRelationship(relType string) error {
	if !knownRelationships[relType] {
		return apperrors.Validation(fmt.Sprintf("unknown relationship type %q", relType), nil)
	}
	return nil
}

func validatePropertyKeys(properties map[string]any) error {
	for key := range properties {
		if !identifierPattern.MatchString(key) {
			return apperrors.Validation(fmt.Sprintf("invalid property key %q", key), nil)
		}
	}
	return nil
}
