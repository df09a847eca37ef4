package graph

import (
	"testing"

	"dottie-backend/pkg/apperrors"
)

func TestValidateLabel_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		props   map[string]any
		wantErr bool
	}{
		{
			name:  "symptom with name",
			label: LabelSymptom,
			props: map[string]any{"name": "Dysmenorrhea"},
		},
		{
			name:    "symptom missing name",
			label:   LabelSymptom,
			props:   map[string]any{"description": "cramps"},
			wantErr: true,
		},
		{
			name:  "condition complete",
			label: LabelCondition,
			props: map[string]any{"name": "Menorrhagia", "severity": "high", "action": "see a doctor"},
		},
		{
			name:    "condition missing action",
			label:   LabelCondition,
			props:   map[string]any{"name": "Menorrhagia", "severity": "high"},
			wantErr: true,
		},
		{
			name:  "normal range complete",
			label: LabelNormalRange,
			props: map[string]any{"name": "CycleLength", "min": 21, "max": 45, "unit": "days"},
		},
		{
			name:    "educational content missing source",
			label:   LabelEducationalContent,
			props:   map[string]any{"type": "Article", "url": "https://x", "title": "t"},
			wantErr: true,
		},
		{
			name:  "unknown label passes without field validation",
			label: "Annotation",
			props: map[string]any{"whatever": true},
		},
		{
			name:    "label with invalid characters",
			label:   "Bad Label) DETACH DELETE",
			props:   map[string]any{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLabel(tt.label, tt.props)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && err != nil && !apperrors.Is(err, apperrors.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateRelationship(t *testing.T) {
	for _, relType := range []string{
		RelCauses, RelRelatedTo, RelRelevantTo, RelMonitors,
		RelIsSymptomOf, RelIndicates, RelLinkedTo, RelContextualizes,
	} {
		if err := validateRelationship(relType); err != nil {
			t.Errorf("known relationship %s rejected: %v", relType, err)
		}
	}

	for _, relType := range []string{"FRIENDS_WITH", "", "LINKED_TO]->(x) DETACH DELETE"} {
		if err := validateRelationship(relType); err == nil {
			t.Errorf("unknown relationship %q accepted", relType)
		}
	}
}

func TestValidatePropertyKeys(t *testing.T) {
	if err := validatePropertyKeys(map[string]any{"name": "x", "min_value": 1}); err != nil {
		t.Errorf("valid keys rejected: %v", err)
	}
	if err := validatePropertyKeys(map[string]any{"na me": "x"}); err == nil {
		t.Error("key with space accepted")
	}
	if err := validatePropertyKeys(map[string]any{"name: 'x'} ) DETACH DELETE (n": 1}); err == nil {
		t.Error("injection-shaped key accepted")
	}
}
