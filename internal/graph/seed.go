package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// InitializeGraph wipes the database and recreates it from the given seed.
// Destructive; intended for setup tooling and tests, never request paths.
func (r *Repository) InitializeGraph(ctx context.Context, seed SeedData) error {
	if err := r.ClearDatabase(ctx); err != nil {
		return err
	}

	for _, s := range seed.Symptoms {
		if err := r.CreateNode(ctx, LabelSymptom, map[string]any{"name": s.Name}); err != nil {
			return fmt.Errorf("seeding symptom %q: %w", s.Name, err)
		}
	}
	for _, c := range seed.Conditions {
		props := map[string]any{"name": c.Name, "severity": c.Severity, "action": c.Action}
		if err := r.CreateNode(ctx, LabelCondition, props); err != nil {
			return fmt.Errorf("seeding condition %q: %w", c.Name, err)
		}
	}
	for _, nr := range seed.NormalRanges {
		props := map[string]any{"name": nr.Name, "min": nr.Min, "max": nr.Max, "unit": nr.Unit}
		if err := r.CreateNode(ctx, LabelNormalRange, props); err != nil {
			return fmt.Errorf("seeding normal range %q: %w", nr.Name, err)
		}
	}
	for _, e := range seed.Content {
		props := map[string]any{"type": e.Type, "url": e.URL, "title": e.Title, "source": e.Source}
		if err := r.CreateNode(ctx, LabelEducationalContent, props); err != nil {
			return fmt.Errorf("seeding content %q: %w", e.URL, err)
		}
	}
	for _, k := range seed.Causes {
		if err := r.CreateNode(ctx, LabelCause, map[string]any{"name": k.Name}); err != nil {
			return fmt.Errorf("seeding cause %q: %w", k.Name, err)
		}
	}

	for _, rel := range seed.Relationships {
		err := r.CreateRelationship(ctx, rel.FromLabel, rel.FromProps, rel.ToLabel, rel.ToProps, rel.Type, nil)
		if err != nil {
			return fmt.Errorf("seeding %s relationship: %w", rel.Type, err)
		}
	}

	r.logger.Info("Graph initialized from seed data")
	return nil
}

// LoadSeed reads a SeedData snapshot from a JSON file. Entries may leave
// fields like content titles empty; tooling can fill those in afterwards.
func LoadSeed(path string) (SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedData{}, fmt.Errorf("reading seed file: %w", err)
	}

	var seed SeedData
	if err := json.Unmarshal(raw, &seed); err != nil {
		return SeedData{}, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return seed, nil
}

// DefaultSeed returns the built-in starter graph: a handful of symptoms and
// conditions from the ACOG guideline extract plus the normal cycle bands.
func DefaultSeed() SeedData {
	return SeedData{
		Symptoms: []SeedSymptom{
			{Name: "Dysmenorrhea"},
			{Name: "Menstrual Migraine"},
			{Name: "heavy bleeding"},
			{Name: "severe pain"},
			{Name: "missed cycles"},
		},
		Conditions: []SeedCondition{
			{Name: "Menorrhagia", Severity: "high", Action: "Seek Medical Attention"},
			{Name: "Oligomenorrhea", Severity: "medium", Action: "Monitor and consult a doctor if persists"},
			{Name: "Polymenorrhea", Severity: "medium", Action: "Monitor and consult a doctor if persists"},
			{Name: "Amenorrhea", Severity: "high", Action: "Seek Medical Attention"},
		},
		NormalRanges: []NormalRange{
			{Name: RangeCycleLength, Min: 21, Max: 45, Unit: "days"},
			{Name: RangeCycleDuration, Min: 3, Max: 7, Unit: "days"},
		},
		Content: []SeedContent{
			{Type: "Article", URL: "https://example.com/article1", Title: "Understanding Menorrhagia", Source: "ACOG"},
			{Type: "Article", URL: "https://example.com/article2", Title: "Irregular Cycles Explained", Source: "ACOG"},
		},
		Causes: []SeedCause{
			{Name: "Hormonal imbalance"},
			{Name: "Uterine fibroids"},
		},
		Relationships: []SeedRelationship{
			{
				FromLabel: LabelSymptom, FromProps: map[string]any{"name": "Dysmenorrhea"},
				ToLabel: LabelCondition, ToProps: map[string]any{"name": "Menorrhagia"},
				Type: RelIsSymptomOf,
			},
			{
				FromLabel: LabelSymptom, FromProps: map[string]any{"name": "heavy bleeding"},
				ToLabel: LabelCondition, ToProps: map[string]any{"name": "Menorrhagia"},
				Type: RelIsSymptomOf,
			},
			{
				FromLabel: LabelSymptom, FromProps: map[string]any{"name": "missed cycles"},
				ToLabel: LabelCondition, ToProps: map[string]any{"name": "Amenorrhea"},
				Type: RelIsSymptomOf,
			},
			{
				FromLabel: LabelCondition, FromProps: map[string]any{"name": "Menorrhagia"},
				ToLabel: LabelEducationalContent, ToProps: map[string]any{"url": "https://example.com/article1"},
				Type: RelLinkedTo,
			},
			{
				FromLabel: LabelCondition, FromProps: map[string]any{"name": "Oligomenorrhea"},
				ToLabel: LabelEducationalContent, ToProps: map[string]any{"url": "https://example.com/article2"},
				Type: RelLinkedTo,
			},
			{
				FromLabel: LabelCause, FromProps: map[string]any{"name": "Hormonal imbalance"},
				ToLabel: LabelCondition, ToProps: map[string]any{"name": "Oligomenorrhea"},
				Type: RelCauses,
			},
			{
				FromLabel: LabelCause, FromProps: map[string]any{"name": "Uterine fibroids"},
				ToLabel: LabelCondition, ToProps: map[string]any{"name": "Menorrhagia"},
				Type: RelCauses,
			},
		},
	}
}
