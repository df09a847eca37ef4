package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"dottie-backend/internal/graph"
	"dottie-backend/internal/rules"
	"dottie-backend/pkg/apperrors"
)

// Mock implementations for testing

type mockGraphStore struct {
	withinRanges    bool
	rangesErr       error
	conditions      []graph.ConditionMatch
	conditionsErr   error
	causes          []graph.Cause
	contentByName   map[string][]graph.ContentRef
	contentErr      error
	conditionCalls  [][]string
	contentCalls    []string
	rangeCallCount  int
	causesCallCount int
}

func (m *mockGraphStore) QueryConditionsBySymptoms(ctx context.Context, symptoms []string) ([]graph.ConditionMatch, error) {
	m.conditionCalls = append(m.conditionCalls, symptoms)
	if m.conditionsErr != nil {
		return nil, m.conditionsErr
	}
	return m.conditions, nil
}

func (m *mockGraphStore) QueryEducationalContentByCondition(ctx context.Context, condition string) ([]graph.ContentRef, error) {
	m.contentCalls = append(m.contentCalls, condition)
	if m.contentErr != nil {
		return nil, m.contentErr
	}
	refs, ok := m.contentByName[condition]
	if !ok {
		return nil, apperrors.NotFound("no content")
	}
	return refs, nil
}

func (m *mockGraphStore) QueryCausesByConditions(ctx context.Context, conditions []string) ([]graph.Cause, error) {
	m.causesCallCount++
	return m.causes, nil
}

func (m *mockGraphStore) WithinNormalRanges(ctx context.Context, cycleLength, cycleDuration int) (bool, error) {
	m.rangeCallCount++
	return m.withinRanges, m.rangesErr
}

type mockInsights struct {
	insights string
	err      error
	called   bool
}

func (m *mockInsights) GenerateInsights(ctx context.Context, symptoms []string, age int) (string, error) {
	m.called = true
	return m.insights, m.err
}

func TestAnalyzeObservation_NormalShortCircuit(t *testing.T) {
	store := &mockGraphStore{withinRanges: true}
	analyzer := NewAnalyzer(store, nil)

	result, err := analyzer.AnalyzeObservation(context.Background(), Observation{
		CycleLength:   28,
		CycleDuration: 5,
		Symptoms:      []string{"heavy bleeding"},
	})
	if err != nil {
		t.Fatalf("AnalyzeObservation failed: %v", err)
	}

	if result.Diagnosis != rules.StatusNormal {
		t.Errorf("diagnosis = %s, want Normal", result.Diagnosis)
	}
	if !reflect.DeepEqual(result.Recommendations, []string{rules.RecommendationNone}) {
		t.Errorf("recommendations = %v", result.Recommendations)
	}
	if len(result.EducationalResources) != 0 {
		t.Errorf("expected no resources, got %v", result.EducationalResources)
	}
	// Normal results must not trigger further graph queries
	if len(store.conditionCalls) != 0 || len(store.contentCalls) != 0 || store.causesCallCount != 0 {
		t.Error("short-circuited analysis still queried the graph")
	}
}

func TestAnalyzeObservation_AbnormalFlow(t *testing.T) {
	store := &mockGraphStore{
		withinRanges: false,
		conditions: []graph.ConditionMatch{
			{Condition: "Menorrhagia", Severity: "high", Action: "Seek Medical Attention"},
			{Condition: "Oligomenorrhea", Severity: "medium", Action: "Monitor"},
		},
		causes: []graph.Cause{
			{Name: "Uterine fibroids", Condition: "Menorrhagia"},
		},
		contentByName: map[string][]graph.ContentRef{
			"Menorrhagia":    {{Type: "Article", URL: "https://example.com/article1"}},
			"Oligomenorrhea": {{Type: "Article", URL: "https://example.com/article2"}},
		},
	}
	analyzer := NewAnalyzer(store, nil)

	result, err := analyzer.AnalyzeObservation(context.Background(), Observation{
		CycleLength:   50,
		CycleDuration: 9,
		Symptoms:      []string{"heavy bleeding"},
	})
	if err != nil {
		t.Fatalf("AnalyzeObservation failed: %v", err)
	}

	if result.Diagnosis != rules.StatusAbnormal {
		t.Errorf("diagnosis = %s, want Abnormal", result.Diagnosis)
	}
	wantRecs := []string{
		"Seek medical attention immediately.",
		"Monitor and consult a doctor if persists.",
	}
	if !reflect.DeepEqual(result.Recommendations, wantRecs) {
		t.Errorf("recommendations = %v, want %v", result.Recommendations, wantRecs)
	}
	// Resources keep condition order and are concatenated without dedup
	wantResources := []graph.ContentRef{
		{Type: "Article", URL: "https://example.com/article1"},
		{Type: "Article", URL: "https://example.com/article2"},
	}
	if !reflect.DeepEqual(result.EducationalResources, wantResources) {
		t.Errorf("resources = %v, want %v", result.EducationalResources, wantResources)
	}
	if len(result.Causes) != 1 || result.Causes[0].Name != "Uterine fibroids" {
		t.Errorf("causes = %v", result.Causes)
	}
	if store.causesCallCount != 1 {
		t.Errorf("causes queried %d times", store.causesCallCount)
	}
}

func TestAnalyzeObservation_MissingContentIsEmpty(t *testing.T) {
	store := &mockGraphStore{
		withinRanges: false,
		conditions: []graph.ConditionMatch{
			{Condition: "Polymenorrhea", Severity: "medium", Action: "Monitor"},
		},
		contentByName: map[string][]graph.ContentRef{},
	}
	analyzer := NewAnalyzer(store, nil)

	result, err := analyzer.AnalyzeObservation(context.Background(), Observation{
		CycleLength:   18,
		CycleDuration: 5,
	})
	if err != nil {
		t.Fatalf("AnalyzeObservation failed: %v", err)
	}
	if len(result.EducationalResources) != 0 {
		t.Errorf("expected empty resources, got %v", result.EducationalResources)
	}
}

func TestAnalyzeObservation_TransportErrorPropagates(t *testing.T) {
	store := &mockGraphStore{rangesErr: apperrors.Internal("connection refused", errors.New("dial tcp"))}
	analyzer := NewAnalyzer(store, nil)

	_, err := analyzer.AnalyzeObservation(context.Background(), Observation{CycleLength: 28, CycleDuration: 5})
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.Is(err, apperrors.KindInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestAnalyzeObservation_InsightFailureIsNonFatal(t *testing.T) {
	store := &mockGraphStore{
		withinRanges:  false,
		conditions:    []graph.ConditionMatch{},
		contentByName: map[string][]graph.ContentRef{},
	}
	insights := &mockInsights{err: errors.New("model unavailable")}
	analyzer := NewAnalyzer(store, insights)

	result, err := analyzer.AnalyzeObservation(context.Background(), Observation{
		CycleLength:   50,
		CycleDuration: 5,
		Symptoms:      []string{"heavy bleeding"},
	})
	if err != nil {
		t.Fatalf("AnalyzeObservation failed: %v", err)
	}
	if !insights.called {
		t.Error("insight generator was not invoked")
	}
	if result.Insights != "" {
		t.Errorf("insights = %q, want empty on failure", result.Insights)
	}
}

func TestAnalyzeObservation_InsightsAttached(t *testing.T) {
	store := &mockGraphStore{
		withinRanges:  false,
		conditions:    []graph.ConditionMatch{},
		contentByName: map[string][]graph.ContentRef{},
	}
	insights := &mockInsights{insights: "General educational context."}
	analyzer := NewAnalyzer(store, insights)

	result, err := analyzer.AnalyzeObservation(context.Background(), Observation{
		CycleLength:   50,
		CycleDuration: 5,
		Symptoms:      []string{"heavy bleeding"},
	})
	if err != nil {
		t.Fatalf("AnalyzeObservation failed: %v", err)
	}
	if result.Insights != "General educational context." {
		t.Errorf("insights = %q", result.Insights)
	}
}

func TestAnalyzeDescription(t *testing.T) {
	store := &mockGraphStore{
		conditions: []graph.ConditionMatch{
			{Condition: "Menorrhagia", Severity: "high", Action: "Seek Medical Attention"},
		},
	}
	analyzer := NewAnalyzer(store, nil)

	matches, err := analyzer.AnalyzeDescription(context.Background(), "I have severe cramps")
	if err != nil {
		t.Fatalf("AnalyzeDescription failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Condition != "Menorrhagia" {
		t.Errorf("matches = %v", matches)
	}
	if len(store.conditionCalls) != 1 || !reflect.DeepEqual(store.conditionCalls[0], []string{"Dysmenorrhea"}) {
		t.Errorf("queried symptoms = %v", store.conditionCalls)
	}
}

func TestAnalyzeDescription_NoKeywordsSkipsGraph(t *testing.T) {
	store := &mockGraphStore{}
	analyzer := NewAnalyzer(store, nil)

	matches, err := analyzer.AnalyzeDescription(context.Background(), "I feel fine")
	if err != nil {
		t.Fatalf("AnalyzeDescription failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %v, want empty", matches)
	}
	if len(store.conditionCalls) != 0 {
		t.Error("graph queried for an unmatched description")
	}
}
