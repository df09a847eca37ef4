// Package analysis orchestrates symptom analysis: keyword extraction for
// free-text input, normal-range short-circuiting for structured input, and
// graph lookups for conditions, causes and educational material.
package analysis

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dottie-backend/internal/graph"
	"dottie-backend/internal/rules"
	"dottie-backend/pkg/apperrors"
	"dottie-backend/pkg/logger"
)

// GraphStore is the slice of the graph repository the analyzer needs.
// Every method opens and closes its own database session.
type GraphStore interface {
	QueryConditionsBySymptoms(ctx context.Context, symptoms []string) ([]graph.ConditionMatch, error)
	QueryEducationalContentByCondition(ctx context.Context, condition string) ([]graph.ContentRef, error)
	QueryCausesByConditions(ctx context.Context, conditions []string) ([]graph.Cause, error)
	WithinNormalRanges(ctx context.Context, cycleLength, cycleDuration int) (bool, error)
}

// InsightGenerator produces optional model-generated commentary on an
// observation. Failures are logged and never fail the analysis.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, symptoms []string, age int) (string, error)
}

// Observation is a structured cycle report submitted for analysis
type Observation struct {
	CycleLength   int      `json:"cycle_length"`
	CycleDuration int      `json:"cycle_duration"`
	Symptoms      []string `json:"symptoms"`
	MissedPeriods int      `json:"missed_periods"`
	Age           int      `json:"age"`
}

// Result is the outcome of a structured analysis
type Result struct {
	Diagnosis            string             `json:"diagnosis"`
	Recommendations      []string           `json:"recommendations"`
	EducationalResources []graph.ContentRef `json:"educational_resources"`
	Causes               []graph.Cause      `json:"causes,omitempty"`
	Insights             string             `json:"insights,omitempty"`
}

// Analyzer runs both analysis modes against the graph store
type Analyzer struct {
	store    GraphStore
	insights InsightGenerator
	logger   *zap.Logger
}

// NewAnalyzer creates an analyzer. insights may be nil to disable
// model-generated commentary.
func NewAnalyzer(store GraphStore, insights InsightGenerator) *Analyzer {
	return &Analyzer{
		store:    store,
		insights: insights,
		logger:   logger.Get(),
	}
}

// AnalyzeDescription extracts symptom keywords from a free-text description
// and returns the conditions linked to them. An unmatched description is a
// valid empty result.
func (a *Analyzer) AnalyzeDescription(ctx context.Context, description string) ([]graph.ConditionMatch, error) {
	symptoms := ExtractSymptoms(description)
	if len(symptoms) == 0 {
		return []graph.ConditionMatch{}, nil
	}

	matches, err := a.store.QueryConditionsBySymptoms(ctx, symptoms)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Free-text analysis complete",
		zap.Strings("symptoms", symptoms),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

// AnalyzeObservation analyzes a structured cycle observation. When both
// cycle length and duration sit inside the stored normal bands the analysis
// short-circuits to Normal without further graph queries.
func (a *Analyzer) AnalyzeObservation(ctx context.Context, obs Observation) (*Result, error) {
	normal, err := a.store.WithinNormalRanges(ctx, obs.CycleLength, obs.CycleDuration)
	if err != nil {
		return nil, err
	}
	if normal {
		return &Result{
			Diagnosis:            rules.StatusNormal,
			Recommendations:      []string{rules.RecommendationNone},
			EducationalResources: []graph.ContentRef{},
		}, nil
	}

	matches, err := a.store.QueryConditionsBySymptoms(ctx, obs.Symptoms)
	if err != nil {
		return nil, err
	}

	conditionNames := make([]string, 0, len(matches))
	for _, m := range matches {
		conditionNames = append(conditionNames, m.Condition)
	}

	causes, err := a.store.QueryCausesByConditions(ctx, conditionNames)
	if err != nil {
		return nil, err
	}

	recommendations := make([]string, 0, len(matches))
	for _, m := range matches {
		recommendations = append(recommendations, rules.RecommendationForSeverity(m.Severity))
	}

	resources, err := a.fetchResources(ctx, conditionNames)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Diagnosis:            rules.StatusAbnormal,
		Recommendations:      recommendations,
		EducationalResources: resources,
		Causes:               causes,
	}

	if a.insights != nil {
		insights, err := a.insights.GenerateInsights(ctx, obs.Symptoms, obs.Age)
		if err != nil {
			a.logger.Warn("Insight generation failed", zap.Error(err))
		} else {
			result.Insights = insights
		}
	}

	return result, nil
}

// fetchResources collects educational content for each condition. Fetches
// run concurrently but the concatenation keeps condition order and is not
// deduplicated. A condition without linked content contributes nothing.
func (a *Analyzer) fetchResources(ctx context.Context, conditions []string) ([]graph.ContentRef, error) {
	perCondition := make([][]graph.ContentRef, len(conditions))

	g, gctx := errgroup.WithContext(ctx)
	for i, condition := range conditions {
		i, condition := i, condition
		g.Go(func() error {
			refs, err := a.store.QueryEducationalContentByCondition(gctx, condition)
			if err != nil {
				if apperrors.Is(err, apperrors.KindNotFound) {
					return nil
				}
				return err
			}
			perCondition[i] = refs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resources := []graph.ContentRef{}
	for _, refs := range perCondition {
		resources = append(resources, refs...)
	}
	return resources, nil
}
