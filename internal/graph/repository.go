package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"dottie-backend/pkg/apperrors"
	"dottie-backend/pkg/logger"
)

// Names of the NormalRange nodes the orchestrator consults
const (
	RangeCycleLength   = "CycleLength"
	RangeCycleDuration = "CycleDuration"
)

// Repository handles all Neo4j database operations against the knowledge graph
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// CreateNode creates a node with the given label and properties. Known
// schema labels are checked for their required fields; property values are
// always bound parameters, never interpolated.
func (r *Repository) CreateNode(ctx context.Context, label string, properties map[string]any) error {
	if err := validateLabel(label, properties); err != nil {
		return err
	}
	if err := validatePropertyKeys(properties); err != nil {
		return err
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := fmt.Sprintf("CREATE (n:%s%s)", label, propertyFragment(properties, ""))
	if _, err := session.Run(ctx, query, properties); err != nil {
		return apperrors.Internal(fmt.Sprintf("failed to create %s node", label), err)
	}

	r.logger.Debug("Node created", zap.String("label", label))
	return nil
}

// CreateRelationship creates a directed edge between nodes matched by the
// given property sets. The relationship type must come from the closed
// vocabulary. Cypher MATCH semantics apply: when several nodes match on
// either side, one edge is created per matching pair.
func (r *Repository) CreateRelationship(ctx context.Context, fromLabel string, fromProps map[string]any, toLabel string, toProps map[string]any, relType string, relProps map[string]any) error {
	if err := validateRelationship(relType); err != nil {
		return err
	}
	for _, label := range []string{fromLabel, toLabel} {
		if !identifierPattern.MatchString(label) {
			return apperrors.Validation(fmt.Sprintf("invalid label %q", label), nil)
		}
	}
	for _, props := range []map[string]any{fromProps, toProps, relProps} {
		if err := validatePropertyKeys(props); err != nil {
			return err
		}
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (a:%s%s), (b:%s%s)
		CREATE (a)-[r:%s%s]->(b)
	`,
		fromLabel, propertyFragment(fromProps, "from_"),
		toLabel, propertyFragment(toProps, "to_"),
		relType, propertyFragment(relProps, "rel_"),
	)

	params := make(map[string]any, len(fromProps)+len(toProps)+len(relProps))
	for key, val := range fromProps {
		params["from_"+key] = val
	}
	for key, val := range toProps {
		params["to_"+key] = val
	}
	for key, val := range relProps {
		params["rel_"+key] = val
	}

	if _, err := session.Run(ctx, query, params); err != nil {
		return apperrors.Internal(fmt.Sprintf("failed to create %s relationship", relType), err)
	}

	return nil
}

// QueryConditionsBySymptoms traverses Symptom→Condition edges for the given
// symptom names. One record per matching edge, no deduplication. An empty
// symptom list or empty result is a valid empty slice, not an error.
func (r *Repository) QueryConditionsBySymptoms(ctx context.Context, symptoms []string) ([]ConditionMatch, error) {
	if len(symptoms) == 0 {
		return []ConditionMatch{}, nil
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (s:Symptom)-[:IS_SYMPTOM_OF]->(c:Condition)
		WHERE s.name IN $symptoms
		RETURN c.name AS condition, c.severity AS severity, c.action AS action
	`

	result, err := session.Run(ctx, query, map[string]any{"symptoms": symptoms})
	if err != nil {
		return nil, apperrors.Internal("failed to query conditions by symptoms", err)
	}

	matches := []ConditionMatch{}
	for result.Next(ctx) {
		record := result.Record()
		matches = append(matches, ConditionMatch{
			Condition: getStringFromRecord(record, "condition"),
			Severity:  getStringFromRecord(record, "severity"),
			Action:    getStringFromRecord(record, "action"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.Internal("failed to read condition records", err)
	}

	return matches, nil
}

// QueryEducationalContentByCondition returns the content linked to a
// condition. No linked content is a not-found error, surfaced as 404.
func (r *Repository) QueryEducationalContentByCondition(ctx context.Context, condition string) ([]ContentRef, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (c:Condition {name: $condition})-[:LINKED_TO]->(e:EducationalContent)
		RETURN e.type AS type, e.url AS url
	`

	result, err := session.Run(ctx, query, map[string]any{"condition": condition})
	if err != nil {
		return nil, apperrors.Internal("failed to query educational content", err)
	}

	refs := []ContentRef{}
	for result.Next(ctx) {
		record := result.Record()
		refs = append(refs, ContentRef{
			Type: getStringFromRecord(record, "type"),
			URL:  getStringFromRecord(record, "url"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.Internal("failed to read content records", err)
	}

	if len(refs) == 0 {
		return nil, apperrors.NotFound(fmt.Sprintf("no educational content found for condition %q", condition))
	}

	return refs, nil
}

// QueryCausesByConditions returns the known causes for the given conditions
func (r *Repository) QueryCausesByConditions(ctx context.Context, conditions []string) ([]Cause, error) {
	if len(conditions) == 0 {
		return []Cause{}, nil
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (k:Cause)-[:CAUSES]->(c:Condition)
		WHERE c.name IN $conditions
		RETURN k.name AS cause, c.name AS condition
	`

	result, err := session.Run(ctx, query, map[string]any{"conditions": conditions})
	if err != nil {
		return nil, apperrors.Internal("failed to query causes", err)
	}

	causes := []Cause{}
	for result.Next(ctx) {
		record := result.Record()
		causes = append(causes, Cause{
			Name:      getStringFromRecord(record, "cause"),
			Condition: getStringFromRecord(record, "condition"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.Internal("failed to read cause records", err)
	}

	return causes, nil
}

// NormalRanges returns the stored normal bands for cycle attributes
func (r *Repository) NormalRanges(ctx context.Context) ([]NormalRange, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (n:NormalRange)
		RETURN n.name AS name, n.min AS min, n.max AS max, n.unit AS unit
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.Internal("failed to query normal ranges", err)
	}

	ranges := []NormalRange{}
	for result.Next(ctx) {
		record := result.Record()
		ranges = append(ranges, NormalRange{
			Name: getStringFromRecord(record, "name"),
			Min:  getIntFromRecord(record, "min"),
			Max:  getIntFromRecord(record, "max"),
			Unit: getStringFromRecord(record, "unit"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.Internal("failed to read normal range records", err)
	}

	return ranges, nil
}

// WithinNormalRanges reports whether both cycle length and cycle duration
// fall inside their stored normal bands. Missing range nodes count as not
// normal so that analysis falls through to the full condition lookup.
func (r *Repository) WithinNormalRanges(ctx context.Context, cycleLength, cycleDuration int) (bool, error) {
	ranges, err := r.NormalRanges(ctx)
	if err != nil {
		return false, err
	}

	values := map[string]int{
		RangeCycleLength:   cycleLength,
		RangeCycleDuration: cycleDuration,
	}

	seen := 0
	for _, band := range ranges {
		value, ok := values[band.Name]
		if !ok {
			continue
		}
		seen++
		if value < band.Min || value > band.Max {
			return false, nil
		}
	}

	return seen == len(values), nil
}

// ClearDatabase deletes every node and relationship. Setup and testing only.
func (r *Repository) ClearDatabase(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return apperrors.Internal("failed to clear database", err)
	}

	r.logger.Warn("Graph database cleared")
	return nil
}
