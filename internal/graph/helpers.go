package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// propertyFragment renders a Cypher property map whose values are bound
// parameters named with the given prefix. Empty maps render as nothing so
// the pattern stays valid. Keys must already be validated identifiers.
func propertyFragment(properties map[string]any, paramPrefix string) string {
	if len(properties) == 0 {
		return ""
	}
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	placeholders := make([]string, 0, len(keys))
	for _, key := range keys {
		placeholders = append(placeholders, fmt.Sprintf("%s: $%s%s", key, paramPrefix, key))
	}
	return " {" + strings.Join(placeholders, ", ") + "}"
}

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getIntFromRecord(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	if i, ok := val.(int); ok {
		return i
	}
	return 0
}
