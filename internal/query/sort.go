package query

import (
	"fmt"

	"github.com/verdora/verdora-backend/internal/apierr"
)

// Columns callers may sort or rank by. Maps the API name to the column.
var sortColumns = map[string]string{
	"brand_name":           "brand_name",
	"sustainability_score": "sustainability_score",
	"eco_materials_score":  "eco_materials_score",
	"worker_welfare":       "worker_welfare",
	"city":                 "city",
}

var metricColumns = map[string]string{
	"sustainability_score": "sustainability_score",
	"eco_materials_score":  "eco_materials_score",
	"carbon_footprint":     "carbon_footprint",
	"water_usage":          "water_usage",
	"worker_welfare":       "worker_welfare",
}

// Sort is a validated sort selection. The order clause always carries a
// secondary id key so offset pagination stays well-defined.
type Sort struct {
	Key        string
	Descending bool
}

// ParseSort validates a sort request. Empty key defaults to brand_name
// ascending; order is "asc" or "desc".
func ParseSort(key, order string) (Sort, error) {
	if key == "" {
		key = "brand_name"
	}
	if _, ok := sortColumns[key]; !ok {
		return Sort{}, apierr.InvalidFilterValue(fmt.Errorf("unknown sort key %q", key))
	}
	switch order {
	case "", "asc":
		return Sort{Key: key}, nil
	case "desc":
		return Sort{Key: key, Descending: true}, nil
	default:
		return Sort{}, apierr.InvalidFilterValue(fmt.Errorf("sort order must be asc or desc, got %q", order))
	}
}

func (s Sort) OrderClause() string {
	col := sortColumns[s.Key]
	if col == "" {
		col = "brand_name"
	}
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", col, dir)
}

func (s Sort) CacheKey() string {
	dir := "asc"
	if s.Descending {
		dir = "desc"
	}
	return fmt.Sprintf("sort=%s.%s", s.Key, dir)
}

// MetricColumn validates a metric name for ranking and aggregate queries.
func MetricColumn(name string) (string, error) {
	col, ok := metricColumns[name]
	if !ok {
		return "", apierr.InvalidFilterValue(fmt.Errorf("unknown metric %q", name))
	}
	return col, nil
}
