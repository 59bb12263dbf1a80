package query

import (
	"strings"
	"testing"

	"github.com/verdora/verdora-backend/internal/apierr"
)

func TestParseSort_Defaults(t *testing.T) {
	s, err := ParseSort("", "")
	if err != nil {
		t.Fatalf("ParseSort failed: %v", err)
	}
	if s.Key != "brand_name" || s.Descending {
		t.Fatalf("expected brand_name ascending default, got %+v", s)
	}
}

func TestParseSort_Unknown(t *testing.T) {
	if _, err := ParseSort("password", ""); !apierr.Is(err, apierr.CodeInvalidFilterValue) {
		t.Fatalf("expected invalid_filter_value for unknown key, got %v", err)
	}
	if _, err := ParseSort("city", "sideways"); !apierr.Is(err, apierr.CodeInvalidFilterValue) {
		t.Fatalf("expected invalid_filter_value for unknown order, got %v", err)
	}
}

func TestSortOrderClause_SecondaryKey(t *testing.T) {
	s, _ := ParseSort("sustainability_score", "desc")
	clause := s.OrderClause()
	if !strings.HasPrefix(clause, "sustainability_score DESC") {
		t.Fatalf("unexpected order clause %q", clause)
	}
	if !strings.HasSuffix(clause, "id ASC") {
		t.Fatalf("order clause %q is missing the id tiebreak", clause)
	}
}

func TestMetricColumn(t *testing.T) {
	for _, metric := range []string{"sustainability_score", "eco_materials_score", "carbon_footprint", "water_usage", "worker_welfare"} {
		if _, err := MetricColumn(metric); err != nil {
			t.Fatalf("metric %q should be allowed: %v", metric, err)
		}
	}
	if _, err := MetricColumn("id; DROP TABLE businesses"); !apierr.Is(err, apierr.CodeInvalidFilterValue) {
		t.Fatalf("expected invalid_filter_value for hostile metric, got %v", err)
	}
}
