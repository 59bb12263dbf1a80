// Package query compiles loosely-typed listing requests into predicates,
// stable ordering, and bounded pagination over the entity store.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/apierr"
)

// Filter is the compiled form of a listing filter request. Zero-value fields
// impose no constraint; the zero Filter matches every business.
type Filter struct {
	Search   string
	State    string
	Category string
	MinScore *float64
	MaxScore *float64
}

// ParseFilter compiles a loosely-typed option map. Recognized options:
// search, state, category, min_score, max_score. Unknown options are
// ignored. Empty string values are the same as absent options. Malformed
// score bounds fail with invalid_filter_value; no silent coercion.
func ParseFilter(options map[string]string) (Filter, error) {
	var f Filter
	for key, val := range options {
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		switch key {
		case "search":
			f.Search = val
		case "state":
			f.State = strings.ToUpper(val)
		case "category":
			f.Category = val
		case "min_score":
			bound, err := parseScoreBound(key, val)
			if err != nil {
				return Filter{}, err
			}
			f.MinScore = &bound
		case "max_score":
			bound, err := parseScoreBound(key, val)
			if err != nil {
				return Filter{}, err
			}
			f.MaxScore = &bound
		}
	}
	return f, nil
}

func parseScoreBound(key, val string) (float64, error) {
	bound, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, apierr.InvalidFilterValue(fmt.Errorf("%s must be numeric, got %q", key, val))
	}
	if math.IsNaN(bound) || math.IsInf(bound, 0) {
		return 0, apierr.InvalidFilterValue(fmt.Errorf("%s must be a finite number, got %q", key, val))
	}
	return bound, nil
}

// Scope returns the conjunction of the present predicates as a gorm scope.
func (f Filter) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Search != "" {
			tx = tx.Where("LOWER(brand_name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
		}
		if f.State != "" {
			tx = tx.Where("state = ?", f.State)
		}
		if f.Category != "" {
			tx = tx.Where("category = ?", f.Category)
		}
		if f.MinScore != nil {
			tx = tx.Where("sustainability_score >= ?", *f.MinScore)
		}
		if f.MaxScore != nil {
			tx = tx.Where("sustainability_score <= ?", *f.MaxScore)
		}
		return tx
	}
}

func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.State == "" && f.Category == "" &&
		f.MinScore == nil && f.MaxScore == nil
}

// CacheKey returns a canonical representation: present options only, fixed
// order, case-folded where matching is case-insensitive. Semantically equal
// filters (including empty vs absent options) produce identical keys.
func (f Filter) CacheKey() string {
	var b strings.Builder
	if f.Search != "" {
		fmt.Fprintf(&b, "search=%s;", strings.ToLower(f.Search))
	}
	if f.State != "" {
		fmt.Fprintf(&b, "state=%s;", f.State)
	}
	if f.Category != "" {
		fmt.Fprintf(&b, "category=%s;", f.Category)
	}
	if f.MinScore != nil {
		fmt.Fprintf(&b, "min=%s;", strconv.FormatFloat(*f.MinScore, 'f', -1, 64))
	}
	if f.MaxScore != nil {
		fmt.Fprintf(&b, "max=%s;", strconv.FormatFloat(*f.MaxScore, 'f', -1, 64))
	}
	if b.Len() == 0 {
		return "all"
	}
	return strings.TrimSuffix(b.String(), ";")
}
