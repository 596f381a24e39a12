// Package query narrows and orders scored tenants.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

// Filter selects tenants. The zero value matches everyone.
type Filter struct {
	Payment    model.PaymentMode
	Search     string
	Categories []model.Category
	// Employment lists accepted employment statuses. Empty accepts all.
	Employment []string
	MinScore   float64
}

// Match reports whether a tenant satisfies every predicate of the filter.
func (f Filter) Match(t *model.ScoredTenant) bool {
	if t.Score < f.MinScore {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, t.Category) {
		return false
	}
	if len(f.Employment) > 0 && !slices.Contains(f.Employment, t.EmploymentStatus) {
		return false
	}
	switch f.Payment {
	case model.PaymentOnTime:
		if t.RentPaidOnTime != "Yes" {
			return false
		}
	case model.PaymentHasLate:
		if t.RentPaidOnTime != "No" {
			return false
		}
	}
	return matchesName(t.Name, f.Search)
}

// Apply returns the tenants matching f in their original order.
func Apply(rows []model.ScoredTenant, f Filter) []model.ScoredTenant {
	out := make([]model.ScoredTenant, 0, len(rows))
	for i := range rows {
		if f.Match(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// Search keeps tenants whose name contains term, ignoring case.
// An empty term returns rows unchanged.
func Search(rows []model.ScoredTenant, term string) []model.ScoredTenant {
	if strings.TrimSpace(term) == "" {
		return rows
	}
	return Apply(rows, Filter{Search: term})
}

func matchesName(name, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

// SortKey names a column tenants can be ordered by.
type SortKey string

// Supported sort keys.
const (
	SortByScore  SortKey = "score"
	SortByIncome SortKey = "income"
	SortByCredit SortKey = "credit"
	SortByAge    SortKey = "age"
	SortByName   SortKey = "name"
)

// SortKeys lists the supported keys in display order.
var SortKeys = []SortKey{SortByScore, SortByIncome, SortByCredit, SortByAge, SortByName}

// ParseSortKey resolves a sort key; empty input means SortByScore.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByScore, nil
	}
	key := SortKey(strings.ToLower(s))
	if !slices.Contains(SortKeys, key) {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownSortKey, s)
	}
	return key, nil
}

// Direction is ascending or descending order.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection resolves a direction; empty input means Descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	default:
		return "", fmt.Errorf("%w: direction %q", common.ErrUnknownSortKey, s)
	}
}

func compareBy(key SortKey) func(a, b model.ScoredTenant) int {
	switch key {
	case SortByIncome:
		return func(a, b model.ScoredTenant) int { return cmp.Compare(a.AnnualIncome, b.AnnualIncome) }
	case SortByCredit:
		return func(a, b model.ScoredTenant) int { return cmp.Compare(a.CreditScore, b.CreditScore) }
	case SortByAge:
		return func(a, b model.ScoredTenant) int { return cmp.Compare(a.Age, b.Age) }
	case SortByName:
		return func(a, b model.ScoredTenant) int { return cmp.Compare(a.Name, b.Name) }
	default:
		return func(a, b model.ScoredTenant) int { return cmp.Compare(a.Score, b.Score) }
	}
}

// Sort returns a copy of rows ordered by key. Ties keep their input order.
func Sort(rows []model.ScoredTenant, key SortKey, dir Direction) []model.ScoredTenant {
	out := slices.Clone(rows)
	compare := compareBy(key)
	if dir == Descending {
		slices.SortStableFunc(out, func(a, b model.ScoredTenant) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Top returns the n highest scoring tenants, ties broken by input order.
func Top(rows []model.ScoredTenant, n int) []model.ScoredTenant {
	if n <= 0 {
		return []model.ScoredTenant{}
	}
	sorted := Sort(rows, SortByScore, Descending)
	return sorted[:min(n, len(sorted))]
}

// FilterOptions holds the selectable values present in a dataset.
type FilterOptions struct {
	Categories []model.Category
	Employment []string
}

// Options collects the categories (best first) and employment statuses
// (first seen first) that occur in rows.
func Options(rows []model.ScoredTenant) FilterOptions {
	present := make(map[model.Category]bool)
	seen := make(map[string]bool)
	var opts FilterOptions

	for i := range rows {
		present[rows[i].Category] = true
		status := rows[i].EmploymentStatus
		if !seen[status] {
			seen[status] = true
			opts.Employment = append(opts.Employment, status)
		}
	}
	for _, c := range model.Categories {
		if present[c] {
			opts.Categories = append(opts.Categories, c)
		}
	}
	return opts
}
