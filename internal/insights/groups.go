// Package insights aggregates scored tenants into group means, distributions
// and headline metrics.
package insights

import (
	"cmp"
	"slices"

	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

// Group labels used outside the model's own categories.
const (
	GroupEmployed   = "Employed"
	GroupUnemployed = "Unemployed"

	GroupHighIncome = "High Income"
	GroupLowIncome  = "Low Income"

	CreditExcellent = "Excellent (750+)"
	CreditGood      = "Good (650-749)"
	CreditPoor      = "Poor (<650)"
)

// GroupMean is the mean score of one non-empty group.
type GroupMean struct {
	Group string  `json:"group"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

type accumulator struct {
	sum   float64
	count int
}

// meanBy averages scores per group, in the order groups are listed.
// Groups without members and rows keyed to "" are left out.
func meanBy(rows []model.ScoredTenant, groups []string, key func(*model.ScoredTenant) string) []GroupMean {
	acc := make(map[string]*accumulator, len(groups))
	for _, g := range groups {
		acc[g] = &accumulator{}
	}

	for i := range rows {
		a, ok := acc[key(&rows[i])]
		if !ok {
			continue
		}
		a.sum += rows[i].Score
		a.count++
	}

	out := make([]GroupMean, 0, len(groups))
	for _, g := range groups {
		a := acc[g]
		if a.count == 0 {
			continue
		}
		out = append(out, GroupMean{Group: g, Mean: a.sum / float64(a.count), Count: a.count})
	}
	return out
}

// ByAgeGroup returns mean scores per age group, best performing group first.
// Tenants without an age group are not counted.
func ByAgeGroup(rows []model.ScoredTenant) []GroupMean {
	groups := make([]string, len(model.AgeGroups))
	for i, g := range model.AgeGroups {
		groups[i] = string(g)
	}

	out := meanBy(rows, groups, func(t *model.ScoredTenant) string { return string(t.AgeGroup) })
	slices.SortStableFunc(out, func(a, b GroupMean) int { return cmp.Compare(b.Mean, a.Mean) })
	return out
}

// ByEmployment splits tenants into employed and unemployed.
func ByEmployment(rows []model.ScoredTenant) []GroupMean {
	return meanBy(rows, []string{GroupEmployed, GroupUnemployed}, func(t *model.ScoredTenant) string {
		if t.IsUnemployed() {
			return GroupUnemployed
		}
		return GroupEmployed
	})
}

// EmploymentGap returns how many points employed tenants lead unemployed ones by.
// It reports false unless both groups have members.
func EmploymentGap(rows []model.ScoredTenant) (float64, bool) {
	groups := ByEmployment(rows)
	if len(groups) != 2 {
		return 0, false
	}
	return groups[0].Mean - groups[1].Mean, true
}

// MedianIncome returns the median annual income of rows.
// Even sized sets average the two middle values.
func MedianIncome(rows []model.ScoredTenant) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}

	incomes := make([]float64, len(rows))
	for i := range rows {
		incomes[i] = rows[i].AnnualIncome
	}
	slices.Sort(incomes)

	mid := len(incomes) / 2
	if len(incomes)%2 == 1 {
		return incomes[mid], true
	}
	return (incomes[mid-1] + incomes[mid]) / 2, true
}

// ByIncome splits tenants at the median income of rows. Incomes equal to
// the median count as high, so a single tenant always lands in the high group.
func ByIncome(rows []model.ScoredTenant) []GroupMean {
	median, ok := MedianIncome(rows)
	if !ok {
		return []GroupMean{}
	}
	return meanBy(rows, []string{GroupHighIncome, GroupLowIncome}, func(t *model.ScoredTenant) string {
		if t.AnnualIncome >= median {
			return GroupHighIncome
		}
		return GroupLowIncome
	})
}

// CreditTier names the credit band a score falls into.
func CreditTier(creditScore int) string {
	switch {
	case creditScore >= 750:
		return CreditExcellent
	case creditScore >= 650:
		return CreditGood
	default:
		return CreditPoor
	}
}

// ByCredit returns mean scores per credit tier, best tier first.
func ByCredit(rows []model.ScoredTenant) []GroupMean {
	return meanBy(rows, []string{CreditExcellent, CreditGood, CreditPoor}, func(t *model.ScoredTenant) string {
		return CreditTier(t.CreditScore)
	})
}
