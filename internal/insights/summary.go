package insights

import (
	"cmp"
	"slices"

	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

// Histogram layout over the score range.
const (
	HistogramBins  = 20
	HistogramWidth = 100.0 / HistogramBins
)

// Bin counts scores in [Low, High). The last bin also holds 100.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// CategoryCount is the number of tenants in a category.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// ValueCount is the number of tenants sharing a column value.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Distribution summarizes how tenants spread across categories, payment
// records and score bins.
type Distribution struct {
	Categories []CategoryCount `json:"categories"`
	Payments   []ValueCount    `json:"payments"`
	Histogram  []Bin           `json:"histogram"`
}

// Distribute computes the distribution of rows. Every category and bin is
// present even when empty; payment values appear most common first.
func Distribute(rows []model.ScoredTenant) Distribution {
	d := Distribution{
		Categories: make([]CategoryCount, len(model.Categories)),
		Payments:   []ValueCount{},
		Histogram:  make([]Bin, HistogramBins),
	}

	for i, c := range model.Categories {
		d.Categories[i].Category = c
	}
	for i := range d.Histogram {
		d.Histogram[i].Low = float64(i) * HistogramWidth
		d.Histogram[i].High = float64(i+1) * HistogramWidth
	}

	categoryIndex := make(map[model.Category]int, len(model.Categories))
	for i, c := range model.Categories {
		categoryIndex[c] = i
	}
	paymentIndex := make(map[string]int)

	for i := range rows {
		t := &rows[i]

		d.Categories[categoryIndex[t.Category]].Count++

		if pos, ok := paymentIndex[t.RentPaidOnTime]; ok {
			d.Payments[pos].Count++
		} else {
			paymentIndex[t.RentPaidOnTime] = len(d.Payments)
			d.Payments = append(d.Payments, ValueCount{Value: t.RentPaidOnTime, Count: 1})
		}

		bin := int(t.Score / HistogramWidth)
		d.Histogram[min(max(bin, 0), HistogramBins-1)].Count++
	}

	slices.SortStableFunc(d.Payments, func(a, b ValueCount) int { return cmp.Compare(b.Count, a.Count) })
	return d
}

// Metrics are the headline figures for a set of tenants.
type Metrics struct {
	Total          int     `json:"total"`
	MeanScore      float64 `json:"mean_score"`
	Excellent      int     `json:"excellent"`
	ExcellentShare float64 `json:"excellent_share"`
	ReliablePayers int     `json:"reliable_payers"`
	ReliableShare  float64 `json:"reliable_share"`
	HasData        bool    `json:"has_data"`
}

// Measure computes headline metrics. Means and shares stay zero with
// HasData false when rows is empty.
func Measure(rows []model.ScoredTenant) Metrics {
	m := Metrics{Total: len(rows)}
	if len(rows) == 0 {
		return m
	}

	var sum float64
	for i := range rows {
		sum += rows[i].Score
		if rows[i].Category == model.CategoryExcellent {
			m.Excellent++
		}
		if rows[i].PaysOnTime() {
			m.ReliablePayers++
		}
	}

	n := float64(len(rows))
	m.HasData = true
	m.MeanScore = sum / n
	m.ExcellentShare = float64(m.Excellent) / n * 100
	m.ReliableShare = float64(m.ReliablePayers) / n * 100
	return m
}

// Summary compares the filtered view against the whole dataset.
// MeanDelta is only meaningful when HasData is true.
type Summary struct {
	Filtered   Metrics `json:"filtered"`
	Dataset    Metrics `json:"dataset"`
	TotalDelta int     `json:"total_delta"`
	MeanDelta  float64 `json:"mean_delta"`
	HasData    bool    `json:"has_data"`
}

// Summarize measures filtered and all separately and reports the difference.
func Summarize(filtered, all []model.ScoredTenant) Summary {
	s := Summary{
		Filtered: Measure(filtered),
		Dataset:  Measure(all),
	}
	s.TotalDelta = s.Filtered.Total - s.Dataset.Total
	s.HasData = s.Filtered.HasData
	if s.Filtered.HasData && s.Dataset.HasData {
		s.MeanDelta = s.Filtered.MeanScore - s.Dataset.MeanScore
	}
	return s
}

// ScreeningCriteria lists what to check first when screening applicants.
var ScreeningCriteria = []string{
	"Payment history (most important)",
	"Property care record",
	"Employment stability",
	"Credit score 650+",
	"Positive references",
}

// Recommendation counts tenants worth prioritizing or avoiding.
type Recommendation struct {
	Priority int `json:"priority"`
	Strong   int `json:"strong"`
	HighRisk int `json:"high_risk"`
}

// Recommend counts priority (80+), strong (70-79) and high risk (<50) tenants.
func Recommend(rows []model.ScoredTenant) Recommendation {
	var r Recommendation
	for i := range rows {
		switch rows[i].Category {
		case model.CategoryExcellent:
			r.Priority++
		case model.CategoryVeryGood:
			r.Strong++
		case model.CategoryPoor:
			r.HighRisk++
		}
	}
	return r
}

// Report bundles every aggregate the dashboards render.
type Report struct {
	Summary          Summary        `json:"summary"`
	Distribution     Distribution   `json:"distribution"`
	Recommendation   Recommendation `json:"recommendation"`
	AgeGroups        []GroupMean    `json:"age_groups"`
	Employment       []GroupMean    `json:"employment"`
	Income           []GroupMean    `json:"income"`
	Credit           []GroupMean    `json:"credit"`
	MedianIncome     float64        `json:"median_income"`
	EmploymentGap    float64        `json:"employment_gap"`
	HasEmploymentGap bool           `json:"has_employment_gap"`
}

// NewReport aggregates the filtered view, using all for the deltas.
func NewReport(filtered, all []model.ScoredTenant) Report {
	median, _ := MedianIncome(filtered)
	gap, hasGap := EmploymentGap(filtered)

	return Report{
		Summary:          Summarize(filtered, all),
		Distribution:     Distribute(filtered),
		Recommendation:   Recommend(filtered),
		AgeGroups:        ByAgeGroup(filtered),
		Employment:       ByEmployment(filtered),
		Income:           ByIncome(filtered),
		Credit:           ByCredit(filtered),
		MedianIncome:     median,
		EmploymentGap:    gap,
		HasEmploymentGap: hasGap,
	}
}
