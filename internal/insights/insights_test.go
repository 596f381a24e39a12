package insights

import (
	"testing"

	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/Veraticus/the-rent-must-flow/internal/scoring"
	"github.com/Veraticus/the-rent-must-flow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func assertGroups(t *testing.T, want, got []GroupMean) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Group, got[i].Group)
		assert.Equal(t, want[i].Count, got[i].Count, want[i].Group)
		assert.InDelta(t, want[i].Mean, got[i].Mean, delta, want[i].Group)
	}
}

func TestGroupMeans(t *testing.T) {
	rows := testutil.ScoredSample(t)

	t.Run("age groups best first", func(t *testing.T) {
		assertGroups(t, []GroupMean{
			{Group: "36-45", Mean: 77.5, Count: 1},
			{Group: "26-35", Mean: 280.5 / 4, Count: 4},
			{Group: "45+", Mean: 58.5, Count: 1},
			{Group: "18-25", Mean: 18, Count: 1},
		}, ByAgeGroup(rows))
	})

	t.Run("employment split", func(t *testing.T) {
		assertGroups(t, []GroupMean{
			{Group: GroupEmployed, Mean: 59.5, Count: 6},
			{Group: GroupUnemployed, Mean: 77.5, Count: 1},
		}, ByEmployment(rows))

		gap, ok := EmploymentGap(rows)
		require.True(t, ok)
		assert.InDelta(t, -18.0, gap, delta)
	})

	t.Run("income halves", func(t *testing.T) {
		median, ok := MedianIncome(rows)
		require.True(t, ok)
		assert.Equal(t, 30000.0, median)

		assertGroups(t, []GroupMean{
			{Group: GroupHighIncome, Mean: 263.0 / 4, Count: 4},
			{Group: GroupLowIncome, Mean: 171.5 / 3, Count: 3},
		}, ByIncome(rows))
	})

	t.Run("credit tiers", func(t *testing.T) {
		assertGroups(t, []GroupMean{
			{Group: CreditExcellent, Mean: 92, Count: 1},
			{Group: CreditGood, Mean: 200.5 / 3, Count: 3},
			{Group: CreditPoor, Mean: 142.0 / 3, Count: 3},
		}, ByCredit(rows))
	})
}

func TestGroupMeans_EmptyGroupsAreOmitted(t *testing.T) {
	rows := scoring.Enrich([]model.Tenant{
		testutil.NewTenant("Alice").WithAge(30).Build(),
		testutil.NewTenant("Bob").WithAge(32).WithCredit(700).Build(),
	})

	assertGroups(t, []GroupMean{{Group: GroupEmployed, Mean: 90.5, Count: 2}}, ByEmployment(rows))
	assertGroups(t, []GroupMean{{Group: "26-35", Mean: 90.5, Count: 2}}, ByAgeGroup(rows))
	assertGroups(t, []GroupMean{
		{Group: CreditExcellent, Mean: 92, Count: 1},
		{Group: CreditGood, Mean: 89, Count: 1},
	}, ByCredit(rows))

	_, ok := EmploymentGap(rows)
	assert.False(t, ok)

	for _, groups := range [][]GroupMean{ByAgeGroup(nil), ByEmployment(nil), ByIncome(nil), ByCredit(nil)} {
		assert.Empty(t, groups)
	}
}

func TestByIncome_SingleTenant(t *testing.T) {
	rows := scoring.Enrich([]model.Tenant{testutil.NewTenant("Solo").WithIncome(25000).Build()})

	groups := ByIncome(rows)
	require.Len(t, groups, 1)
	assert.Equal(t, GroupHighIncome, groups[0].Group)
	assert.Equal(t, 1, groups[0].Count)
}

func TestMedianIncome_EvenCount(t *testing.T) {
	rows := scoring.Enrich([]model.Tenant{
		testutil.NewTenant("A").WithIncome(10000).Build(),
		testutil.NewTenant("B").WithIncome(40000).Build(),
		testutil.NewTenant("C").WithIncome(20000).Build(),
		testutil.NewTenant("D").WithIncome(90000).Build(),
	})

	median, ok := MedianIncome(rows)
	require.True(t, ok)
	assert.Equal(t, 30000.0, median)

	_, ok = MedianIncome(nil)
	assert.False(t, ok)
}

func TestAgeOutsideBucketsIsSkipped(t *testing.T) {
	rows := scoring.Enrich([]model.Tenant{
		testutil.NewTenant("Ageless").WithAge(0).Build(),
		testutil.NewTenant("Ancient").WithAge(120).Build(),
		testutil.NewTenant("Young").WithAge(22).Build(),
	})

	assertGroups(t, []GroupMean{{Group: "18-25", Mean: 92, Count: 1}}, ByAgeGroup(rows))
	assertGroups(t, []GroupMean{{Group: GroupEmployed, Mean: 92, Count: 3}}, ByEmployment(rows))
}

func TestDistribute(t *testing.T) {
	d := Distribute(testutil.ScoredSample(t))

	counts := make(map[model.Category]int)
	for _, c := range d.Categories {
		counts[c.Category] = c.Count
	}
	assert.Equal(t, map[model.Category]int{
		model.CategoryExcellent: 1,
		model.CategoryVeryGood:  2,
		model.CategoryGood:      1,
		model.CategoryAverage:   1,
		model.CategoryPoor:      2,
	}, counts)

	assert.Equal(t, []ValueCount{{Value: "Yes", Count: 5}, {Value: "No", Count: 2}}, d.Payments)

	require.Len(t, d.Histogram, HistogramBins)
	wantBins := map[int]int{3: 1, 9: 1, 11: 1, 13: 1, 15: 2, 18: 1}
	total := 0
	for i, bin := range d.Histogram {
		assert.Equal(t, wantBins[i], bin.Count, "bin %d", i)
		assert.InDelta(t, float64(i)*5, bin.Low, delta)
		assert.InDelta(t, float64(i+1)*5, bin.High, delta)
		total += bin.Count
	}
	assert.Equal(t, 7, total)
}

func TestDistribute_Edges(t *testing.T) {
	rows := []model.ScoredTenant{{Score: 0}, {Score: 100}, {Score: 5}}
	for i := range rows {
		rows[i].Category = scoring.Categorize(rows[i].Score)
	}

	d := Distribute(rows)
	assert.Equal(t, 1, d.Histogram[0].Count)
	assert.Equal(t, 1, d.Histogram[1].Count)
	assert.Equal(t, 1, d.Histogram[HistogramBins-1].Count)

	empty := Distribute(nil)
	assert.Len(t, empty.Categories, len(model.Categories))
	assert.Len(t, empty.Histogram, HistogramBins)
	assert.Empty(t, empty.Payments)
}

func TestSummarize(t *testing.T) {
	all := testutil.ScoredSample(t)
	filtered := query.Apply(all, query.Filter{MinScore: 60})

	s := Summarize(filtered, all)
	require.True(t, s.HasData)

	assert.Equal(t, 4, s.Filtered.Total)
	assert.InDelta(t, 311.5/4, s.Filtered.MeanScore, delta)
	assert.Equal(t, 1, s.Filtered.Excellent)
	assert.InDelta(t, 25.0, s.Filtered.ExcellentShare, delta)
	assert.Equal(t, 4, s.Filtered.ReliablePayers)
	assert.InDelta(t, 100.0, s.Filtered.ReliableShare, delta)

	assert.Equal(t, 7, s.Dataset.Total)
	assert.InDelta(t, 434.5/7, s.Dataset.MeanScore, delta)

	assert.Equal(t, -3, s.TotalDelta)
	assert.InDelta(t, 311.5/4-434.5/7, s.MeanDelta, delta)
}

func TestSummarize_NoData(t *testing.T) {
	all := testutil.ScoredSample(t)
	s := Summarize(nil, all)

	assert.False(t, s.HasData)
	assert.False(t, s.Filtered.HasData)
	assert.Zero(t, s.Filtered.MeanScore)
	assert.Zero(t, s.Filtered.ExcellentShare)
	assert.Zero(t, s.MeanDelta)
	assert.Equal(t, -7, s.TotalDelta)
}

func TestRecommend(t *testing.T) {
	r := Recommend(testutil.ScoredSample(t))
	assert.Equal(t, Recommendation{Priority: 1, Strong: 2, HighRisk: 2}, r)
	assert.Equal(t, Recommendation{}, Recommend(nil))
}

func TestNewReport(t *testing.T) {
	all := testutil.ScoredSample(t)
	report := NewReport(all, all)

	assert.True(t, report.Summary.HasData)
	assert.Zero(t, report.Summary.TotalDelta)
	assert.Equal(t, 30000.0, report.MedianIncome)
	assert.True(t, report.HasEmploymentGap)
	assert.Len(t, report.AgeGroups, 4)
	assert.Len(t, report.Credit, 3)

	empty := NewReport(nil, all)
	assert.False(t, empty.Summary.HasData)
	assert.Empty(t, empty.AgeGroups)
	assert.Empty(t, empty.Income)
	assert.False(t, empty.HasEmploymentGap)
}
