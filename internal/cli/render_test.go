package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/export"
	"github.com/Veraticus/the-rent-must-flow/internal/insights"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
	"github.com/Veraticus/the-rent-must-flow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPounds(t *testing.T) {
	tests := map[float64]string{
		0:        "£0",
		999:      "£999",
		1000:     "£1,000",
		35000:    "£35,000",
		2916.6:   "£2,917",
		1234567:  "£1,234,567",
		-4500.25: "-£4,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPounds(in), "%v", in)
	}
}

func TestRenderMetrics(t *testing.T) {
	all := testutil.ScoredSample(t)
	filtered := query.Apply(all, query.Filter{MinScore: 60})

	out := RenderMetrics(insights.Summarize(filtered, all))
	assert.Contains(t, out, "Total Tenants")
	assert.Contains(t, out, "-3 from total")
	assert.Contains(t, out, "77.9")
	assert.Contains(t, out, "+15.8")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "100.0%")

	empty := RenderMetrics(insights.Summarize(nil, all))
	assert.Contains(t, empty, NoData)
	assert.Contains(t, empty, "0%")
}

func TestRenderLeaderboard(t *testing.T) {
	rows := query.Top(testutil.ScoredSample(t), 3)

	out := RenderLeaderboard(rows)
	assert.Contains(t, out, "#1 John Smith")
	assert.Contains(t, out, "#2 Emma Davis")
	assert.Contains(t, out, "#3 Sarah Johnson")
	assert.Contains(t, out, "92.0/100")
	assert.Contains(t, out, "£35,000")

	assert.Contains(t, RenderLeaderboard(nil), "No tenants match")
}

func TestRenderTenantDetail(t *testing.T) {
	rows := testutil.ScoredSample(t)
	out := RenderTenantDetail(&rows[2])

	for _, want := range []string{
		"Mike Brown",
		"Personal Information",
		"Financial Details",
		"Rental History",
		"Additional Info",
		"Score Breakdown",
		"Damage To Property: Not Available",
		"Payment         0.0 / 30",
		"Stability      10.0 / 20",
		"Reference Score: 6/10",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderInsights(t *testing.T) {
	all := testutil.ScoredSample(t)

	out := RenderInsights(insights.NewReport(all, all))
	for _, want := range []string{
		"Employment Impact",
		"Difference: -18.0 points",
		"Median income: £30,000",
		"36-45:",
		"Excellent (750+):",
		"Priority Tenants (Score 80+): 1 available",
		"High Risk Tenants (Score <50): 2 to avoid",
		"1. Payment history (most important)",
	} {
		assert.Contains(t, out, want)
	}

	assert.Contains(t, RenderInsights(insights.NewReport(nil, all)), "nothing to analyze")
}

func TestRenderDistribution(t *testing.T) {
	out := RenderDistribution(insights.Distribute(testutil.ScoredSample(t)))
	assert.Contains(t, out, "Yes: 5")
	assert.Contains(t, out, "No: 2")
	assert.Contains(t, out, "Excellent (Premium)")
	assert.Contains(t, out, " 90.0- 95.0")

	assert.Contains(t, RenderDistribution(insights.Distribute(nil)), NoData)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(export.FullReport(testutil.ScoredSample(t), nil))
	assert.Contains(t, out, "Tenant_Quality_Score")
	assert.Contains(t, out, "John Smith")
	assert.Contains(t, out, "Poor (High Risk)")
}

func TestLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenants.csv")
	require.NoError(t, os.WriteFile(path, []byte(testutil.SampleCSV), 0600))

	var buf bytes.Buffer
	analysis, err := NewLoader(&buf).Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, analysis.Tenants, 7)
	assert.Equal(t, 7, analysis.Dataset.Len())
	for i, want := range testutil.SampleScores {
		assert.InDelta(t, want, analysis.Tenants[i].Score, 1e-9)
	}
	assert.Contains(t, buf.String(), "Scoring tenants")

	quiet, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, analysis.Tenants, quiet.Tenants)
}

func TestLoader_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Age\nJohn,28\n"), 0600))

	_, err := NewLoader(nil).Load(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrMissingColumns)
}
