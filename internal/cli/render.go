package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/the-rent-must-flow/internal/export"
	"github.com/Veraticus/the-rent-must-flow/internal/insights"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/scoring"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NoData is shown in place of figures that cannot be computed.
const NoData = "no data"

// FormatPounds renders an amount as whole pounds with thousands separators.
func FormatPounds(amount float64) string {
	digits := strconv.FormatInt(int64(math.Round(amount)), 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "£" + b.String()
}

func signed(v float64) string {
	return fmt.Sprintf("%+.1f", v)
}

func metric(label, value, delta string) string {
	return MetricStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		SubtleStyle.Render(label),
		BoldStyle.Render(value),
		InfoStyle.Render(delta),
	))
}

// RenderMetrics draws the four headline metrics of a summary.
func RenderMetrics(s insights.Summary) string {
	f := s.Filtered

	average, averageDelta := NoData, ""
	excellentShare, reliableShare := "0%", "0%"
	if s.HasData {
		average = fmt.Sprintf("%.1f", f.MeanScore)
		averageDelta = signed(s.MeanDelta)
		excellentShare = fmt.Sprintf("%.1f%%", f.ExcellentShare)
		reliableShare = fmt.Sprintf("%.1f%%", f.ReliableShare)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Total Tenants", strconv.Itoa(f.Total), fmt.Sprintf("%d from total", s.TotalDelta)),
		metric("Average Score", average, averageDelta),
		metric("Excellent Tenants", strconv.Itoa(f.Excellent), excellentShare),
		metric("Reliable Payers", strconv.Itoa(f.ReliablePayers), reliableShare),
	)
}

// RenderCard draws one leaderboard entry.
func RenderCard(rank int, t *model.ScoredTenant) string {
	title := BoldStyle.Render(fmt.Sprintf("#%d %s", rank, t.Name))
	score := CategoryStyle(t.Category).Render(fmt.Sprintf("%.1f/100  %s", t.Score, t.Category))

	body := strings.Join([]string{
		fmt.Sprintf("Employment: %s (%g yrs)", t.EmploymentStatus, t.EmploymentYears),
		fmt.Sprintf("Income: %s  Credit: %d", FormatPounds(t.AnnualIncome), t.CreditScore),
		fmt.Sprintf("Age: %d  Pays on time: %s", t.Age, t.RentPaidOnTime),
	}, "\n")

	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, score, body))
}

// RenderLeaderboard draws ranked cards, two per row.
func RenderLeaderboard(rows []model.ScoredTenant) string {
	if len(rows) == 0 {
		return FormatWarning("No tenants match the current filters.")
	}

	var lines []string
	for i := 0; i < len(rows); i += 2 {
		left := RenderCard(i+1, &rows[i])
		if i+1 < len(rows) {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", RenderCard(i+2, &rows[i+1])))
		} else {
			lines = append(lines, left)
		}
	}
	return strings.Join(lines, "\n")
}

func section(title string, lines ...string) string {
	return BoldStyle.Render(title) + "\n  " + strings.Join(lines, "\n  ")
}

func points(got, maxPoints float64) string {
	return fmt.Sprintf("%4.1f / %2.0f", got, maxPoints)
}

// RenderTenantDetail draws every attribute of a tenant plus the score breakdown.
func RenderTenantDetail(t *model.ScoredTenant) string {
	header := CategoryStyle(t.Category).Render(fmt.Sprintf("%s  %.1f  %s", t.Name, t.Score, t.Category))
	b := t.Breakdown

	body := strings.Join([]string{
		section("Personal Information",
			fmt.Sprintf("Age: %d (%s)", t.Age, ageGroupLabel(t.AgeGroup)),
			fmt.Sprintf("Employment: %s", t.EmploymentStatus),
			fmt.Sprintf("Employment Duration: %g years", t.EmploymentYears),
		),
		section("Financial Details",
			fmt.Sprintf("Annual Income: %s", FormatPounds(t.AnnualIncome)),
			fmt.Sprintf("Monthly Salary: %s", FormatPounds(t.MonthlySalary)),
			fmt.Sprintf("Credit Score: %d", t.CreditScore),
		),
		section("Rental History",
			fmt.Sprintf("Rent Paid On Time: %s", t.RentPaidOnTime),
			fmt.Sprintf("Late Payments: %d", t.LatePayments),
			fmt.Sprintf("Tenancy Duration: %d months", t.TenancyMonths),
			fmt.Sprintf("Eviction Notice: %s", t.EvictionNotice),
		),
		section("Additional Info",
			fmt.Sprintf("Smoking: %s", t.SmokingStatus),
			fmt.Sprintf("Pets: %s", t.PetOwner),
			fmt.Sprintf("Cleanliness: %s", t.RoomCleanliness),
			fmt.Sprintf("Damage To Property: %s", t.DamageToProperty),
			fmt.Sprintf("Noise Complaints: %d", t.NoiseComplaints),
			fmt.Sprintf("Reference Score: %g/10", t.ReferenceScore),
		),
		section("Score Breakdown",
			"Payment        "+points(b.Payment, scoring.MaxPayment),
			"Property Care  "+points(b.PropertyCare, scoring.MaxPropertyCare),
			"Cleanliness    "+points(b.Cleanliness, scoring.MaxCleanliness),
			"Stability      "+points(b.Stability, scoring.MaxStability),
			"Financial      "+points(b.Financial, scoring.MaxFinancial),
			"Reference      "+points(b.Reference, scoring.MaxReference),
			"Lifestyle      "+points(b.Lifestyle, scoring.MaxLifestyle),
		),
	}, "\n\n")

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

func ageGroupLabel(g model.AgeGroup) string {
	if g == "" {
		return "no age group"
	}
	return string(g)
}

func groupLines(groups []insights.GroupMean) []string {
	if len(groups) == 0 {
		return []string{SubtleStyle.Render(NoData)}
	}
	lines := make([]string, len(groups))
	for i, g := range groups {
		lines[i] = fmt.Sprintf("%-18s %5.1f average score (%d)", g.Group+":", g.Mean, g.Count)
	}
	return lines
}

// RenderInsights draws the group analyses and screening recommendations.
func RenderInsights(r insights.Report) string {
	if !r.Summary.HasData {
		return FormatWarning("No tenants match the current filters; nothing to analyze.")
	}

	employment := groupLines(r.Employment)
	if r.HasEmploymentGap {
		employment = append(employment, fmt.Sprintf("Difference: %.1f points", r.EmploymentGap))
	}

	income := append([]string{fmt.Sprintf("Median income: %s", FormatPounds(r.MedianIncome))}, groupLines(r.Income)...)

	rec := r.Recommendation
	recommendations := []string{
		SuccessStyle.Render(fmt.Sprintf("%s Priority Tenants (Score 80+): %d available", StarIcon, rec.Priority)),
		InfoStyle.Render(fmt.Sprintf("%s Strong Tenants (Score 70-79): %d available", CheckIcon, rec.Strong)),
		WarningStyle.Render(fmt.Sprintf("%s High Risk Tenants (Score <50): %d to avoid", WarningIcon, rec.HighRisk)),
		"",
		"Key Screening Criteria:",
	}
	for i, c := range insights.ScreeningCriteria {
		recommendations = append(recommendations, fmt.Sprintf("%d. %s", i+1, c))
	}

	return strings.Join([]string{
		section("Employment Impact", employment...),
		section("Income Analysis", income...),
		section("Age Group Performance", groupLines(r.AgeGroups)...),
		section("Credit Score Impact", groupLines(r.Credit)...),
		section("Screening Recommendations", recommendations...),
	}, "\n\n")
}

// RenderDistribution draws category and payment counts as bars.
func RenderDistribution(d insights.Distribution) string {
	var lines []string
	for _, c := range d.Categories {
		bar := lipgloss.NewStyle().Foreground(CategoryColor(c.Category)).Render(strings.Repeat("█", c.Count))
		lines = append(lines, fmt.Sprintf("%-20s %3d %s", c.Category, c.Count, bar))
	}

	payments := make([]string, 0, len(d.Payments))
	for _, p := range d.Payments {
		payments = append(payments, fmt.Sprintf("%s: %d", p.Value, p.Count))
	}
	if len(payments) == 0 {
		payments = append(payments, NoData)
	}

	histogram := make([]string, 0, len(d.Histogram))
	for _, bin := range d.Histogram {
		if bin.Count == 0 {
			continue
		}
		histogram = append(histogram, fmt.Sprintf("%5.1f-%5.1f %s %d", bin.Low, bin.High, strings.Repeat("▇", bin.Count), bin.Count))
	}
	if len(histogram) == 0 {
		histogram = append(histogram, NoData)
	}

	return strings.Join([]string{
		section("Quality Categories", lines...),
		section("Rent Paid On Time", payments...),
		section("Score Distribution", histogram...),
	}, "\n\n")
}

// RenderTable draws a projected table.
func RenderTable(t export.Table) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(t.Columns...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Render()
}
