package export

import (
	"strconv"

	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/query"
)

// DefaultColumns are shown in the full report unless the user picks others.
var DefaultColumns = []string{
	model.ColName,
	model.ColAge,
	model.ColEmploymentStatus,
	model.ColAnnualIncome,
	model.ColRentPaidOnTime,
	model.ColCreditScore,
	model.ColQualityCategory,
	model.ColQualityScore,
}

// Table is a rectangular projection of tenants.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ProjectableColumns lists every column Project understands.
func ProjectableColumns() []string {
	cols := make([]string, 0, len(model.RequiredColumns)+len(model.DerivedColumns))
	cols = append(cols, model.RequiredColumns...)
	return append(cols, model.DerivedColumns...)
}

// Value returns the display value of column for a tenant, and false for
// an unknown column.
func Value(t *model.ScoredTenant, column string) (string, bool) {
	switch column {
	case model.ColName:
		return t.Name, true
	case model.ColAge:
		return strconv.Itoa(t.Age), true
	case model.ColEmploymentStatus:
		return t.EmploymentStatus, true
	case model.ColEmploymentYears:
		return formatNumber(t.EmploymentYears), true
	case model.ColAnnualIncome:
		return formatNumber(t.AnnualIncome), true
	case model.ColMonthlySalary:
		return formatNumber(t.MonthlySalary), true
	case model.ColCreditScore:
		return strconv.Itoa(t.CreditScore), true
	case model.ColRentPaidOnTime:
		return t.RentPaidOnTime, true
	case model.ColLatePayments:
		return strconv.Itoa(t.LatePayments), true
	case model.ColDamageToProperty:
		return t.DamageToProperty, true
	case model.ColNoiseComplaints:
		return strconv.Itoa(t.NoiseComplaints), true
	case model.ColTenancyMonths:
		return strconv.Itoa(t.TenancyMonths), true
	case model.ColEvictionNotice:
		return t.EvictionNotice, true
	case model.ColRoomCleanliness:
		return t.RoomCleanliness, true
	case model.ColReferenceScore:
		return formatNumber(t.ReferenceScore), true
	case model.ColSmokingStatus:
		return t.SmokingStatus, true
	case model.ColPetOwner:
		return t.PetOwner, true
	case model.ColQualityScore:
		return FormatScore(t.Score), true
	case model.ColQualityCategory:
		return string(t.Category), true
	case model.ColAgeGroup:
		return string(t.AgeGroup), true
	default:
		return "", false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Project selects columns from rows in the given order. Unknown columns are dropped.
func Project(rows []model.ScoredTenant, columns []string) Table {
	table := Table{Columns: make([]string, 0, len(columns))}
	for _, col := range columns {
		if _, ok := Value(&model.ScoredTenant{}, col); ok {
			table.Columns = append(table.Columns, col)
		}
	}

	table.Rows = make([][]string, 0, len(rows))
	for i := range rows {
		row := make([]string, len(table.Columns))
		for j, col := range table.Columns {
			row[j], _ = Value(&rows[i], col)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// FullReport projects rows onto columns, highest score first.
// Nil columns means DefaultColumns.
func FullReport(rows []model.ScoredTenant, columns []string) Table {
	if columns == nil {
		columns = DefaultColumns
	}
	return Project(query.Sort(rows, query.SortByScore, query.Descending), columns)
}
