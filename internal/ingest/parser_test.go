package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Name,Age,Employment Status,Employment Duration (Years),Annual Income (£),Monthly Salary (£),Credit Score,Rent Paid On Time,Late Payments,Damage To Property,Noise Complaints,Tenancy Duration (Months),Eviction Notice,Room Cleanliness,Reference Score (1-10),Smoking Status,Pet Owner"

const goodRow = "John Smith,28,Full-time,3,35000,2916,780,Yes,0,No,0,18,No,Excellent,10,Non-smoker,No"

func parse(t *testing.T, content string) (*model.Dataset, error) {
	t.Helper()
	return NewParser().Parse(context.Background(), strings.NewReader(content))
}

func TestParse_ValidFile(t *testing.T) {
	dataset, err := parse(t, header+"\n"+goodRow+"\n")
	require.NoError(t, err)
	require.Equal(t, 1, dataset.Len())

	got := dataset.Tenants[0]
	assert.Equal(t, "John Smith", got.Name)
	assert.Equal(t, 28, got.Age)
	assert.Equal(t, "Full-time", got.EmploymentStatus)
	assert.Equal(t, 3.0, got.EmploymentYears)
	assert.Equal(t, 35000.0, got.AnnualIncome)
	assert.Equal(t, 2916.0, got.MonthlySalary)
	assert.Equal(t, 780, got.CreditScore)
	assert.Equal(t, "Yes", got.RentPaidOnTime)
	assert.Equal(t, 0, got.LatePayments)
	assert.Equal(t, "No", got.DamageToProperty)
	assert.Equal(t, 18, got.TenancyMonths)
	assert.Equal(t, "Excellent", got.RoomCleanliness)
	assert.Equal(t, 10.0, got.ReferenceScore)
	assert.Equal(t, "Non-smoker", got.SmokingStatus)
	assert.Equal(t, "No", got.PetOwner)

	assert.Equal(t, strings.Split(header, ","), dataset.Header)
	assert.Equal(t, strings.Split(goodRow, ","), dataset.Rows[0])
}

func TestParse_HeaderVariations(t *testing.T) {
	t.Run("byte order mark and odd casing", func(t *testing.T) {
		content := "\ufeff" + strings.ToUpper(header) + "\n" + goodRow + "\n"
		dataset, err := parse(t, content)
		require.NoError(t, err)
		assert.Equal(t, "John Smith", dataset.Tenants[0].Name)
	})

	t.Run("extra columns are kept in place", func(t *testing.T) {
		content := "Tenant ID," + header + "\nT-001," + goodRow + "\n"
		dataset, err := parse(t, content)
		require.NoError(t, err)
		assert.Equal(t, "John Smith", dataset.Tenants[0].Name)
		assert.Equal(t, "Tenant ID", dataset.Header[0])
		assert.Equal(t, "T-001", dataset.Rows[0][0])
	})
}

func TestParse_MissingDamageIsNormalized(t *testing.T) {
	row := "Mike Brown,24,Student,0.5,15000,1250,550,No,3,,2,6,No,Average,6,Smoker,No"
	dataset, err := parse(t, header+"\n"+row+"\n")
	require.NoError(t, err)

	assert.Equal(t, model.NotAvailable, dataset.Tenants[0].DamageToProperty)
	assert.Equal(t, model.NotAvailable, dataset.Rows[0][9])
}

func TestParse_WholeNumbersWrittenAsFloats(t *testing.T) {
	row := "John Smith,28.0,Full-time,3,35000,2916,780.0,Yes,0.0,No,0,18.0,No,Excellent,10,Non-smoker,No"
	dataset, err := parse(t, header+"\n"+row+"\n")
	require.NoError(t, err)
	assert.Equal(t, 28, dataset.Tenants[0].Age)
	assert.Equal(t, 780, dataset.Tenants[0].CreditScore)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		wantErr     error
		name        string
		content     string
		wantMessage string
	}{
		{
			name:    "empty file",
			content: "",
			wantErr: common.ErrNoRecords,
		},
		{
			name:    "header only",
			content: header + "\n",
			wantErr: common.ErrNoRecords,
		},
		{
			name:        "missing columns",
			content:     "Name,Age\nJohn,28\n",
			wantErr:     common.ErrMissingColumns,
			wantMessage: "Credit Score",
		},
		{
			name:        "misnamed column",
			content:     strings.Replace(header, "Pet Owner", "Pets", 1) + "\n" + goodRow + "\n",
			wantErr:     common.ErrMissingColumns,
			wantMessage: "Pet Owner",
		},
		{
			name:        "unparseable number",
			content:     header + "\n" + strings.Replace(goodRow, ",780,", ",excellent,", 1) + "\n",
			wantErr:     common.ErrInvalidField,
			wantMessage: `column "Credit Score"`,
		},
		{
			name:        "fractional count",
			content:     header + "\n" + strings.Replace(goodRow, ",Yes,0,", ",Yes,1.5,", 1) + "\n",
			wantErr:     common.ErrInvalidField,
			wantMessage: "Late Payments",
		},
		{
			name:        "negative income",
			content:     header + "\n" + strings.Replace(goodRow, ",35000,", ",-35000,", 1) + "\n",
			wantErr:     common.ErrOutOfRange,
			wantMessage: "Annual Income",
		},
		{
			name:        "reference above ten",
			content:     header + "\n" + strings.Replace(goodRow, ",Excellent,10,", ",Excellent,11,", 1) + "\n",
			wantErr:     common.ErrOutOfRange,
			wantMessage: "between 1 and 10",
		},
		{
			name:        "reference below one",
			content:     header + "\n" + strings.Replace(goodRow, ",Excellent,10,", ",Excellent,-2,", 1) + "\n",
			wantErr:     common.ErrOutOfRange,
			wantMessage: "Reference Score",
		},
		{
			name:        "not a number reference",
			content:     header + "\n" + strings.Replace(goodRow, ",Excellent,10,", ",Excellent,NaN,", 1) + "\n",
			wantErr:     common.ErrInvalidField,
			wantMessage: "Reference Score",
		},
		{
			name:    "short row",
			content: header + "\nJohn Smith,28\n",
			wantErr: common.ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset, err := parse(t, tt.content)
			require.Error(t, err)
			assert.Nil(t, dataset, "no partial results on error")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, common.IsInputError(err))
			if tt.wantMessage != "" {
				assert.Contains(t, err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestParse_FieldErrorReportsLine(t *testing.T) {
	bad := strings.Replace(goodRow, ",28,", ",old,", 1)
	_, err := parse(t, header+"\n"+goodRow+"\n"+bad+"\n")

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, 3, fieldErr.Line)
	assert.Equal(t, model.ColAge, fieldErr.Column)
	assert.Equal(t, "old", fieldErr.Value)
}

func TestParse_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().Parse(ctx, strings.NewReader(header+"\n"+goodRow+"\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := NewParser().ParseFile(context.Background(), "/definitely/not/here.csv")

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, err.Error(), "unable to open tenant file")
}
