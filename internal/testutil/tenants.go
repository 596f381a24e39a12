// Package testutil provides tenant fixtures shared across package tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/Veraticus/the-rent-must-flow/internal/ingest"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/scoring"
)

// SampleCSV holds seven tenants with hand-checked scores:
//
//	John Smith     92.0  Excellent (Premium)
//	Sarah Johnson  76.0  Very Good
//	Mike Brown     18.0  Poor (High Risk)   (damage missing)
//	Emma Davis     77.5  Very Good          (unemployed)
//	Liam Wilson    58.5  Average
//	Olivia Taylor  46.5  Poor (High Risk)
//	Noah Evans     66.0  Good
const SampleCSV = `Name,Age,Employment Status,Employment Duration (Years),Annual Income (£),Monthly Salary (£),Credit Score,Rent Paid On Time,Late Payments,Damage To Property,Noise Complaints,Tenancy Duration (Months),Eviction Notice,Room Cleanliness,Reference Score (1-10),Smoking Status,Pet Owner
John Smith,28,Full-time,3,35000,2916,780,Yes,0,No,0,18,No,Excellent,10,Non-smoker,No
Sarah Johnson,35,Part-time,1.5,28000,2333,680,Yes,1,No,1,12,No,Good,8,Non-smoker,Yes
Mike Brown,24,Student,0.5,15000,1250,550,No,3,,2,6,No,Average,6,Smoker,No
Emma Davis,42,Unemployed,0,12000,1000,640,Yes,0,No,0,24,No,Good,7,Non-smoker,No
Liam Wilson,51,Full-time,10,60000,5000,720,Yes,2,Yes,1,9,No,Average,9,Non-smoker,No
Olivia Taylor,31,Self-employed,2,48000,4000,610,No,1,No,0,14,Yes,Good,5,Non-smoker,Yes
Noah Evans,29,Full-time,1,30000,2500,700,Yes,0,No,2,7,No,Poor,6,Smoker,Yes
`

// SampleScores lists the expected score of every SampleCSV row in file order.
var SampleScores = []float64{92, 76, 18, 77.5, 58.5, 46.5, 66}

// LoadSample parses SampleCSV.
func LoadSample(t testing.TB) *model.Dataset {
	t.Helper()

	dataset, err := ingest.NewParser().Parse(context.Background(), strings.NewReader(SampleCSV))
	if err != nil {
		t.Fatalf("failed to parse sample CSV: %v", err)
	}
	return dataset
}

// ScoredSample parses and scores SampleCSV.
func ScoredSample(t testing.TB) []model.ScoredTenant {
	t.Helper()
	return scoring.Enrich(LoadSample(t).Tenants)
}

// TenantBuilder builds tenants for tests, starting from a tenant who earns every point.
type TenantBuilder struct {
	tenant model.Tenant
}

// NewTenant starts a builder for a 92-point tenant.
func NewTenant(name string) *TenantBuilder {
	return &TenantBuilder{tenant: model.Tenant{
		Name:             name,
		Age:              30,
		EmploymentStatus: "Full-time",
		EmploymentYears:  3,
		AnnualIncome:     40000,
		MonthlySalary:    3333,
		CreditScore:      780,
		RentPaidOnTime:   "Yes",
		DamageToProperty: "No",
		TenancyMonths:    18,
		EvictionNotice:   "No",
		RoomCleanliness:  "Excellent",
		ReferenceScore:   10,
		SmokingStatus:    "Non-smoker",
		PetOwner:         "No",
	}}
}

// WithAge sets the tenant's age.
func (b *TenantBuilder) WithAge(age int) *TenantBuilder {
	b.tenant.Age = age
	return b
}

// WithEmployment sets employment status and duration.
func (b *TenantBuilder) WithEmployment(status string, years float64) *TenantBuilder {
	b.tenant.EmploymentStatus = status
	b.tenant.EmploymentYears = years
	return b
}

// WithIncome sets annual income and derives the monthly salary.
func (b *TenantBuilder) WithIncome(annual float64) *TenantBuilder {
	b.tenant.AnnualIncome = annual
	b.tenant.MonthlySalary = annual / 12
	return b
}

// WithCredit sets the credit score.
func (b *TenantBuilder) WithCredit(score int) *TenantBuilder {
	b.tenant.CreditScore = score
	return b
}

// PaysLate marks rent as not paid on time with the given late payment count.
func (b *TenantBuilder) PaysLate(latePayments int) *TenantBuilder {
	b.tenant.RentPaidOnTime = "No"
	b.tenant.LatePayments = latePayments
	return b
}

// WithReference sets the reference score.
func (b *TenantBuilder) WithReference(score float64) *TenantBuilder {
	b.tenant.ReferenceScore = score
	return b
}

// Build returns the tenant.
func (b *TenantBuilder) Build() model.Tenant {
	return b.tenant
}

// CSVFor renders tenants as an upload with the standard header.
func CSVFor(tenants ...model.Tenant) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(model.RequiredColumns)
	for _, t := range tenants {
		_ = w.Write([]string{
			t.Name,
			strconv.Itoa(t.Age),
			t.EmploymentStatus,
			strconv.FormatFloat(t.EmploymentYears, 'f', -1, 64),
			strconv.FormatFloat(t.AnnualIncome, 'f', -1, 64),
			strconv.FormatFloat(t.MonthlySalary, 'f', -1, 64),
			strconv.Itoa(t.CreditScore),
			t.RentPaidOnTime,
			strconv.Itoa(t.LatePayments),
			t.DamageToProperty,
			strconv.Itoa(t.NoiseComplaints),
			strconv.Itoa(t.TenancyMonths),
			t.EvictionNotice,
			t.RoomCleanliness,
			strconv.FormatFloat(t.ReferenceScore, 'f', -1, 64),
			t.SmokingStatus,
			t.PetOwner,
		})
	}
	w.Flush()
	return buf.String()
}
