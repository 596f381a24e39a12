package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// NotAvailable replaces a missing "Damage To Property" value before scoring.
const NotAvailable = "Not Available"

// Tenant represents a single row of uploaded tenant data.
type Tenant struct {
	Name             string
	EmploymentStatus string
	RentPaidOnTime   string // "Yes" or "No"
	DamageToProperty string
	EvictionNotice   string // "Yes" or "No"
	RoomCleanliness  string
	SmokingStatus    string
	PetOwner         string // "Yes" or "No"
	EmploymentYears  float64
	AnnualIncome     float64
	MonthlySalary    float64
	ReferenceScore   float64 // 1-10
	Age              int
	CreditScore      int
	LatePayments     int
	NoiseComplaints  int
	TenancyMonths    int
}

// PaysOnTime reports whether the tenant's rent is recorded as paid on time.
func (t *Tenant) PaysOnTime() bool {
	return t.RentPaidOnTime == "Yes"
}

// IsUnemployed reports whether the tenant's employment status is "Unemployed".
func (t *Tenant) IsUnemployed() bool {
	return t.EmploymentStatus == "Unemployed"
}

// Hash creates a content hash used to memoize per-row computations.
func (t *Tenant) Hash() string {
	data := strings.Join([]string{
		t.Name,
		fmt.Sprintf("%d", t.Age),
		t.EmploymentStatus,
		fmt.Sprintf("%g", t.EmploymentYears),
		fmt.Sprintf("%.2f", t.AnnualIncome),
		fmt.Sprintf("%.2f", t.MonthlySalary),
		fmt.Sprintf("%d", t.CreditScore),
		t.RentPaidOnTime,
		fmt.Sprintf("%d", t.LatePayments),
		t.DamageToProperty,
		fmt.Sprintf("%d", t.NoiseComplaints),
		fmt.Sprintf("%d", t.TenancyMonths),
		t.EvictionNotice,
		t.RoomCleanliness,
		fmt.Sprintf("%g", t.ReferenceScore),
		t.SmokingStatus,
		t.PetOwner,
	}, "\x1f")
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Breakdown holds the points a tenant earned in each rule group.
type Breakdown struct {
	Payment      float64
	PropertyCare float64
	Cleanliness  float64
	Stability    float64
	Financial    float64
	Reference    float64
	Lifestyle    float64
}

// Total sums every rule group.
func (b Breakdown) Total() float64 {
	return b.Payment + b.PropertyCare + b.Cleanliness + b.Stability +
		b.Financial + b.Reference + b.Lifestyle
}

// ScoredTenant is a tenant enriched with its quality score and derived fields.
type ScoredTenant struct {
	Tenant
	Hash      string
	Category  Category
	AgeGroup  AgeGroup
	Breakdown Breakdown
	Score     float64
	// Index is the tenant's zero-based position in the uploaded file.
	Index int
}
