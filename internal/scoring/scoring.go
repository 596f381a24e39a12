// Package scoring computes tenant quality scores from a fixed rule table.
package scoring

import (
	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

// MaxScore is the ceiling every score is clamped to.
const MaxScore = 100.0

// Maximum points available per rule group.
const (
	MaxPayment      = 30.0
	MaxPropertyCare = 20.0
	MaxCleanliness  = 5.0
	MaxStability    = 20.0
	MaxFinancial    = 8.0
	MaxReference    = 5.0
	MaxLifestyle    = 4.0
)

// cleanlinessPoints maps a cleanliness label to its points. Unknown labels earn nothing.
var cleanlinessPoints = map[string]float64{
	"Excellent": 5,
	"Good":      3,
	"Average":   1,
	"Poor":      0,
}

// Calculate evaluates every rule group for a tenant.
func Calculate(t *model.Tenant) model.Breakdown {
	return model.Breakdown{
		Payment:      paymentPoints(t),
		PropertyCare: propertyCarePoints(t),
		Cleanliness:  cleanlinessPoints[t.RoomCleanliness],
		Stability:    stabilityPoints(t),
		Financial:    financialPoints(t.CreditScore),
		Reference:    min(t.ReferenceScore*0.5, MaxReference),
		Lifestyle:    lifestylePoints(t),
	}
}

// Score returns the tenant's quality score in [0, 100].
func Score(t *model.Tenant) float64 {
	return clamp(Calculate(t).Total())
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	return min(score, MaxScore)
}

func paymentPoints(t *model.Tenant) float64 {
	var points float64
	if t.RentPaidOnTime == "Yes" {
		points += 25
	}
	switch {
	case t.LatePayments == 0:
		points += 5
	case t.LatePayments >= 1 && t.LatePayments <= 2:
		points += 2
	}
	return points
}

func propertyCarePoints(t *model.Tenant) float64 {
	var points float64
	// Only an explicit "No" counts; "Not Available" is treated as damage.
	if t.DamageToProperty == "No" {
		points += 15
	}
	switch t.NoiseComplaints {
	case 0:
		points += 5
	case 1:
		points += 2
	}
	return points
}

func stabilityPoints(t *model.Tenant) float64 {
	var points float64
	switch {
	case t.TenancyMonths >= 12:
		points += 10
	case t.TenancyMonths >= 6:
		points += 5
	}
	switch {
	case t.EmploymentYears >= 2:
		points += 5
	case t.EmploymentYears >= 1:
		points += 3
	}
	if t.EvictionNotice == "No" {
		points += 5
	}
	return points
}

func financialPoints(creditScore int) float64 {
	switch {
	case creditScore >= 750:
		return 8
	case creditScore >= 650:
		return 5
	case creditScore >= 550:
		return 2
	default:
		return 0
	}
}

func lifestylePoints(t *model.Tenant) float64 {
	var points float64
	if t.SmokingStatus == "Non-smoker" {
		points += 2
	}
	if t.PetOwner == "No" {
		points += 2
	}
	return points
}

// Categorize maps a score onto its quality band.
func Categorize(score float64) model.Category {
	switch {
	case score >= 80:
		return model.CategoryExcellent
	case score >= 70:
		return model.CategoryVeryGood
	case score >= 60:
		return model.CategoryGood
	case score >= 50:
		return model.CategoryAverage
	default:
		return model.CategoryPoor
	}
}

// AgeGroupFor buckets an age into (0,25], (25,35], (35,45], (45,100].
// Ages outside (0,100] have no group.
func AgeGroupFor(age int) model.AgeGroup {
	switch {
	case age <= 0 || age > 100:
		return ""
	case age <= 25:
		return model.AgeGroup18To25
	case age <= 35:
		return model.AgeGroup26To35
	case age <= 45:
		return model.AgeGroup36To45
	default:
		return model.AgeGroup45Plus
	}
}
