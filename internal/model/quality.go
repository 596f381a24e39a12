package model

import "fmt"

// Category is the discrete quality band a tenant falls into.
type Category string

const (
	// CategoryExcellent covers scores of 80 and above.
	CategoryExcellent Category = "Excellent (Premium)"
	// CategoryVeryGood covers scores from 70 up to 80.
	CategoryVeryGood Category = "Very Good"
	// CategoryGood covers scores from 60 up to 70.
	CategoryGood Category = "Good"
	// CategoryAverage covers scores from 50 up to 60.
	CategoryAverage Category = "Average"
	// CategoryPoor covers scores below 50.
	CategoryPoor Category = "Poor (High Risk)"
)

// Categories lists every category from best to worst.
var Categories = []Category{
	CategoryExcellent,
	CategoryVeryGood,
	CategoryGood,
	CategoryAverage,
	CategoryPoor,
}

// ParseCategory resolves a category from its label.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown quality category %q", s)
}

// AgeGroup is the age bucket used for reporting.
type AgeGroup string

const (
	AgeGroup18To25 AgeGroup = "18-25"
	AgeGroup26To35 AgeGroup = "26-35"
	AgeGroup36To45 AgeGroup = "36-45"
	AgeGroup45Plus AgeGroup = "45+"
)

// AgeGroups lists the age buckets in ascending order.
var AgeGroups = []AgeGroup{
	AgeGroup18To25,
	AgeGroup26To35,
	AgeGroup36To45,
	AgeGroup45Plus,
}

// PaymentMode selects tenants by their rent payment record.
type PaymentMode string

const (
	PaymentAll     PaymentMode = "all"
	PaymentOnTime  PaymentMode = "on-time"
	PaymentHasLate PaymentMode = "late"
)

// PaymentModes lists the supported payment filters in display order.
var PaymentModes = []PaymentMode{PaymentAll, PaymentOnTime, PaymentHasLate}

// ParsePaymentMode resolves a payment mode; empty input means PaymentAll.
func ParsePaymentMode(s string) (PaymentMode, error) {
	if s == "" {
		return PaymentAll, nil
	}
	for _, m := range PaymentModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment filter %q (want all, on-time or late)", s)
}

// Label returns the human readable name shown in dashboards.
func (m PaymentMode) Label() string {
	switch m {
	case PaymentOnTime:
		return "Pays On Time Only"
	case PaymentHasLate:
		return "Has Late Payments"
	default:
		return "All"
	}
}
