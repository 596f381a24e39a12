package model

// Input column headers.
const (
	ColName             = "Name"
	ColAge              = "Age"
	ColEmploymentStatus = "Employment Status"
	ColEmploymentYears  = "Employment Duration (Years)"
	ColAnnualIncome     = "Annual Income (£)"
	ColMonthlySalary    = "Monthly Salary (£)"
	ColCreditScore      = "Credit Score"
	ColRentPaidOnTime   = "Rent Paid On Time"
	ColLatePayments     = "Late Payments"
	ColDamageToProperty = "Damage To Property"
	ColNoiseComplaints  = "Noise Complaints"
	ColTenancyMonths    = "Tenancy Duration (Months)"
	ColEvictionNotice   = "Eviction Notice"
	ColRoomCleanliness  = "Room Cleanliness"
	ColReferenceScore   = "Reference Score (1-10)"
	ColSmokingStatus    = "Smoking Status"
	ColPetOwner         = "Pet Owner"
)

// Derived column headers appended on export.
const (
	ColQualityScore    = "Tenant_Quality_Score"
	ColQualityCategory = "Quality_Category"
	ColAgeGroup        = "Age_Group"
)

// RequiredColumns lists every column an upload must contain.
var RequiredColumns = []string{
	ColName,
	ColAge,
	ColEmploymentStatus,
	ColEmploymentYears,
	ColAnnualIncome,
	ColMonthlySalary,
	ColCreditScore,
	ColRentPaidOnTime,
	ColLatePayments,
	ColDamageToProperty,
	ColNoiseComplaints,
	ColTenancyMonths,
	ColEvictionNotice,
	ColRoomCleanliness,
	ColReferenceScore,
	ColSmokingStatus,
	ColPetOwner,
}

// DerivedColumns lists the columns computed during enrichment.
var DerivedColumns = []string{ColQualityScore, ColQualityCategory, ColAgeGroup}
