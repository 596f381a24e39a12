package model

// Dataset is one uploaded tenant file.
// Header and Rows keep every original column so exports can reproduce them.
type Dataset struct {
	Header  []string
	Rows    [][]string
	Tenants []Tenant
}

// Len returns the number of tenant records.
func (d *Dataset) Len() int {
	return len(d.Tenants)
}

// Analysis is a dataset together with its scored tenants.
// Tenants[i] was scored from Dataset.Tenants[i].
type Analysis struct {
	Dataset *Dataset
	Tenants []ScoredTenant
}
