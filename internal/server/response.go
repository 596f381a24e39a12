package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// UploadResponse is returned after a dataset is accepted.
type UploadResponse struct {
	ID      string `json:"id"`
	Tenants int    `json:"tenants"`
}

// BreakdownResponse is the per-rule score of a tenant.
type BreakdownResponse struct {
	Payment      float64 `json:"payment"`
	PropertyCare float64 `json:"property_care"`
	Cleanliness  float64 `json:"cleanliness"`
	Stability    float64 `json:"stability"`
	Financial    float64 `json:"financial"`
	Reference    float64 `json:"reference"`
	Lifestyle    float64 `json:"lifestyle"`
}

// TenantResponse is one scored tenant.
type TenantResponse struct {
	Breakdown        *BreakdownResponse `json:"breakdown,omitempty"`
	Name             string             `json:"name"`
	EmploymentStatus string             `json:"employment_status"`
	RentPaidOnTime   string             `json:"rent_paid_on_time"`
	DamageToProperty string             `json:"damage_to_property"`
	EvictionNotice   string             `json:"eviction_notice"`
	RoomCleanliness  string             `json:"room_cleanliness"`
	SmokingStatus    string             `json:"smoking_status"`
	PetOwner         string             `json:"pet_owner"`
	Category         model.Category     `json:"category"`
	AgeGroup         model.AgeGroup     `json:"age_group"`
	EmploymentYears  float64            `json:"employment_years"`
	AnnualIncome     float64            `json:"annual_income"`
	MonthlySalary    float64            `json:"monthly_salary"`
	ReferenceScore   float64            `json:"reference_score"`
	Score            float64            `json:"score"`
	Index            int                `json:"index"`
	Age              int                `json:"age"`
	CreditScore      int                `json:"credit_score"`
	LatePayments     int                `json:"late_payments"`
	NoiseComplaints  int                `json:"noise_complaints"`
	TenancyMonths    int                `json:"tenancy_months"`
}

// TenantsResponse is a filtered page of tenants.
type TenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
	Total   int              `json:"total"`
	Matched int              `json:"matched"`
}

func newTenantResponse(t *model.ScoredTenant, withBreakdown bool) TenantResponse {
	resp := TenantResponse{
		Name:             t.Name,
		EmploymentStatus: t.EmploymentStatus,
		RentPaidOnTime:   t.RentPaidOnTime,
		DamageToProperty: t.DamageToProperty,
		EvictionNotice:   t.EvictionNotice,
		RoomCleanliness:  t.RoomCleanliness,
		SmokingStatus:    t.SmokingStatus,
		PetOwner:         t.PetOwner,
		Category:         t.Category,
		AgeGroup:         t.AgeGroup,
		EmploymentYears:  t.EmploymentYears,
		AnnualIncome:     t.AnnualIncome,
		MonthlySalary:    t.MonthlySalary,
		ReferenceScore:   t.ReferenceScore,
		Score:            t.Score,
		Index:            t.Index,
		Age:              t.Age,
		CreditScore:      t.CreditScore,
		LatePayments:     t.LatePayments,
		NoiseComplaints:  t.NoiseComplaints,
		TenancyMonths:    t.TenancyMonths,
	}
	if withBreakdown {
		b := t.Breakdown
		resp.Breakdown = &BreakdownResponse{
			Payment:      b.Payment,
			PropertyCare: b.PropertyCare,
			Cleanliness:  b.Cleanliness,
			Stability:    b.Stability,
			Financial:    b.Financial,
			Reference:    b.Reference,
			Lifestyle:    b.Lifestyle,
		}
	}
	return resp
}

func newTenantsResponse(rows []model.ScoredTenant, total int) TenantsResponse {
	resp := TenantsResponse{
		Tenants: make([]TenantResponse, len(rows)),
		Total:   total,
		Matched: len(rows),
	}
	for i := range rows {
		resp.Tenants[i] = newTenantResponse(&rows[i], false)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case common.IsInputError(err),
		errors.Is(err, common.ErrUnknownSortKey),
		errors.Is(err, common.ErrUnknownExport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates err into a JSON error response.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	requestID := GetRequestID(r.Context())

	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err, "path", r.URL.Path, "request_id", requestID)
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: message, RequestID: requestID})
}
