package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/the-rent-must-flow/internal/insights"
	"github.com/Veraticus/the-rent-must-flow/internal/model"
	"github.com/Veraticus/the-rent-must-flow/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type HandlerSuite struct {
	suite.Suite
	handler *Handler
	router  http.Handler
	id      string
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = NewHandler(NewStore(), prometheus.NewRegistry(), logger, 1<<20)
	s.handler.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	s.router = s.handler.Routes()
	s.id = s.upload(testutil.SampleCSV)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) upload(csv string) string {
	rec := s.do(http.MethodPost, "/datasets", strings.NewReader(csv))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp UploadResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.ID)
	return resp.ID
}

func (s *HandlerSuite) tenants(target string) TenantsResponse {
	rec := s.do(http.MethodGet, target, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp TenantsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func tenantNames(resp TenantsResponse) []string {
	out := make([]string, len(resp.Tenants))
	for i, t := range resp.Tenants {
		out[i] = t.Name
	}
	return out
}

func (s *HandlerSuite) TestUpload() {
	rec := s.do(http.MethodPost, "/datasets", strings.NewReader(testutil.SampleCSV))
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.NotEmpty(rec.Header().Get(RequestIDHeader))

	var resp UploadResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(7, resp.Tenants)
	s.NotEqual(s.id, resp.ID)
	s.Equal(2, s.handler.store.Len())
}

func (s *HandlerSuite) TestUpload_Multipart() {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "tenants.csv")
	s.Require().NoError(err)
	_, err = part.Write([]byte(testutil.SampleCSV))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/datasets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *HandlerSuite) TestUpload_Rejected() {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty", body: "", message: "no tenant records"},
		{name: "missing columns", body: "Name,Age\nJohn,28\n", message: "missing required columns"},
		{name: "bad number", body: strings.Replace(testutil.SampleCSV, "35000", "lots", 1), message: "line 2"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/datasets", strings.NewReader(tt.body))
			s.Equal(http.StatusBadRequest, rec.Code)

			var resp errorResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			s.Contains(resp.Error, tt.message)
			s.NotEmpty(resp.RequestID)
		})
	}
	s.Equal(1, s.handler.store.Len())
}

func (s *HandlerSuite) TestUpload_TooLarge() {
	s.handler.maxUpload = 64
	rec := s.do(http.MethodPost, "/datasets", strings.NewReader(testutil.SampleCSV))
	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
}

func (s *HandlerSuite) TestListDatasets() {
	rec := s.do(http.MethodGet, "/datasets", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var infos []DatasetInfo
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &infos))
	s.Require().Len(infos, 1)
	s.Equal(s.id, infos[0].ID)
	s.Equal(7, infos[0].Tenants)
}

func (s *HandlerSuite) TestTenants() {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name: "default sorts by score",
			want: []string{"John Smith", "Emma Davis", "Sarah Johnson", "Noah Evans", "Liam Wilson", "Olivia Taylor", "Mike Brown"},
		},
		{
			name:  "min score",
			query: "min_score=60",
			want:  []string{"John Smith", "Emma Davis", "Sarah Johnson", "Noah Evans"},
		},
		{
			name:  "late payers",
			query: "payment=late",
			want:  []string{"Olivia Taylor", "Mike Brown"},
		},
		{
			name:  "category",
			query: "category=Very+Good",
			want:  []string{"Emma Davis", "Sarah Johnson"},
		},
		{
			name:  "several employment statuses",
			query: "employment=Full-time&employment=Student",
			want:  []string{"John Smith", "Noah Evans", "Liam Wilson", "Mike Brown"},
		},
		{
			name:  "search sorted by name",
			query: "q=SON&sort=name&order=asc",
			want:  []string{"Liam Wilson", "Sarah Johnson"},
		},
		{
			name:  "income ascending",
			query: "sort=income&order=asc&min_score=70",
			want:  []string{"Emma Davis", "Sarah Johnson", "John Smith"},
		},
		{
			name:  "nothing matches",
			query: "min_score=100",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp := s.tenants("/datasets/" + s.id + "/tenants?" + tt.query)
			s.Equal(tt.want, tenantNames(resp))
			s.Equal(7, resp.Total)
			s.Equal(len(tt.want), resp.Matched)
		})
	}
}

func (s *HandlerSuite) TestTenants_BadParams() {
	for _, q := range []string{
		"min_score=abc",
		"min_score=101",
		"min_score=NaN",
		"payment=sometimes",
		"category=Great",
		"sort=shoe_size",
		"order=sideways",
	} {
		s.Run(q, func() {
			rec := s.do(http.MethodGet, "/datasets/"+s.id+"/tenants?"+q, nil)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func (s *HandlerSuite) TestTop() {
	resp := s.tenants("/datasets/" + s.id + "/top?n=3")
	s.Equal([]string{"John Smith", "Emma Davis", "Sarah Johnson"}, tenantNames(resp))

	resp = s.tenants("/datasets/" + s.id + "/top")
	s.Len(resp.Tenants, 7)

	resp = s.tenants("/datasets/" + s.id + "/top?n=1&payment=late")
	s.Equal([]string{"Olivia Taylor"}, tenantNames(resp))

	for _, n := range []string{"0", "-1", "two"} {
		rec := s.do(http.MethodGet, "/datasets/"+s.id+"/top?n="+n, nil)
		s.Equal(http.StatusBadRequest, rec.Code, n)
	}
}

func (s *HandlerSuite) TestTenantDetail() {
	rec := s.do(http.MethodGet, "/datasets/"+s.id+"/tenants/2", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp TenantResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Mike Brown", resp.Name)
	s.Equal(2, resp.Index)
	s.InDelta(18.0, resp.Score, 1e-9)
	s.Equal(model.CategoryPoor, resp.Category)
	s.Equal(model.AgeGroup18To25, resp.AgeGroup)
	s.Equal(model.NotAvailable, resp.DamageToProperty)
	s.Require().NotNil(resp.Breakdown)
	s.InDelta(0.0, resp.Breakdown.Payment, 1e-9)
	s.InDelta(10.0, resp.Breakdown.Stability, 1e-9)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/datasets/"+s.id+"/tenants/7", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/datasets/"+s.id+"/tenants/-1", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/datasets/"+s.id+"/tenants/abc", nil).Code)
}

func (s *HandlerSuite) TestInsights() {
	rec := s.do(http.MethodGet, "/datasets/"+s.id+"/insights", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var report insights.Report
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Equal(7, report.Summary.Filtered.Total)
	s.InDelta(30000, report.MedianIncome, 1e-9)
	s.True(report.HasEmploymentGap)
	s.InDelta(-18.0, report.EmploymentGap, 1e-9)
	s.Equal(insights.Recommendation{Priority: 1, Strong: 2, HighRisk: 2}, report.Recommendation)

	rec = s.do(http.MethodGet, "/datasets/"+s.id+"/insights?min_score=60", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Equal(4, report.Summary.Filtered.Total)
	s.Equal(-3, report.Summary.TotalDelta)
}

func (s *HandlerSuite) TestExport() {
	rec := s.do(http.MethodGet, "/datasets/"+s.id+"/export/filtered?payment=late", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	s.Contains(rec.Header().Get("Content-Disposition"), "filtered_tenants_20261017.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	s.Require().Len(lines, 3)
	s.True(strings.HasSuffix(lines[0], "Tenant_Quality_Score,Quality_Category,Age_Group"))
	s.Contains(lines[1], "Mike Brown")
	s.Contains(lines[1], "Not Available")
	s.True(strings.HasSuffix(lines[1], "18.0,Poor (High Risk),18-25"))

	rec = s.do(http.MethodGet, "/datasets/"+s.id+"/export/all?payment=late", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Disposition"), "complete_tenant_analysis_20261017.csv")
	s.Len(strings.Split(strings.TrimSpace(rec.Body.String()), "\n"), 8)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/datasets/"+s.id+"/export/pdf", nil).Code)
}

func (s *HandlerSuite) TestDelete() {
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/datasets/"+s.id, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/datasets/"+s.id+"/tenants", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/datasets/"+s.id, nil).Code)
	s.Equal(0, s.handler.store.Len())
}

func (s *HandlerSuite) TestUnknownDataset() {
	req := httptest.NewRequest(http.MethodGet, "/datasets/nope/tenants", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("req-123", rec.Header().Get(RequestIDHeader))

	var resp errorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("req-123", resp.RequestID)
	s.Contains(resp.Error, "not found")
}

func (s *HandlerSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok","datasets":1}`, rec.Body.String())

	s.do(http.MethodPost, "/datasets", strings.NewReader("Name,Age\n"))
	s.do(http.MethodGet, "/datasets/"+s.id+"/export/top", nil)

	rec = s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "rent_uploads_total 1")
	s.Contains(body, "rent_tenants_scored_total 7")
	s.Contains(body, "rent_datasets 1")
	s.Contains(body, `rent_upload_failures_total{reason="missing_columns"} 1`)
	s.Contains(body, `rent_exports_total{kind="top"} 1`)
	s.Contains(body, `route="/datasets/{id}/export/{kind}"`)
}
