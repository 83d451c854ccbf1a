package inventory

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/tag-atlas/pkg/models/api"
	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/compliance"
	"github.com/de-tools/tag-atlas/pkg/services/remediation"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cost(v float64) *float64 {
	return &v
}

func testDataset() []domain.Resource {
	rs := []domain.Resource{
		{ResourceID: "r1", Service: "EC2", Department: "Eng", Region: "us-east-1", Environment: "prod", Tagged: "Yes", MonthlyCostUSD: cost(100)},
		{ResourceID: "r2", Service: "S3", Department: "Eng", Region: "us-east-1", Environment: "dev", Tagged: "No", MonthlyCostUSD: cost(50)},
		{ResourceID: "r3", Service: "RDS", Department: "Ops", Region: "eu-west-1", Environment: "prod", Tagged: "No", MonthlyCostUSD: cost(30)},
		{ResourceID: "r4", Service: "EC2", Department: "Ops", Region: "eu-west-1", Environment: "dev", Tagged: "Yes", MonthlyCostUSD: cost(20)},
	}
	compliance.Rescore(rs)
	return rs
}

func setupRouter() *chi.Mux {
	h := NewHandler(remediation.NewWorkbench(testDataset()))

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/inventory/summary", h.GetSummary)
		r.Get("/inventory/compliance", h.GetCompliance)
		r.Get("/inventory/cost", h.GetCostBreakdown)
		r.Post("/inventory/filter", h.FilterInventory)
		r.Get("/inventory/filter/options", h.GetFilterOptions)
		r.Get("/remediation/untagged", h.GetUntaggedSubset)
		r.Put("/remediation/edited", h.PutEditedSubset)
		r.Get("/remediation/comparison", h.GetComparison)
		r.Get("/export/{name}", h.ExportCSV)
	})
	return router
}

func TestGetSummary(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 4, got.TotalResources)
	assert.Equal(t, 2, got.TaggedCount)
	assert.Equal(t, 2, got.UntaggedCount)
	assert.Equal(t, 200.0, got.TotalCost)
	assert.Equal(t, 80.0, got.UntaggedCost)
	assert.Equal(t, 40.0, got.PctUntaggedCost)
}

func TestGetCostBreakdown_UntaggedByDepartment(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/cost?by=Department&untagged=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.CostBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Top)
	assert.Equal(t, []string{"Eng"}, got.Top.Key)
	assert.Equal(t, 50.0, got.Top.Total)
	assert.Len(t, got.Groups, 2)
}

func TestGetCostBreakdown_UnknownField(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/cost?by=Nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCompliance(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/compliance?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.ComplianceReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.LowestCompliance, 2)
	assert.Len(t, got.MissingTagFields, 5)
}

func TestFilterInventory(t *testing.T) {
	router := setupRouter()

	body, _ := json.Marshal(api.FilterRequest{
		Filters: map[string][]string{"Service": {"EC2"}, "Region": {}},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/inventory/filter", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.FilterResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 120.0, got.TotalCost)
}

func TestGetFilterOptions(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/filter/options", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"EC2", "S3", "RDS"}, got.Fields["Service"])
	assert.Equal(t, []string{"Eng", "Ops"}, got.Fields["Department"])
	assert.NotContains(t, got.Fields, "ResourceID")
}

func TestRemediationFlow(t *testing.T) {
	router := setupRouter()

	// seed subset is the untagged rows
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/remediation/untagged", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var subset []api.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subset))
	require.Len(t, subset, 2)

	// remediate r2, drop r3
	subset[0].Tagged = "Yes"
	subset[0].Owner = "alex"
	body, _ := json.Marshal(subset[:1])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/remediation/edited", bytes.NewReader(body)))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/remediation/comparison", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var cmp api.Comparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))
	assert.Equal(t, 2, cmp.Before.UntaggedCount)
	assert.Equal(t, 0, cmp.After.UntaggedCount)
	assert.Equal(t, -2, cmp.CountDelta)
	assert.Equal(t, 80.0, cmp.CostDelta)
	assert.Equal(t, 40.0, cmp.PctPointDelta)
}

func TestExportCSV(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export/untagged", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ResourceID,"))
	assert.True(t, strings.HasPrefix(lines[1], "r2,"))
	assert.True(t, strings.HasPrefix(lines[2], "r3,"))
}

func TestExportCSV_UnknownName(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/export/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
