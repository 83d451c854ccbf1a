package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/tag-atlas/pkg/models/api"
	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/remediation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI() *WebAPI {
	c := 50.0
	resources := []domain.Resource{
		{ResourceID: "r1", Service: "EC2", Tagged: "Yes", MonthlyCostUSD: &c},
		{ResourceID: "r2", Service: "S3", Tagged: "No", MonthlyCostUSD: &c},
	}
	return NewWebAPI(zerolog.Nop(), Config{
		Addr:            ":0",
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			Workbench: remediation.NewWorkbench(resources),
		},
	})
}

func TestWebAPI_SummaryRoute(t *testing.T) {
	webAPI := newTestAPI()

	rec := httptest.NewRecorder()
	webAPI.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.TotalResources)
	assert.Equal(t, 1, got.UntaggedCount)
	assert.Equal(t, 50.0, got.PctUntaggedCost)
}

func TestWebAPI_UnknownRoute(t *testing.T) {
	webAPI := newTestAPI()

	rec := httptest.NewRecorder()
	webAPI.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
