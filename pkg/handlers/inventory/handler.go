package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/de-tools/tag-atlas/pkg/export"
	"github.com/de-tools/tag-atlas/pkg/models/api"
	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/aggregate"
	"github.com/de-tools/tag-atlas/pkg/services/compliance"
	"github.com/de-tools/tag-atlas/pkg/services/filter"
	invsvc "github.com/de-tools/tag-atlas/pkg/services/inventory"
	"github.com/de-tools/tag-atlas/pkg/services/remediation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultComplianceLimit = 5

type Handler struct {
	workbench *remediation.Workbench
}

func NewHandler(wb *remediation.Workbench) *Handler {
	return &Handler{workbench: wb}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	rs := h.workbench.Original()

	tagged, untagged := 0, 0
	var taggedCost, untaggedCost float64
	for _, res := range rs {
		switch res.TagStatus() {
		case domain.TagYes:
			tagged++
			taggedCost += res.Cost()
		case domain.TagNo:
			untagged++
			untaggedCost += res.Cost()
		}
	}
	total := aggregate.Total(rs, aggregate.Cost)

	writeJSON(w, logger, api.Summary{
		TotalResources:  len(rs),
		TaggedCount:     tagged,
		UntaggedCount:   untagged,
		PctUntagged:     aggregate.Pct(float64(untagged), float64(len(rs))),
		TotalCost:       total,
		TaggedCost:      taggedCost,
		UntaggedCost:    untaggedCost,
		PctUntaggedCost: aggregate.Pct(untaggedCost, total),
	})
}

func (h *Handler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	rs := h.workbench.Original()

	limit := defaultComplianceLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	resp := api.ComplianceReport{}
	for _, res := range compliance.LowestCompliance(rs, limit) {
		resp.LowestCompliance = append(resp.LowestCompliance, toAPI(res))
	}
	for _, m := range compliance.MissingFieldCounts(rs) {
		resp.MissingTagFields = append(resp.MissingTagFields, api.FieldMissingCount{
			Field:   string(m.Field),
			Missing: m.Missing,
		})
	}
	writeJSON(w, logger, resp)
}

// GetCostBreakdown groups total cost by the fields named in the "by" query
// parameter. With untagged=true the breakdown is restricted to untagged rows
// first, which is how "department with the most untagged cost" is asked.
func (h *Handler) GetCostBreakdown(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	names := r.URL.Query()["by"]
	if len(names) == 0 {
		http.Error(w, "missing 'by' query parameter", http.StatusBadRequest)
		return
	}
	var keys []domain.Field
	for _, name := range names {
		f, ok := domain.ParseField(name)
		if !ok {
			http.Error(w, "unknown field: "+name, http.StatusBadRequest)
			return
		}
		keys = append(keys, f)
	}

	rs := h.workbench.Original()
	if r.URL.Query().Get("untagged") == "true" {
		rs = filter.Apply(rs, filter.Filters{domain.FieldTagged: {"No"}})
	}

	groups := aggregate.SumBy(rs, aggregate.Cost, keys...)
	resp := api.CostBreakdown{By: names}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, api.GroupTotal{Key: g.Key, Total: g.Value, Count: g.Count})
	}
	if top, ok := aggregate.Max(groups); ok {
		resp.Top = &api.GroupTotal{Key: top.Key, Total: top.Value, Count: top.Count}
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) FilterInventory(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req api.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	filters := filter.Filters{}
	for name, allowed := range req.Filters {
		f, ok := domain.ParseField(name)
		if !ok {
			http.Error(w, "unknown field: "+name, http.StatusBadRequest)
			return
		}
		filters[f] = allowed
	}

	matched := filter.Apply(h.workbench.Original(), filters)
	resp := api.FilterResult{
		Count:     len(matched),
		TotalCost: aggregate.Total(matched, aggregate.Cost),
	}
	for _, res := range matched {
		resp.Resources = append(resp.Resources, toAPI(res))
	}
	writeJSON(w, logger, resp)
}

// GetFilterOptions lists the distinct non-null values per categorical field,
// the choices a filter UI offers.
func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	rs := h.workbench.Original()

	resp := api.FilterOptions{Fields: map[string][]string{}}
	for _, f := range domain.CategoricalFields() {
		if f == domain.FieldResourceID {
			continue
		}
		resp.Fields[string(f)] = filter.DistinctValues(rs, f)
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) GetUntaggedSubset(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	var resp []api.Resource
	for _, res := range h.workbench.UntaggedSubset() {
		resp = append(resp, toAPI(res))
	}
	writeJSON(w, logger, resp)
}

// PutEditedSubset replaces the edited subset with a full snapshot from the
// editor. The body is the complete subset, not a diff.
func (h *Handler) PutEditedSubset(w http.ResponseWriter, r *http.Request) {
	var body []api.Resource
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	edited := make([]domain.Resource, 0, len(body))
	for _, res := range body {
		edited = append(edited, fromAPI(res))
	}
	h.workbench.SetEdited(invsvc.Normalize(edited))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	cmp := h.workbench.Compare()
	writeJSON(w, logger, api.Comparison{
		Before:        toAPIMetrics(cmp.Before),
		After:         toAPIMetrics(cmp.After),
		CountDelta:    cmp.CountDelta,
		CostDelta:     cmp.CostDelta,
		PctPointDelta: cmp.PctPointDelta,
	})
}

// ExportCSV serves the three downloadable datasets: the original baseline,
// the untagged subset as loaded, and the reconstructed remediated dataset.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var rs []domain.Resource
	switch chi.URLParam(r, "name") {
	case "original":
		rs = h.workbench.Original()
	case "untagged":
		rs = h.workbench.UntaggedSubset()
	case "remediated":
		rs = h.workbench.RemediatedDataset()
	default:
		http.Error(w, "unknown export", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	if err := export.WriteCSV(w, rs); err != nil {
		logger.Error().Err(err).Msg("failed to write csv export")
	}
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func toAPI(r domain.Resource) api.Resource {
	return api.Resource{
		ResourceID:     r.ResourceID,
		Service:        r.Service,
		Department:     r.Department,
		Project:        r.Project,
		Owner:          r.Owner,
		CostCenter:     r.CostCenter,
		CreatedBy:      r.CreatedBy,
		Region:         r.Region,
		Environment:    r.Environment,
		Tagged:         r.Tagged,
		MonthlyCostUSD: r.MonthlyCostUSD,
		TagScore:       r.TagScore,
	}
}

func fromAPI(r api.Resource) domain.Resource {
	return domain.Resource{
		ResourceID:     r.ResourceID,
		Service:        r.Service,
		Department:     r.Department,
		Project:        r.Project,
		Owner:          r.Owner,
		CostCenter:     r.CostCenter,
		CreatedBy:      r.CreatedBy,
		Region:         r.Region,
		Environment:    r.Environment,
		Tagged:         r.Tagged,
		MonthlyCostUSD: r.MonthlyCostUSD,
	}
}

func toAPIMetrics(m remediation.Metrics) api.RemediationMetrics {
	return api.RemediationMetrics{
		UntaggedCount:   m.UntaggedCount,
		UntaggedCost:    m.UntaggedCost,
		PctUntaggedCost: m.PctUntaggedCost,
	}
}
