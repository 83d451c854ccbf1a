package api

// Resource mirrors domain.Resource on the wire. Null categorical values are
// empty strings, a null cost is a JSON null.
type Resource struct {
	ResourceID     string   `json:"resource_id"`
	Service        string   `json:"service"`
	Department     string   `json:"department"`
	Project        string   `json:"project"`
	Owner          string   `json:"owner"`
	CostCenter     string   `json:"cost_center"`
	CreatedBy      string   `json:"created_by"`
	Region         string   `json:"region"`
	Environment    string   `json:"environment"`
	Tagged         string   `json:"tagged"`
	MonthlyCostUSD *float64 `json:"monthly_cost_usd"`
	TagScore       int      `json:"tag_score"`
}

type Summary struct {
	TotalResources  int     `json:"total_resources"`
	TaggedCount     int     `json:"tagged_count"`
	UntaggedCount   int     `json:"untagged_count"`
	PctUntagged     float64 `json:"pct_untagged"`
	TotalCost       float64 `json:"total_cost_usd"`
	TaggedCost      float64 `json:"tagged_cost_usd"`
	UntaggedCost    float64 `json:"untagged_cost_usd"`
	PctUntaggedCost float64 `json:"pct_untagged_cost"`
}

type GroupTotal struct {
	Key   []string `json:"key"`
	Total float64  `json:"total"`
	Count int      `json:"count"`
}

type CostBreakdown struct {
	By     []string     `json:"by"`
	Groups []GroupTotal `json:"groups"`
	// Top is absent when the breakdown has no groups at all.
	Top *GroupTotal `json:"top,omitempty"`
}

type FieldMissingCount struct {
	Field   string `json:"field"`
	Missing int    `json:"missing"`
}

type ComplianceReport struct {
	LowestCompliance []Resource          `json:"lowest_compliance"`
	MissingTagFields []FieldMissingCount `json:"missing_tag_fields"`
}

type FilterOptions struct {
	Fields map[string][]string `json:"fields"`
}

type FilterRequest struct {
	Filters map[string][]string `json:"filters"`
}

type FilterResult struct {
	Count     int        `json:"count"`
	TotalCost float64    `json:"total_cost_usd"`
	Resources []Resource `json:"resources"`
}

type RemediationMetrics struct {
	UntaggedCount   int     `json:"untagged_count"`
	UntaggedCost    float64 `json:"untagged_cost_usd"`
	PctUntaggedCost float64 `json:"pct_untagged_cost"`
}

type Comparison struct {
	Before        RemediationMetrics `json:"before"`
	After         RemediationMetrics `json:"after"`
	CountDelta    int                `json:"count_delta"`
	CostDelta     float64            `json:"cost_delta_usd"`
	PctPointDelta float64            `json:"pct_point_delta"`
}
