package report

import (
	"fmt"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/aggregate"
	"github.com/de-tools/tag-atlas/pkg/services/compliance"
	"github.com/de-tools/tag-atlas/pkg/services/remediation"
)

const lowestComplianceLimit = 5

// Build assembles the full analysis report over a dataset: exploration
// counts, cost visibility, tagging compliance and, when an edited subset
// source is supplied, the remediation comparison.
func Build(original []domain.Resource, edited remediation.Source) *domain.Report {
	r := &domain.Report{
		Title:       "Resource Tagging Report",
		TotalAmount: aggregate.Total(original, aggregate.Cost),
		Currency:    "USD",
		Sections: []domain.ReportSection{
			explorationSection(original),
			costSection(original),
			complianceSection(original, lowestComplianceLimit),
		},
	}
	if edited != nil {
		r.Sections = append(r.Sections, comparisonSection(original, edited.Snapshot()))
	}
	return r
}

func explorationSection(rs []domain.Resource) domain.ReportSection {
	tagged, untagged := 0, 0
	for _, r := range rs {
		switch r.TagStatus() {
		case domain.TagYes:
			tagged++
		case domain.TagNo:
			untagged++
		}
	}

	section := domain.ReportSection{
		Title: "Data Exploration",
		Summary: map[string]interface{}{
			"total_resources":    len(rs),
			"tagged_resources":   tagged,
			"untagged_resources": untagged,
			"pct_untagged":       fmt.Sprintf("%.2f%%", aggregate.Pct(float64(untagged), float64(len(rs)))),
		},
	}
	for _, g := range aggregate.CountBy(rs, domain.FieldTagged) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("Tagged=%s", g.Key[0]),
			Value:       g.Count,
			Unit:        "rows",
			Description: "tag status distribution",
		})
	}
	for _, m := range compliance.MissingByColumn(rs) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        string(m.Field),
			Value:       m.Missing,
			Unit:        "rows",
			Description: "missing values",
		})
	}
	return section
}

func costSection(rs []domain.Resource) domain.ReportSection {
	var untagged []domain.Resource
	var taggedCost, untaggedCost float64
	for _, r := range rs {
		switch r.TagStatus() {
		case domain.TagYes:
			taggedCost += r.Cost()
		case domain.TagNo:
			untaggedCost += r.Cost()
			untagged = append(untagged, r)
		}
	}
	total := aggregate.Total(rs, aggregate.Cost)

	section := domain.ReportSection{
		Title: "Cost Visibility",
		Summary: map[string]interface{}{
			"total_cost":        fmt.Sprintf("$%.2f", total),
			"tagged_cost":       fmt.Sprintf("$%.2f", taggedCost),
			"untagged_cost":     fmt.Sprintf("$%.2f", untaggedCost),
			"pct_untagged_cost": fmt.Sprintf("%.2f%%", aggregate.Pct(untaggedCost, total)),
		},
	}

	if top, ok := aggregate.Max(aggregate.SumBy(untagged, aggregate.Cost, domain.FieldDepartment)); ok {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        top.Key[0],
			Value:       fmt.Sprintf("$%.2f", top.Value),
			Description: "department with the most untagged cost",
		})
	}
	if top, ok := aggregate.Max(aggregate.SumBy(rs, aggregate.Cost, domain.FieldProject)); ok {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        top.Key[0],
			Value:       fmt.Sprintf("$%.2f", top.Value),
			Description: "project with the highest total cost",
		})
	}
	for _, g := range aggregate.SumBy(rs, aggregate.Cost, domain.FieldEnvironment, domain.FieldTagged) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("%s / %s", g.Key[0], g.Key[1]),
			Value:       fmt.Sprintf("$%.2f", g.Value),
			Description: "cost by environment and tagging status",
		})
	}
	return section
}

// Compliance builds a report with just the tagging compliance section.
func Compliance(rs []domain.Resource, limit int) *domain.Report {
	return &domain.Report{
		Title:       "Tagging Compliance Report",
		TotalAmount: aggregate.Total(rs, aggregate.Cost),
		Currency:    "USD",
		Sections:    []domain.ReportSection{complianceSection(rs, limit)},
	}
}

// CostBreakdown builds a report grouping cost by the given fields, optionally
// restricted to untagged rows first.
func CostBreakdown(rs []domain.Resource, keys []domain.Field, untaggedOnly bool) *domain.Report {
	scope := rs
	if untaggedOnly {
		var only []domain.Resource
		for _, r := range rs {
			if r.TagStatus() == domain.TagNo {
				only = append(only, r)
			}
		}
		scope = only
	}

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}

	groups := aggregate.SumBy(scope, aggregate.Cost, keys...)
	section := domain.ReportSection{
		Title:   fmt.Sprintf("Cost by %s", joinNames(names)),
		Summary: map[string]interface{}{},
	}
	if top, ok := aggregate.Max(groups); ok {
		section.Summary["top"] = fmt.Sprintf("%s ($%.2f)", joinNames(top.Key), top.Value)
	} else {
		section.Summary["top"] = "no matching groups"
	}
	for _, g := range aggregate.SortByValue(groups, false) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        joinNames(g.Key),
			Value:       fmt.Sprintf("$%.2f", g.Value),
			Description: fmt.Sprintf("%d resources", g.Count),
		})
	}

	return &domain.Report{
		Title:       "Cost Breakdown",
		TotalAmount: aggregate.Total(scope, aggregate.Cost),
		Currency:    "USD",
		Sections:    []domain.ReportSection{section},
	}
}

// Comparison builds a report with just the remediation impact section.
func Comparison(original, edited []domain.Resource) *domain.Report {
	return &domain.Report{
		Title:       "Remediation Comparison",
		TotalAmount: aggregate.Total(original, aggregate.Cost),
		Currency:    "USD",
		Sections:    []domain.ReportSection{comparisonSection(original, edited)},
	}
}

func joinNames(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " / "
		}
		out += p
	}
	return out
}

func complianceSection(rs []domain.Resource, limit int) domain.ReportSection {
	section := domain.ReportSection{
		Title:   "Tagging Compliance",
		Summary: map[string]interface{}{},
	}
	for _, m := range compliance.MissingFieldCounts(rs) {
		section.Summary[string(m.Field)+"_missing"] = m.Missing
	}
	for _, r := range compliance.LowestCompliance(rs, limit) {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        r.ResourceID,
			Value:       r.TagScore,
			Unit:        fmt.Sprintf("of %d", len(compliance.TagFields)),
			Description: fmt.Sprintf("%s, $%.2f/month", r.Service, r.Cost()),
		})
	}
	return section
}

func comparisonSection(original, edited []domain.Resource) domain.ReportSection {
	cmp := remediation.Compare(original, edited)
	return domain.ReportSection{
		Title: "Remediation Impact",
		Summary: map[string]interface{}{
			"before_untagged_count": cmp.Before.UntaggedCount,
			"after_untagged_count":  cmp.After.UntaggedCount,
			"cost_improvement":      fmt.Sprintf("$%.2f", cmp.CostDelta),
			"pct_point_improvement": fmt.Sprintf("%.2f%%", cmp.PctPointDelta),
		},
		Details: []domain.ReportDetail{
			{Name: "Before: Untagged Cost", Value: fmt.Sprintf("$%.2f", cmp.Before.UntaggedCost), Description: fmt.Sprintf("%.2f%% of total", cmp.Before.PctUntaggedCost)},
			{Name: "After: Untagged Cost", Value: fmt.Sprintf("$%.2f", cmp.After.UntaggedCost), Description: fmt.Sprintf("%.2f%% of total", cmp.After.PctUntaggedCost)},
			{Name: "Change: Untagged Count", Value: cmp.CountDelta, Description: "negative means resources left the untagged pool"},
		},
	}
}
