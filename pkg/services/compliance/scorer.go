package compliance

import (
	"sort"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
)

// TagFields is the fixed, ordered set of fields that make up the tag
// completeness score. The order is load-bearing: missing-field rankings break
// ties by this declaration order.
var TagFields = []domain.Field{
	domain.FieldDepartment,
	domain.FieldProject,
	domain.FieldOwner,
	domain.FieldCostCenter,
	domain.FieldCreatedBy,
}

// Score counts the non-null tag fields of a resource, 0 through len(TagFields).
func Score(r domain.Resource) int {
	n := 0
	for _, f := range TagFields {
		if _, ok := r.Value(f); ok {
			n++
		}
	}
	return n
}

// Rescore recomputes TagScore on every row from current field values.
// TagScore is derived only; it is never trusted from input.
func Rescore(rs []domain.Resource) {
	for i := range rs {
		rs[i].TagScore = Score(rs[i])
	}
}

// LowestCompliance returns the n resources with the lowest TagScore. The sort
// is stable, so ties keep their original row order.
func LowestCompliance(rs []domain.Resource, n int) []domain.Resource {
	out := domain.Clone(rs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TagScore < out[j].TagScore
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// FieldMissing pairs a tag field with the number of rows where it is null.
type FieldMissing struct {
	Field   domain.Field
	Missing int
}

// MissingFieldCounts counts null values per tag field across the dataset,
// most frequently missing first. Equal counts keep TagFields order.
func MissingFieldCounts(rs []domain.Resource) []FieldMissing {
	out := make([]FieldMissing, 0, len(TagFields))
	for _, f := range TagFields {
		missing := 0
		for _, r := range rs {
			if _, ok := r.Value(f); !ok {
				missing++
			}
		}
		out = append(out, FieldMissing{Field: f, Missing: missing})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Missing > out[j].Missing
	})
	return out
}

// MissingByColumn counts nulls across every column of the dataset, not just
// the tag fields. Columns with no missing values are omitted.
func MissingByColumn(rs []domain.Resource) []FieldMissing {
	var out []FieldMissing
	for _, f := range domain.CategoricalFields() {
		missing := 0
		for _, r := range rs {
			if _, ok := r.Value(f); !ok {
				missing++
			}
		}
		if missing > 0 {
			out = append(out, FieldMissing{Field: f, Missing: missing})
		}
	}
	costMissing := 0
	for _, r := range rs {
		if r.MonthlyCostUSD == nil {
			costMissing++
		}
	}
	if costMissing > 0 {
		out = append(out, FieldMissing{Field: domain.FieldMonthlyCost, Missing: costMissing})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Missing > out[j].Missing
	})
	return out
}
