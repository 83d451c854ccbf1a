package filter

import (
	"github.com/de-tools/tag-atlas/pkg/models/domain"
)

// Filters maps a field to its set of allowed values. A field that is absent,
// or mapped to an empty set, imposes no constraint: no selection means
// unfiltered. Fields combine with logical AND.
type Filters map[domain.Field][]string

// Apply returns the rows matching every constrained field. The input dataset
// is never mutated; the result is always a fresh slice.
func Apply(rs []domain.Resource, f Filters) []domain.Resource {
	out := make([]domain.Resource, 0, len(rs))
	for _, r := range rs {
		if matches(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r domain.Resource, f Filters) bool {
	for field, allowed := range f {
		if len(allowed) == 0 {
			continue
		}
		v, _ := r.Value(field)
		found := false
		for _, a := range allowed {
			if v == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DistinctValues lists the non-null values of a field in first-encounter
// order, for building filter choices.
func DistinctValues(rs []domain.Resource, field domain.Field) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rs {
		v, ok := r.Value(field)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
