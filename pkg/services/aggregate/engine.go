package aggregate

import (
	"sort"
	"strings"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
)

// MissingKey labels the bucket CountBy uses for rows whose key is null.
const MissingKey = "(missing)"

// Group is one bucket of a grouped computation. SumBy and CountBy return
// groups in dataset first-encounter order, which makes the Max tie-break
// (earliest group wins) a structural property rather than a map-iteration
// accident.
type Group struct {
	Key   []string
	Value float64
	Count int
}

// ValueFunc extracts the numeric value a row contributes to a sum.
type ValueFunc func(domain.Resource) float64

// Cost is the ValueFunc for MonthlyCostUSD; null costs contribute zero.
func Cost(r domain.Resource) float64 {
	return r.Cost()
}

// SumBy groups rows by one or more categorical fields and sums value over
// each group. Rows where any grouping key is null are skipped.
func SumBy(rs []domain.Resource, value ValueFunc, keys ...domain.Field) []Group {
	var groups []Group
	index := make(map[string]int)

rows:
	for _, r := range rs {
		keyVals := make([]string, len(keys))
		for i, k := range keys {
			v, ok := r.Value(k)
			if !ok {
				continue rows
			}
			keyVals[i] = v
		}
		mapKey := strings.Join(keyVals, "\x1f")
		i, seen := index[mapKey]
		if !seen {
			i = len(groups)
			index[mapKey] = i
			groups = append(groups, Group{Key: keyVals})
		}
		groups[i].Value += value(r)
		groups[i].Count++
	}
	return groups
}

// CountBy groups rows by a single field and counts them. Unlike SumBy, rows
// with a null key are kept, under an explicit missing bucket.
func CountBy(rs []domain.Resource, key domain.Field) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, r := range rs {
		v, ok := r.Value(key)
		if !ok {
			v = MissingKey
		}
		i, seen := index[v]
		if !seen {
			i = len(groups)
			index[v] = i
			groups = append(groups, Group{Key: []string{v}})
		}
		groups[i].Count++
	}
	return groups
}

// Max returns the group with the largest value. Ties keep the earliest group.
// ok is false when there are no groups; absence is a result, not an error.
func Max(groups []Group) (Group, bool) {
	if len(groups) == 0 {
		return Group{}, false
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.Value > best.Value {
			best = g
		}
	}
	return best, true
}

// SortByValue returns a ranked copy of groups. The sort is stable, so equal
// values keep first-encounter order.
func SortByValue(groups []Group, ascending bool) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Value < out[j].Value
		}
		return out[i].Value > out[j].Value
	})
	return out
}

// Pct computes num/den*100 and is defined as zero for a zero denominator.
func Pct(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

// Total sums value over all rows.
func Total(rs []domain.Resource, value ValueFunc) float64 {
	var sum float64
	for _, r := range rs {
		sum += value(r)
	}
	return sum
}
