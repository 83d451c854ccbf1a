package remediation

import (
	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/aggregate"
)

// Metrics is the untagged footprint of one dataset snapshot.
type Metrics struct {
	UntaggedCount   int
	UntaggedCost    float64
	PctUntaggedCost float64
}

// Measure computes the untagged footprint of a snapshot. The percentage is
// of the snapshot's own total cost, zero when that total is zero.
func Measure(rs []domain.Resource) Metrics {
	var untaggedCost float64
	count := 0
	for _, r := range rs {
		if r.TagStatus() == domain.TagNo {
			count++
			untaggedCost += r.Cost()
		}
	}
	return Metrics{
		UntaggedCount:   count,
		UntaggedCost:    untaggedCost,
		PctUntaggedCost: aggregate.Pct(untaggedCost, aggregate.Total(rs, aggregate.Cost)),
	}
}

// Remediated reconstructs the after-state dataset: every originally tagged
// row, followed by the edited subset as it currently stands. The edited
// subset replaces the original untagged rows wholesale, so rows the editor
// added or removed are reflected directly.
func Remediated(original, edited []domain.Resource) []domain.Resource {
	out := make([]domain.Resource, 0, len(original))
	for _, r := range original {
		if r.TagStatus() == domain.TagYes {
			out = append(out, r)
		}
	}
	return append(out, edited...)
}

// Comparison pairs before/after metrics with their deltas. CountDelta is
// signed with negative meaning improvement; CostDelta and PctPointDelta are
// oriented so that positive means cost moved out of the untagged pool.
type Comparison struct {
	Before        Metrics
	After         Metrics
	CountDelta    int
	CostDelta     float64
	PctPointDelta float64
}

// Compare measures the original baseline against the remediated
// reconstruction. The same after-dataset definition backs all three paired
// metrics, so the deltas are mutually consistent.
func Compare(original, edited []domain.Resource) Comparison {
	before := Measure(original)
	after := Measure(Remediated(original, edited))
	return Comparison{
		Before:        before,
		After:         after,
		CountDelta:    after.UntaggedCount - before.UntaggedCount,
		CostDelta:     before.UntaggedCost - after.UntaggedCost,
		PctPointDelta: before.PctUntaggedCost - after.PctUntaggedCost,
	}
}
