package aggregate

import (
	"testing"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cost(v float64) *float64 {
	return &v
}

func scenarioDataset() []domain.Resource {
	return []domain.Resource{
		{ResourceID: "r1", Tagged: "Yes", MonthlyCostUSD: cost(100), Department: "Eng"},
		{ResourceID: "r2", Tagged: "No", MonthlyCostUSD: cost(50), Department: "Eng"},
		{ResourceID: "r3", Tagged: "No", MonthlyCostUSD: cost(30), Department: "Ops"},
		{ResourceID: "r4", Tagged: "Yes", MonthlyCostUSD: cost(20), Department: "Ops"},
	}
}

func TestSumBy_PartitionCompleteness(t *testing.T) {
	rs := scenarioDataset()
	groups := SumBy(rs, Cost, domain.FieldDepartment)

	var grouped float64
	for _, g := range groups {
		grouped += g.Value
	}
	assert.Equal(t, Total(rs, Cost), grouped)
}

func TestSumBy_SkipsNullKeys(t *testing.T) {
	rs := []domain.Resource{
		{ResourceID: "r1", Department: "Eng", MonthlyCostUSD: cost(10)},
		{ResourceID: "r2", Department: "", MonthlyCostUSD: cost(99)},
	}
	groups := SumBy(rs, Cost, domain.FieldDepartment)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Eng"}, groups[0].Key)
	assert.Equal(t, 10.0, groups[0].Value)
}

func TestSumBy_NullCostContributesZero(t *testing.T) {
	rs := []domain.Resource{
		{ResourceID: "r1", Department: "Eng", MonthlyCostUSD: cost(10)},
		{ResourceID: "r2", Department: "Eng", MonthlyCostUSD: nil},
	}
	groups := SumBy(rs, Cost, domain.FieldDepartment)
	require.Len(t, groups, 1)
	assert.Equal(t, 10.0, groups[0].Value)
	assert.Equal(t, 2, groups[0].Count)
}

func TestSumBy_MultiKeyFirstEncounterOrder(t *testing.T) {
	rs := scenarioDataset()
	groups := SumBy(rs, Cost, domain.FieldDepartment, domain.FieldTagged)

	require.Len(t, groups, 4)
	assert.Equal(t, []string{"Eng", "Yes"}, groups[0].Key)
	assert.Equal(t, []string{"Eng", "No"}, groups[1].Key)
	assert.Equal(t, []string{"Ops", "No"}, groups[2].Key)
	assert.Equal(t, []string{"Ops", "Yes"}, groups[3].Key)
}

func TestSumBy_Idempotent(t *testing.T) {
	rs := scenarioDataset()
	first := SumBy(rs, Cost, domain.FieldDepartment)
	second := SumBy(rs, Cost, domain.FieldDepartment)
	assert.Equal(t, first, second)
}

func TestCountBy_IncludesMissingBucket(t *testing.T) {
	rs := []domain.Resource{
		{ResourceID: "r1", Department: "Eng"},
		{ResourceID: "r2", Department: ""},
		{ResourceID: "r3", Department: "Eng"},
	}
	groups := CountBy(rs, domain.FieldDepartment)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"Eng"}, groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, []string{MissingKey}, groups[1].Key)
	assert.Equal(t, 1, groups[1].Count)
}

func TestMax_EmptyIsDistinguishable(t *testing.T) {
	_, ok := Max(nil)
	assert.False(t, ok)

	_, ok = Max(SumBy(nil, Cost, domain.FieldDepartment))
	assert.False(t, ok)
}

func TestMax_TieKeepsEarliestGroup(t *testing.T) {
	groups := []Group{
		{Key: []string{"Eng"}, Value: 50},
		{Key: []string{"Ops"}, Value: 50},
	}
	top, ok := Max(groups)
	require.True(t, ok)
	assert.Equal(t, []string{"Eng"}, top.Key)
}

func TestPct(t *testing.T) {
	assert.Equal(t, 0.0, Pct(80, 0))
	assert.Equal(t, 0.0, Pct(0, 0))
	assert.Equal(t, 40.0, Pct(80, 200))
}

func TestSortByValue_StableRanking(t *testing.T) {
	groups := []Group{
		{Key: []string{"a"}, Value: 10},
		{Key: []string{"b"}, Value: 30},
		{Key: []string{"c"}, Value: 10},
	}

	desc := SortByValue(groups, false)
	assert.Equal(t, []string{"b"}, desc[0].Key)
	assert.Equal(t, []string{"a"}, desc[1].Key)
	assert.Equal(t, []string{"c"}, desc[2].Key)

	asc := SortByValue(groups, true)
	assert.Equal(t, []string{"a"}, asc[0].Key)
	assert.Equal(t, []string{"c"}, asc[1].Key)
	assert.Equal(t, []string{"b"}, asc[2].Key)

	// input order untouched
	assert.Equal(t, []string{"a"}, groups[0].Key)
}

func TestScenario_CostVisibility(t *testing.T) {
	rs := scenarioDataset()

	total := Total(rs, Cost)
	assert.Equal(t, 200.0, total)

	var untagged []domain.Resource
	for _, r := range rs {
		if r.TagStatus() == domain.TagNo {
			untagged = append(untagged, r)
		}
	}
	untaggedCost := Total(untagged, Cost)
	assert.Equal(t, 80.0, untaggedCost)
	assert.Equal(t, 40.0, Pct(untaggedCost, total))

	top, ok := Max(SumBy(untagged, Cost, domain.FieldDepartment))
	require.True(t, ok)
	assert.Equal(t, []string{"Eng"}, top.Key)
	assert.Equal(t, 50.0, top.Value)
}
