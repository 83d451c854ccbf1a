package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/compliance"
)

// ErrSchema reports a required column missing from the input table. This is
// the only fatal condition at the load boundary; malformed cell values
// degrade to nulls instead.
var ErrSchema = errors.New("required column missing")

var requiredColumns = []domain.Field{
	domain.FieldResourceID,
	domain.FieldService,
	domain.FieldDepartment,
	domain.FieldProject,
	domain.FieldOwner,
	domain.FieldCostCenter,
	domain.FieldCreatedBy,
	domain.FieldRegion,
	domain.FieldEnvironment,
	domain.FieldTagged,
	domain.FieldMonthlyCost,
}

// Load parses a delimited inventory export into scored resources. Header
// names are whitespace-trimmed, blank cells become nulls, unparsable costs
// become null costs, and TagScore is recomputed from the tag fields. A
// TagScore column in the input, if any, is ignored.
func Load(r io.Reader) ([]domain.Resource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrSchema)
	}

	cols := make(map[domain.Field]int)
	for i, name := range records[0] {
		cols[domain.Field(strings.TrimSpace(name))] = i
	}
	for _, f := range requiredColumns {
		if _, ok := cols[f]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrSchema, f)
		}
	}

	resources := make([]domain.Resource, 0, len(records)-1)
	for _, rec := range records[1:] {
		cell := func(f domain.Field) string {
			i := cols[f]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		resources = append(resources, domain.Resource{
			ResourceID:     cell(domain.FieldResourceID),
			Service:        cell(domain.FieldService),
			Department:     cell(domain.FieldDepartment),
			Project:        cell(domain.FieldProject),
			Owner:          cell(domain.FieldOwner),
			CostCenter:     cell(domain.FieldCostCenter),
			CreatedBy:      cell(domain.FieldCreatedBy),
			Region:         cell(domain.FieldRegion),
			Environment:    cell(domain.FieldEnvironment),
			Tagged:         cell(domain.FieldTagged),
			MonthlyCostUSD: coerceCost(cell(domain.FieldMonthlyCost)),
		})
	}
	compliance.Rescore(resources)
	return resources, nil
}

// LoadRaw handles exports where every physical line is wrapped in an extra
// pair of quotes. The outer quotes are stripped before normal parsing. Lines
// whose inner content itself contains quotes are left alone, so a regular
// CSV with quoted fields passes through untouched.
func LoadRaw(r io.Reader) ([]domain.Resource, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	var cleaned []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) > 1 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
			inner := line[1 : len(line)-1]
			if !strings.Contains(inner, `"`) {
				line = inner
			}
		}
		cleaned = append(cleaned, line)
	}
	return Load(strings.NewReader(strings.Join(cleaned, "\n")))
}

// Normalize applies the loader's row guarantees to an already materialized
// table: whitespace-only categorical values become null and TagScore is
// recomputed. The input slice is not mutated.
func Normalize(rs []domain.Resource) []domain.Resource {
	out := domain.Clone(rs)
	for i := range out {
		out[i].ResourceID = strings.TrimSpace(out[i].ResourceID)
		out[i].Service = strings.TrimSpace(out[i].Service)
		out[i].Department = strings.TrimSpace(out[i].Department)
		out[i].Project = strings.TrimSpace(out[i].Project)
		out[i].Owner = strings.TrimSpace(out[i].Owner)
		out[i].CostCenter = strings.TrimSpace(out[i].CostCenter)
		out[i].CreatedBy = strings.TrimSpace(out[i].CreatedBy)
		out[i].Region = strings.TrimSpace(out[i].Region)
		out[i].Environment = strings.TrimSpace(out[i].Environment)
		out[i].Tagged = strings.TrimSpace(out[i].Tagged)
	}
	compliance.Rescore(out)
	return out
}

// coerceCost implements the coerce-with-null policy: any value that fails
// numeric parsing is null, never an error.
func coerceCost(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
