package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
)

// WriteCSV writes resources in the canonical column order with standard
// quoting. A null cost is an empty cell, distinct from "0".
func WriteCSV(w io.Writer, rs []domain.Resource) error {
	cw := csv.NewWriter(w)

	cols := domain.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range rs {
		cost := ""
		if r.MonthlyCostUSD != nil {
			cost = strconv.FormatFloat(*r.MonthlyCostUSD, 'f', -1, 64)
		}
		rec := []string{
			r.ResourceID,
			r.Service,
			r.Department,
			r.Project,
			r.Owner,
			r.CostCenter,
			r.CreatedBy,
			r.Region,
			r.Environment,
			r.Tagged,
			cost,
			strconv.Itoa(r.TagScore),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write row %s: %w", r.ResourceID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
