package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/tag-atlas/pkg/export"
	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/aggregate"
	"github.com/de-tools/tag-atlas/pkg/services/filter"
	"github.com/spf13/cobra"
)

type FilterCmd struct {
	dataPath string
	where    []string
	outPath  string
	reporter Reporter
}

func NewFilterCmd(reporter Reporter) *cobra.Command {
	fc := &FilterCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Apply multi-valued field filters to the inventory",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.dataPath, "data", "", "Path to the inventory CSV file")
	cmd.Flags().StringArrayVar(&fc.where, "where", nil, "Filter as Field=Value1,Value2; repeatable, fields combine with AND")
	cmd.Flags().StringVar(&fc.outPath, "out", "", "Optional path to write the filtered rows as CSV")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (fc *FilterCmd) run(cmd *cobra.Command, args []string) error {
	rs, err := loadDataset(fc.dataPath)
	if err != nil {
		return err
	}

	filters := filter.Filters{}
	for _, clause := range fc.where {
		name, values, ok := strings.Cut(clause, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q, expected Field=Value1,Value2", clause)
		}
		f, found := domain.ParseField(name)
		if !found {
			return fmt.Errorf("unknown field %q", name)
		}
		filters[f] = strings.Split(values, ",")
	}

	matched := filter.Apply(rs, filters)

	if fc.outPath != "" {
		out, err := os.Create(fc.outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", fc.outPath, err)
		}
		defer out.Close()
		if err := export.WriteCSV(out, matched); err != nil {
			return err
		}
	}

	return fc.reporter.Handle(&domain.Report{
		Title:       "Filtered Inventory",
		TotalAmount: aggregate.Total(matched, aggregate.Cost),
		Currency:    "USD",
		Sections: []domain.ReportSection{{
			Title: "Filter Results",
			Summary: map[string]interface{}{
				"matched_resources": len(matched),
				"filters_applied":   len(filters),
			},
		}},
	})
}
