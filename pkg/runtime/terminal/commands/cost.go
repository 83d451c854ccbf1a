package commands

import (
	"github.com/de-tools/tag-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type CostCmd struct {
	dataPath string
	by       []string
	untagged bool
	reporter Reporter
}

func NewCostCmd(reporter Reporter) *cobra.Command {
	cc := &CostCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Break down monthly cost by one or more fields",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.dataPath, "data", "", "Path to the inventory CSV file")
	cmd.Flags().StringSliceVar(&cc.by, "by", []string{"Department"}, "Fields to group by (e.g. Department,Tagged)")
	cmd.Flags().BoolVar(&cc.untagged, "untagged", false, "Restrict the breakdown to untagged resources")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (cc *CostCmd) run(cmd *cobra.Command, args []string) error {
	rs, err := loadDataset(cc.dataPath)
	if err != nil {
		return err
	}
	keys, err := parseFields(cc.by)
	if err != nil {
		return err
	}
	return cc.reporter.Handle(report.CostBreakdown(rs, keys, cc.untagged))
}
