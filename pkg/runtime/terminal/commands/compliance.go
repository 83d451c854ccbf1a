package commands

import (
	"github.com/de-tools/tag-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type ComplianceCmd struct {
	dataPath string
	limit    int
	reporter Reporter
}

func NewComplianceCmd(reporter Reporter) *cobra.Command {
	cc := &ComplianceCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Show tag completeness scores and missing-field frequency",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.dataPath, "data", "", "Path to the inventory CSV file")
	cmd.Flags().IntVar(&cc.limit, "limit", 5, "Number of lowest-compliance resources to list")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (cc *ComplianceCmd) run(cmd *cobra.Command, args []string) error {
	rs, err := loadDataset(cc.dataPath)
	if err != nil {
		return err
	}
	return cc.reporter.Handle(report.Compliance(rs, cc.limit))
}
