package commands

import (
	"github.com/de-tools/tag-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	dataPath string
	reporter Reporter
}

func NewSummaryCmd(reporter Reporter) *cobra.Command {
	sc := &SummaryCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the full tagging and cost report for a dataset",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.dataPath, "data", "", "Path to the inventory CSV file")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, args []string) error {
	rs, err := loadDataset(sc.dataPath)
	if err != nil {
		return err
	}
	return sc.reporter.Handle(report.Build(rs, nil))
}
