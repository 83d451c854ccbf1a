package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/tag-atlas/pkg/export"
	"github.com/de-tools/tag-atlas/pkg/services/remediation"
	"github.com/de-tools/tag-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type RemediateCmd struct {
	dataPath   string
	editedPath string
	outPath    string
	reporter   Reporter
}

func NewRemediateCmd(reporter Reporter) *cobra.Command {
	rc := &RemediateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "remediate",
		Short: "Compare cost visibility before and after tag remediation",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dataPath, "data", "", "Path to the original inventory CSV file")
	cmd.Flags().StringVar(&rc.editedPath, "edited", "", "Path to the edited untagged-subset CSV file")
	cmd.Flags().StringVar(&rc.outPath, "out", "", "Optional path to write the remediated dataset as CSV")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("edited")

	return cmd
}

func (rc *RemediateCmd) run(cmd *cobra.Command, args []string) error {
	original, err := loadDataset(rc.dataPath)
	if err != nil {
		return err
	}
	edited, err := loadDataset(rc.editedPath)
	if err != nil {
		return err
	}

	if rc.outPath != "" {
		out, err := os.Create(rc.outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", rc.outPath, err)
		}
		defer out.Close()
		if err := export.WriteCSV(out, remediation.Remediated(original, edited)); err != nil {
			return err
		}
	}

	return rc.reporter.Handle(report.Comparison(original, edited))
}
