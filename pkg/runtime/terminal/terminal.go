package terminal

import (
	"io"
	"os"

	"github.com/de-tools/tag-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/tag-atlas/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reporter commands.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Plain switches from the table renderer to the plain text one.
	Plain bool
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	if opts.Plain {
		cli.reporter = NewReporter(opts.Output)
	} else {
		cli.reporter = export.NewReporter(opts.Output)
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagatlas",
		Short: "Resource tagging and cost visibility tool",
	}

	cmd.AddCommand(commands.NewSummaryCmd(cli.reporter))
	cmd.AddCommand(commands.NewComplianceCmd(cli.reporter))
	cmd.AddCommand(commands.NewCostCmd(cli.reporter))
	cmd.AddCommand(commands.NewFilterCmd(cli.reporter))
	cmd.AddCommand(commands.NewRemediateCmd(cli.reporter))

	return cmd
}
