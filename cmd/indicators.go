package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brfin/finlogic"
	"github.com/brfin/finlogic/renderer"
	"github.com/google/subcommands"
)

// indicatorsCmd holds the flags for the 'indicators' subcommand.
type indicatorsCmd struct {
	companyFlags
	periods int
}

func (*indicatorsCmd) Name() string     { return "indicators" }
func (*indicatorsCmd) Synopsis() string { return "display a company indicators table" }
func (*indicatorsCmd) Usage() string {
	return `flq indicators [-periods <n>] <identifier>

  Displays the derived indicators of a company, one column per period.
  See 'flq topic indicators' for how each column is computed.

Usage Examples:
$ flq indicators 9512
$ flq indicators 9512 -unit million -periods 4

`
}

func (c *indicatorsCmd) SetFlags(f *flag.FlagSet) {
	c.companyFlags.setFlags(f)
	f.IntVar(&c.periods, "periods", 0, "Keep only the latest n columns (0 keeps all).")
}

func (c *indicatorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one company identifier\n")
		return subcommands.ExitUsageError
	}

	ds, err := loadDataset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	company, err := c.company(ds, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := company.Indicators(finlogic.ReportOptions{NumPeriods: c.periods})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.IndicatorsMarkdown(company.Info(), report))
	return subcommands.ExitSuccess
}
