package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brfin/finlogic/renderer"
	"github.com/google/subcommands"
)

// rankCmd holds the flags for the 'rank' subcommand.
type rankCmd struct {
	indicator string
	segment   string
	n         int
}

func (*rankCmd) Name() string     { return "rank" }
func (*rankCmd) Synopsis() string { return "rank companies by an indicator" }
func (*rankCmd) Usage() string {
	return `flq rank [-indicator <name>] [-segment <text>] [-n <n>]

  Ranks companies by an indicator value, taken from each company's
  latest available period.

Usage Examples:
$ flq rank -indicator total_assets
$ flq rank -indicator roic -segment banks -n 20

`
}

func (c *rankCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.indicator, "indicator", "total_assets", "Indicator to rank by. See 'flq topic indicators' for the list.")
	f.StringVar(&c.segment, "segment", "", "Restrict to listing segments containing the text.")
	f.IntVar(&c.n, "n", 10, "Number of companies to show.")
}

func (c *rankCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	ranked, err := ds.Rank(c.segment, c.n, c.indicator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.RankMarkdown(ranked))
	return subcommands.ExitSuccess
}
