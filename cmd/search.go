package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brfin/finlogic"
	"github.com/brfin/finlogic/renderer"
	"github.com/google/subcommands"
)

// searchCmd holds the flags for the 'search' subcommand.
type searchCmd struct {
	by string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search companies in the dataset" }
func (*searchCmd) Usage() string {
	return `flq search [-by <column>] <value>

  Searches companies by name (the default), cvm_id, tax_id or segment.
  Name and segment match case-insensitive substrings, ids match exactly.

Usage Examples:
$ flq search petrobras
$ flq search -by segment banks
$ flq search -by cvm_id 9512

`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", string(finlogic.SearchByName), "Column to search: name, cvm_id, tax_id or segment.")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing search value\n")
		return subcommands.ExitUsageError
	}
	value := strings.Join(f.Args(), " ")

	ds, err := loadDataset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	matches, err := ds.SearchCompany(value, finlogic.SearchBy(c.by))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.SearchMarkdown(matches))
	return subcommands.ExitSuccess
}
