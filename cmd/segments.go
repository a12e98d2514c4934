package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brfin/finlogic/renderer"
	"github.com/google/subcommands"
)

type segmentsCmd struct{}

func (*segmentsCmd) Name() string     { return "segments" }
func (*segmentsCmd) Synopsis() string { return "list the listing segments" }
func (*segmentsCmd) Usage() string {
	return `flq segments [<value>]

  Lists the distinct listing segments, optionally restricted to those
  containing the given text.

`
}

func (c *segmentsCmd) SetFlags(f *flag.FlagSet) {}

func (c *segmentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	segments := ds.SearchSegment(strings.Join(f.Args(), " "))
	printMarkdown(renderer.SegmentsMarkdown(segments))
	return subcommands.ExitSuccess
}
