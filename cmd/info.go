package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/brfin/finlogic/renderer"
	"github.com/google/subcommands"
)

// infoCmd holds the flags for the 'info' subcommand.
type infoCmd struct {
	identifier string
}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "display a dataset or company summary" }
func (*infoCmd) Usage() string {
	return `flq info [-c <identifier>]

  Without flags, displays a summary of the loaded dataset: entry and
  company counts, the covered period range and the memory usage.
  With -c, displays a summary of one company instead.

`
}

func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.identifier, "c", "", "Company to summarize, by CVM id or tax id.")
}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.identifier != "" {
		company, err := ds.Company(c.identifier)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.CompanyInfoMarkdown(company.Info()))
		return subcommands.ExitSuccess
	}

	info, err := ds.Info()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.InfoMarkdown(info))

	if published, err := ds.LastPublished(); err != nil {
		log.Printf("could not read the dataset publication time: %v", err)
	} else {
		fmt.Printf("Dataset last published on %s.\n", published.Format("2006-01-02 15:04 MST"))
	}
	return subcommands.ExitSuccess
}
