// Package cmd implements the CLI application to query the dataset.
package cmd

import (
	"flag"
	"log"

	"github.com/brfin/finlogic"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&searchCmd{},
	&segmentsCmd{},
	&infoCmd{},
	&reportCmd{},
	&indicatorsCmd{},
	&rankCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var minVolume = flag.Float64("min-volume", finlogic.DefaultMinVolume, "Minimum median daily traded volume in BRL for a company to be loaded (0 keeps everything)")
var includeNotTraded = flag.Bool("include-not-traded", false, "Also load companies registered with the regulator but not traded on the exchange")
var tradesURL = flag.String("trades-url", "", "Override the trading profiles file URL")
var financialsURL = flag.String("financials-url", "", "Override the financial statements file URL")
var notTradedURL = flag.String("not-traded-url", "", "Override the not-traded financial statements file URL")
var translationsURL = flag.String("translations-url", "", "Override the account name translations file URL")

// loadDataset downloads (or reads from the daily cache) and assembles
// the dataset with the app-level flags.
func loadDataset() (*finlogic.Dataset, error) {
	ds, err := finlogic.Load(finlogic.LoadOptions{
		MinVolume:        *minVolume,
		IncludeNotTraded: *includeNotTraded,
		TradesURL:        *tradesURL,
		FinancialsURL:    *financialsURL,
		NotTradedURL:     *notTradedURL,
		TranslationsURL:  *translationsURL,
	})
	if err != nil {
		return nil, err
	}
	info, err := ds.Info()
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d accounting entries from %d companies", info.AccountingEntries, info.Companies)
	return ds, nil
}
