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

// companyFlags are the adjustments shared by the per-company commands.
type companyFlags struct {
	method  string
	unit    string
	taxRate float64
}

func (c *companyFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", string(finlogic.Consolidated), "Accounting method: consolidated or separate.")
	f.StringVar(&c.unit, "unit", "1", "Divide the displayed amounts: thousand, million, billion or a positive number.")
	f.Float64Var(&c.taxRate, "tax-rate", 0.34, "Income tax rate used by the return indicators.")
}

// company resolves the identifier and applies the flags.
func (c *companyFlags) company(ds *finlogic.Dataset, identifier string) (*finlogic.Company, error) {
	company, err := ds.Company(identifier)
	if err != nil {
		return nil, err
	}
	if err := company.SetMethod(finlogic.AccountingMethod(c.method)); err != nil {
		return nil, err
	}
	unit, err := finlogic.ParseUnit(c.unit)
	if err != nil {
		return nil, err
	}
	if err := company.SetUnit(unit); err != nil {
		return nil, err
	}
	if err := company.SetTaxRate(c.taxRate); err != nil {
		return nil, err
	}
	return company, nil
}

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	companyFlags
	kind    string
	codes   string
	level   int
	periods int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a company financial statement" }
func (*reportCmd) Usage() string {
	return `flq report [-kind <kind>] [-level <n>] [-periods <n>] <identifier>

  Displays a financial statement of a company, one column per period.
  Income and cash-flow statements carry a trailing-twelve-months column
  when the latest quarterly statement is newer than the latest annual
  one. The identifier is the CVM id or the tax id.

Usage Examples:
$ flq report 9512
$ flq report 9512 -kind income -unit million
$ flq report 9512 -codes 1,2.03,3.01

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.companyFlags.setFlags(f)
	f.StringVar(&c.kind, "kind", string(finlogic.Assets), "Statement kind. See 'flq topic reports' for the list.")
	f.StringVar(&c.codes, "codes", "", "Comma-separated account codes to show instead of a kind.")
	f.IntVar(&c.level, "level", 0, "Limit the dotted depth of the account codes shown (2, 3 or 4; 0 shows all).")
	f.IntVar(&c.periods, "periods", 0, "Keep only the latest n columns (0 keeps all).")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	opts := finlogic.ReportOptions{AccountLevel: c.level, NumPeriods: c.periods}
	var statement *finlogic.Statement
	if c.codes != "" {
		statement, err = company.CustomReport(strings.Split(c.codes, ","), opts)
	} else {
		statement, err = company.Report(finlogic.StatementKind(c.kind), opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.StatementMarkdown(company.Info(), statement))
	return subcommands.ExitSuccess
}
