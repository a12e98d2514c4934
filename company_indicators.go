package finlogic

import (
	"fmt"
	"sort"
)

// isReturnIndicator reports whether the column divides an after-tax
// operating profit by an averaged base.
func isReturnIndicator(name string) bool {
	return name == "return_on_assets" || name == "return_on_equity" || name == "roic"
}

// IndicatorLine is one indicator across the report periods.
type IndicatorLine struct {
	Name     string
	Currency bool // BRL amount (divided by the unit) rather than a ratio
	Values   []float64
}

// IndicatorReport is a company's indicators table transposed to one
// row per indicator and one column per period.
type IndicatorReport struct {
	Periods []Period
	Rows    []IndicatorLine
}

// Indicators returns the company's slice of the dataset indicators
// table for the selected accounting method, transposed to one row per
// indicator in canonical order. Currency rows are divided by the
// selected unit; ratios and per-share values are returned as computed.
func (c *Company) Indicators(opts ReportOptions) (*IndicatorReport, error) {
	wantConsolidated := c.method == Consolidated
	var periods []IndicatorRow
	for _, row := range c.ds.indicators {
		if row.CVMID == c.cvmID && row.IsConsolidated == wantConsolidated {
			periods = append(periods, row)
		}
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("no %s indicators for cvm_id %d", c.method, c.cvmID)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].PeriodEnd.Before(periods[j].PeriodEnd) })

	report := &IndicatorReport{}
	for _, row := range periods {
		report.Periods = append(report.Periods, Period{End: row.PeriodEnd})
	}
	// The dataset table computes the return ratios with the statutory
	// tax rate; after-tax operating profit is linear in (1 - rate), so a
	// custom rate only rescales them.
	returnScale := (1 - c.taxRate) / (1 - taxRate)
	for _, name := range IndicatorOrder {
		line := IndicatorLine{Name: name, Currency: IsCurrencyIndicator(name)}
		for _, row := range periods {
			value := row.Values[name]
			switch {
			case line.Currency:
				value /= c.unit
			case isReturnIndicator(name):
				value *= returnScale
			}
			line.Values = append(line.Values, value)
		}
		report.Rows = append(report.Rows, line)
	}

	if n := opts.NumPeriods; n > 0 && n < len(report.Periods) {
		drop := len(report.Periods) - n
		report.Periods = report.Periods[drop:]
		for i := range report.Rows {
			report.Rows[i].Values = report.Rows[i].Values[drop:]
		}
	}
	return report, nil
}
