package finlogic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brfin/finlogic/date"
)

// The indicators table is derived once at load: the raw accounting
// entries are pivoted wide per (company, report kind, accounting
// method, period) and the usual operating indicators are computed from
// the pivoted columns.

// statutory income tax rate used for operating return ratios.
const taxRate = 0.34

// cutOffValue zeroes ratios whose denominator is too small to be
// meaningful (revenues or averaged book values under R$ 1M).
const cutOffValue = 1_000_000

// indicatorCodes maps the accounting codes feeding the indicators
// table to their column names.
var indicatorCodes = map[string]string{
	"1":          "total_assets",
	"1.01":       "current_assets",
	"1.01.01":    "cash_equivalents",
	"1.01.02":    "financial_investments",
	"2.01":       "current_liabilities",
	"2.01.04":    "short_term_debt",
	"2.02.01":    "long_term_debt",
	"2.03":       "equity",
	"3.01":       "revenues",
	"3.03":       "gross_profit",
	"3.05":       "ebit",
	"3.07":       "ebt",
	"3.08":       "effective_tax",
	"3.11":       "net_income",
	"6.01":       "operating_cash_flow",
	"6.01.01.04": "depreciation_amortization",
	"3.99.01.01": "eps",
}

// IndicatorOrder is the canonical display order of the indicator columns.
var IndicatorOrder = []string{
	"total_assets",
	"current_assets",
	"total_cash",
	"working_capital",
	"invested_capital",
	"current_liabilities",
	"total_debt",
	"net_debt",
	"equity",
	"revenues",
	"gross_profit",
	"net_income",
	"ebitda",
	"ebit",
	"ebt",
	"effective_tax",
	"operating_cash_flow",
	"depreciation_amortization",
	"effective_tax_rate",
	"return_on_assets",
	"return_on_equity",
	"roic",
	"gross_margin",
	"ebitda_margin",
	"operating_margin",
	"net_margin",
	"eps",
}

// currencyIndicators holds the columns expressed in BRL, the ones
// divided by the report unit. Ratios and per-share values are not.
var currencyIndicators = map[string]bool{
	"total_assets":              true,
	"current_assets":            true,
	"current_liabilities":       true,
	"equity":                    true,
	"revenues":                  true,
	"gross_profit":              true,
	"ebit":                      true,
	"ebt":                       true,
	"effective_tax":             true,
	"net_income":                true,
	"operating_cash_flow":       true,
	"depreciation_amortization": true,
	"total_cash":                true,
	"total_debt":                true,
	"net_debt":                  true,
	"working_capital":           true,
	"ebitda":                    true,
	"invested_capital":          true,
}

// IsCurrencyIndicator reports whether the named indicator is a BRL
// amount, as opposed to a ratio or a per-share value.
func IsCurrencyIndicator(name string) bool { return currencyIndicators[name] }

// ValidIndicator reports whether name is a known indicator column.
func ValidIndicator(name string) bool {
	for _, n := range IndicatorOrder {
		if n == name {
			return true
		}
	}
	return false
}

// IndicatorRow is one period of one company in the indicators table.
type IndicatorRow struct {
	CVMID          uint32
	Name           string
	IsAnnual       bool
	IsConsolidated bool
	PeriodEnd      date.Date
	Values         map[string]float64
}

// pivotKey identifies one cell source in the wide pivot.
type pivotKey struct {
	cvmID          uint32
	isConsolidated bool
	accCode        string
	periodEnd      date.Date
}

// groupKey identifies one time series in the pivot.
type groupKey struct {
	cvmID          uint32
	isAnnual       bool
	isConsolidated bool
}

// buildIndicators derives the dataset-wide indicators table.
func buildIndicators(ds *Dataset) []IndicatorRow {
	type cell struct {
		isAnnual bool
		name     string
		value    float64
	}
	// A handful of companies publish repeated entries for exotic period
	// ends; iterating in dataset order and overwriting keeps the last
	// published value for each cell.
	cells := make(map[pivotKey]cell)
	names := make(map[uint32]string)
	for _, e := range ds.entries {
		column, ok := indicatorCodes[e.AccCode]
		if !ok {
			continue
		}
		key := pivotKey{e.CVMID, e.IsConsolidated, e.AccCode, e.PeriodEnd}
		cells[key] = cell{isAnnual: e.IsAnnual, name: column, value: e.Value}
		names[e.CVMID] = e.Name
	}

	// Pivot wide: one row per (company, report kind, method, period).
	groups := make(map[groupKey][]IndicatorRow)
	index := make(map[groupKey]map[date.Date]int)
	for key, c := range cells {
		gk := groupKey{key.cvmID, c.isAnnual, key.isConsolidated}
		if index[gk] == nil {
			index[gk] = make(map[date.Date]int)
		}
		i, ok := index[gk][key.periodEnd]
		if !ok {
			i = len(groups[gk])
			index[gk][key.periodEnd] = i
			groups[gk] = append(groups[gk], IndicatorRow{
				CVMID:          key.cvmID,
				Name:           names[key.cvmID],
				IsAnnual:       c.isAnnual,
				IsConsolidated: key.isConsolidated,
				PeriodEnd:      key.periodEnd,
				Values:         make(map[string]float64),
			})
		}
		groups[gk][i].Values[c.name] = c.value
	}

	var rows []IndicatorRow
	for gk, series := range groups {
		sort.Slice(series, func(i, j int) bool { return series[i].PeriodEnd.Before(series[j].PeriodEnd) })
		for i := range series {
			deriveColumns(series[i].Values)
		}
		insertAverages(series, gk.isAnnual)
		if !gk.isAnnual {
			// Quarterly series only contribute their latest period.
			series = series[len(series)-1:]
		}
		for i := range series {
			deriveRatios(series[i].Values)
		}
		rows = append(rows, series...)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CVMID != b.CVMID {
			return a.CVMID < b.CVMID
		}
		if a.IsConsolidated != b.IsConsolidated {
			return !a.IsConsolidated
		}
		return a.PeriodEnd.Before(b.PeriodEnd)
	})
	return rows
}

// deriveColumns computes the composite BRL columns from the pivoted
// account values. The raw debt and cash components are folded into
// their composites and dropped.
func deriveColumns(v map[string]float64) {
	v["total_cash"] = v["cash_equivalents"] + v["financial_investments"]
	delete(v, "cash_equivalents")
	delete(v, "financial_investments")

	v["total_debt"] = v["short_term_debt"] + v["long_term_debt"]
	v["net_debt"] = v["total_debt"] - v["total_cash"]
	delete(v, "short_term_debt")
	delete(v, "long_term_debt")

	v["working_capital"] = v["current_assets"] - v["current_liabilities"]
	if ebt := v["ebt"]; ebt != 0 {
		v["effective_tax_rate"] = -v["effective_tax"] / ebt
	} else {
		v["effective_tax_rate"] = 0
	}
	v["ebitda"] = v["ebit"] + v["depreciation_amortization"]
	v["invested_capital"] = v["total_debt"] + v["equity"] - v["total_cash"]
}

// averaged book values feeding the return ratios.
var averagedColumns = []string{"invested_capital", "total_assets", "equity"}

// insertAverages adds avg_<col> columns averaging the current and the
// prior period's value. The prior period is the previous annual report,
// or the same quarter one year back for quarterly series (falling back
// to the previous quarter, then to the current value).
func insertAverages(series []IndicatorRow, isAnnual bool) {
	for i := range series {
		for _, col := range averagedColumns {
			cur := series[i].Values[col]
			prior := cur
			if isAnnual {
				if i >= 1 {
					prior = series[i-1].Values[col]
				}
			} else {
				switch {
				case i >= 4:
					prior = series[i-4].Values[col]
				case i >= 1:
					prior = series[i-1].Values[col]
				}
			}
			series[i].Values["avg_"+col] = (cur + prior) / 2
		}
	}
}

// deriveRatios computes the margin and return columns, zeroing ratios
// whose denominator falls under the cut-off. The intermediate averaged
// columns are dropped from the row.
func deriveRatios(v map[string]float64) {
	ratio := func(num, den float64) float64 {
		if den <= cutOffValue {
			return 0
		}
		return num / den
	}
	revenues := v["revenues"]
	v["gross_margin"] = ratio(v["gross_profit"], revenues)
	v["ebitda_margin"] = ratio(v["ebitda"], revenues)
	v["operating_margin"] = ratio(v["ebit"], revenues)
	v["net_margin"] = ratio(v["net_income"], revenues)

	nopat := v["ebit"] * (1 - taxRate)
	v["return_on_assets"] = ratio(nopat, v["avg_total_assets"])
	v["return_on_equity"] = ratio(nopat, v["avg_equity"])
	v["roic"] = ratio(nopat, v["avg_invested_capital"])

	for _, col := range averagedColumns {
		delete(v, "avg_"+col)
	}
}

// RankedCompany is one row of a Rank result.
type RankedCompany struct {
	CompanyMatch
	PeriodEnd date.Date
	Indicator string
	Value     float64
}

// Rank returns the top n companies by the named indicator, taken from
// each company's latest available period (preferring consolidated
// figures), optionally restricted to segments containing segment.
func (ds *Dataset) Rank(segment string, n int, indicator string) ([]RankedCompany, error) {
	if !ValidIndicator(indicator) {
		return nil, fmt.Errorf("unknown indicator %q", indicator)
	}
	if n <= 0 {
		n = 10
	}

	// Latest period per company; consolidated wins ties on the date.
	latest := make(map[uint32]IndicatorRow)
	for _, row := range ds.indicators {
		cur, ok := latest[row.CVMID]
		if !ok || row.PeriodEnd.After(cur.PeriodEnd) ||
			(row.PeriodEnd == cur.PeriodEnd && row.IsConsolidated && !cur.IsConsolidated) {
			latest[row.CVMID] = row
		}
	}

	want := strings.ToLower(segment)
	var ranked []RankedCompany
	for cvmID, row := range latest {
		profile := ds.profiles[cvmID]
		if want != "" && !strings.Contains(strings.ToLower(profile.Segment), want) {
			continue
		}
		ranked = append(ranked, RankedCompany{
			CompanyMatch: CompanyMatch{
				Name:            row.Name,
				CVMID:           cvmID,
				TaxID:           ds.taxID(cvmID),
				Segment:         profile.Segment,
				IsRestructuring: profile.IsRestructuring,
				MostTradedStock: profile.MostTradedStock,
			},
			PeriodEnd: row.PeriodEnd,
			Indicator: indicator,
			Value:     row.Values[indicator],
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].CVMID < ranked[j].CVMID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Indicators returns the dataset-wide indicators table. The returned
// slice is shared and must not be mutated.
func (ds *Dataset) Indicators() []IndicatorRow { return ds.indicators }

// taxID returns the tax id of a company from its accounting entries.
func (ds *Dataset) taxID(cvmID uint32) string {
	entries := ds.companyEntries(cvmID)
	if len(entries) == 0 {
		return ""
	}
	return entries[0].TaxID
}
