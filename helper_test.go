package finlogic

import (
	"testing"

	"github.com/brfin/finlogic/date"
)

// Test fixture: two liquid companies and an illiquid one. PETRO has two
// annual reports (2021, 2022) and two quarterly reports (9M2022,
// 9M2023), so its flow statements get a trailing-twelve-months column.

const (
	petroCVM    uint32 = 9512
	valeCVM     uint32 = 4170
	illiquidCVM uint32 = 7777

	petroTaxID = "33.000.167/0001-01"
	valeTaxID  = "33.592.510/0001-54"
)

var (
	a21  = date.MustParse("2021-12-31")
	a22  = date.MustParse("2022-12-31")
	q922 = date.MustParse("2022-09-30")
	q923 = date.MustParse("2023-09-30")

	b21 = date.MustParse("2021-01-01")
	b22 = date.MustParse("2022-01-01")
	b23 = date.MustParse("2023-01-01")
)

// petroAnnual holds the PETRO annual figures per account code.
var petroAnnual = map[date.Date]map[string]float64{
	a21: {
		"1": 900e6, "1.01": 350e6, "1.01.01": 90e6, "1.01.02": 40e6, "1.02": 550e6,
		"2": 900e6, "2.01": 180e6, "2.01.04": 70e6, "2.02": 280e6, "2.02.01": 200e6, "2.03": 440e6,
		"3.01": 700e6, "3.03": 280e6, "3.05": 140e6, "3.07": 130e6, "3.08": -39e6, "3.11": 91e6,
		"3.99.01.01": 2.1, "6.01": 150e6, "6.01.01.04": 50e6,
	},
	a22: {
		"1": 1000e6, "1.01": 400e6, "1.01.01": 100e6, "1.01.02": 50e6, "1.02": 600e6,
		"2": 1000e6, "2.01": 200e6, "2.01.04": 80e6, "2.02": 300e6, "2.02.01": 220e6, "2.03": 500e6,
		"3.01": 800e6, "3.03": 320e6, "3.05": 160e6, "3.07": 150e6, "3.08": -45e6, "3.11": 105e6,
		"3.99.01.01": 2.5, "6.01": 180e6, "6.01.01.04": 60e6,
	},
}

// petroQuarterly holds the PETRO quarterly figures; flow accounts are
// accumulated since the start of the fiscal year.
var petroQuarterly = map[date.Date]map[string]float64{
	q922: {
		"1": 950e6, "1.01": 360e6, "1.01.01": 95e6, "1.01.02": 45e6,
		"2.01": 190e6, "2.01.04": 75e6, "2.02.01": 210e6, "2.03": 460e6,
		"3.01": 600e6, "3.03": 240e6, "3.05": 120e6, "3.07": 110e6, "3.08": -33e6, "3.11": 77e6,
		"3.99.01.01": 1.8, "6.01": 130e6, "6.01.01.04": 42e6,
	},
	q923: {
		"1": 1100e6, "1.01": 420e6, "1.01.01": 110e6, "1.01.02": 60e6, "1.02": 680e6,
		"2.01": 210e6, "2.01.04": 90e6, "2.02.01": 230e6, "2.03": 580e6,
		"3.01": 650e6, "3.03": 260e6, "3.05": 130e6, "3.07": 120e6, "3.08": -36e6, "3.11": 84e6,
		"3.99.01.01": 2.0, "6.01": 140e6, "6.01.01.04": 45e6,
	},
}

var accNames = map[string]string{
	"1": "Total Assets", "1.01": "Current Assets", "1.01.01": "Cash and Cash Equivalents",
	"1.01.02": "Financial Investments", "1.02": "Non Current Assets",
	"2": "Liabilities and Equity", "2.01": "Current Liabilities", "2.01.04": "Loans and Financing",
	"2.02": "Non Current Liabilities", "2.02.01": "Loans and Financing", "2.03": "Equity",
	"3.01": "Revenues", "3.03": "Gross Profit", "3.05": "EBIT", "3.07": "EBT",
	"3.08": "Income Tax", "3.11": "Net Income", "3.99.01.01": "Basic EPS (ON)",
	"6.01": "Operating Cash Flow", "6.01.01.04": "Depreciation and Amortization",
}

func petroEntries() []AccountingEntry {
	var entries []AccountingEntry
	add := func(isAnnual, isConsolidated bool, code string, begin, end date.Date, value float64) {
		entries = append(entries, AccountingEntry{
			CVMID: petroCVM, Name: "PETRO BRASIL S.A.", TaxID: petroTaxID,
			IsAnnual: isAnnual, IsConsolidated: isConsolidated,
			AccCode: code, AccName: accNames[code],
			PeriodBegin: begin, PeriodEnd: end, Value: value,
		})
	}
	begins := map[date.Date]date.Date{a21: b21, a22: b22, q922: b22, q923: b23}
	for end, values := range petroAnnual {
		for code, value := range values {
			begin := begins[end]
			if code[0] == '1' || code[0] == '2' {
				begin = date.Date{} // balance accounts are point in time
			}
			add(true, true, code, begin, end, value)
		}
	}
	for end, values := range petroQuarterly {
		for code, value := range values {
			begin := begins[end]
			if code[0] == '1' || code[0] == '2' {
				begin = date.Date{}
			}
			add(false, true, code, begin, end, value)
		}
	}
	// A couple of separate-method entries for method switching tests.
	add(true, false, "3.01", b22, a22, 780e6)
	add(true, false, "1", date.Date{}, a22, 990e6)
	return entries
}

func valeEntries() []AccountingEntry {
	return []AccountingEntry{
		{CVMID: valeCVM, Name: "VALE DO ACO S.A.", TaxID: valeTaxID,
			IsAnnual: true, IsConsolidated: true, AccCode: "1", AccName: accNames["1"],
			PeriodEnd: a22, Value: 2000e6},
		{CVMID: valeCVM, Name: "VALE DO ACO S.A.", TaxID: valeTaxID,
			IsAnnual: true, IsConsolidated: true, AccCode: "3.01", AccName: accNames["3.01"],
			PeriodBegin: b22, PeriodEnd: a22, Value: 1500e6},
	}
}

func illiquidEntries() []AccountingEntry {
	return []AccountingEntry{
		{CVMID: illiquidCVM, Name: "ILLIQUID CORP S.A.", TaxID: "00.000.000/0001-00",
			IsAnnual: true, IsConsolidated: true, AccCode: "1", AccName: accNames["1"],
			PeriodEnd: a22, Value: 10e6},
	}
}

func testProfiles() []TradingProfile {
	return []TradingProfile{
		{CVMID: petroCVM, Segment: "oil and gas", MostTradedStock: "PETR4", Volume: 500e6},
		{CVMID: valeCVM, Segment: "mining", MostTradedStock: "VALE3", Volume: 300e6},
		{CVMID: illiquidCVM, Segment: "holding", MostTradedStock: "ILQD3", Volume: 50_000},
	}
}

// testDataset assembles the fixture with the default liquidity floor,
// which keeps PETRO and VALE and drops the illiquid company.
func testDataset(t *testing.T) *Dataset {
	t.Helper()
	entries := append(petroEntries(), valeEntries()...)
	entries = append(entries, illiquidEntries()...)
	ds := newDataset(entries, testProfiles(), nil, DefaultMinVolume)
	ds.indicators = buildIndicators(ds)
	return ds
}

// petroCompany returns the PETRO view with default options.
func petroCompany(t *testing.T, ds *Dataset) *Company {
	t.Helper()
	c, err := ds.CompanyByCVMID(petroCVM)
	if err != nil {
		t.Fatalf("CompanyByCVMID(%d) failed: %v", petroCVM, err)
	}
	return c
}
