package finlogic

import (
	"github.com/brfin/finlogic/date"
)

// AccountingEntry is one line of a company financial statement as
// published in the pre-processed CVM dataset. Values are in BRL.
type AccountingEntry struct {
	CVMID          uint32    // regulator id of the company
	Name           string    // company name, stored uppercase
	TaxID          string    // CNPJ in "XX.XXX.XXX/XXXX-XX" format
	IsAnnual       bool      // annual report (DFP) vs quarterly report (ITR)
	IsConsolidated bool      // consolidated vs separate accounting method
	AccCode        string    // dotted account code, e.g. "3.05"
	AccName        string    // account name
	PeriodBegin    date.Date // zero for balance-sheet (point in time) accounts
	PeriodEnd      date.Date
	Value          float64
}

// TradingProfile holds per-company market metadata from the trades table.
type TradingProfile struct {
	CVMID           uint32
	Segment         string
	IsRestructuring bool    // company is under judicial restructuring
	MostTradedStock string  // ticker of the company's most liquid stock
	Volume          float64 // median daily traded volume, in BRL
}

// statementGroup returns the first dotted level of the account code,
// which identifies the financial statement the entry belongs to:
// 1 assets, 2 liabilities and equity, 3 income, 4 comprehensive income,
// 5 changes in equity, 6 cash flow, 7 added value.
func (e AccountingEntry) statementGroup() byte {
	if e.AccCode == "" {
		return 0
	}
	return e.AccCode[0]
}

// isFlow reports whether the entry belongs to a flow statement (income
// or cash flow), the ones subject to trailing-twelve-months adjustment.
func (e AccountingEntry) isFlow() bool {
	g := e.statementGroup()
	return g == '3' || g == '6'
}

// isPerShare reports whether the entry holds a per-share value, which
// is never divided by the report unit.
func (e AccountingEntry) isPerShare() bool {
	return len(e.AccCode) >= 4 && e.AccCode[:4] == "3.99"
}
