package finlogic

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/brfin/finlogic/date"
)

// StatementKind selects the financial statement (or statement slice)
// produced by Company.Report.
type StatementKind string

const (
	Assets                StatementKind = "assets"
	Cash                  StatementKind = "cash"
	CurrentAssets         StatementKind = "current_assets"
	NonCurrentAssets      StatementKind = "non_current_assets"
	Liabilities           StatementKind = "liabilities"
	Debt                  StatementKind = "debt"
	CurrentLiabilities    StatementKind = "current_liabilities"
	NonCurrentLiabilities StatementKind = "non_current_liabilities"
	LiabilitiesAndEquity  StatementKind = "liabilities_and_equity"
	Equity                StatementKind = "equity"
	Income                StatementKind = "income"
	EarningsPerShare      StatementKind = "earnings_per_share"
	ComprehensiveIncome   StatementKind = "comprehensive_income"
	ChangesInEquity       StatementKind = "changes_in_equity"
	CashFlow              StatementKind = "cash_flow"
	AddedValue            StatementKind = "added_value"
)

// statementPrefixes maps each statement kind to the account-code
// prefixes selecting its entries. The first dotted level of the code
// is the statement group (see AccountingEntry.statementGroup).
var statementPrefixes = map[StatementKind][]string{
	Assets:                {"1"},
	Cash:                  {"1.01.01", "1.01.02"},
	CurrentAssets:         {"1.01"},
	NonCurrentAssets:      {"1.02"},
	Liabilities:           {"2.01", "2.02"},
	Debt:                  {"2.01.04", "2.02.01"},
	CurrentLiabilities:    {"2.01"},
	NonCurrentLiabilities: {"2.02"},
	LiabilitiesAndEquity:  {"2"},
	Equity:                {"2.03"},
	Income:                {"3"},
	EarningsPerShare:      {"3.99.01.01", "3.99.02.01"},
	ComprehensiveIncome:   {"4"},
	ChangesInEquity:       {"5"},
	CashFlow:              {"6"},
	AddedValue:            {"7"},
}

// StatementKinds returns the valid report kinds, sorted.
func StatementKinds() []StatementKind {
	kinds := make([]StatementKind, 0, len(statementPrefixes))
	for k := range statementPrefixes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ReportOptions adjusts the shape of a statement.
type ReportOptions struct {
	// AccountLevel limits the dotted depth of the account codes shown:
	// 0 shows all accounts, 2 shows "X.YY", 3 "X.YY.ZZ", 4 "X.YY.ZZ.WW".
	AccountLevel int
	// NumPeriods keeps only the latest n statement columns. 0 keeps all.
	NumPeriods int
}

// Period is one column of a statement.
type Period struct {
	End date.Date
	TTM bool // trailing-twelve-months column rather than a closed year
}

// Label formats the column header.
func (p Period) Label() string {
	if p.TTM {
		return p.End.String() + " (ttm)"
	}
	return p.End.String()
}

// StatementRow is one account line of a statement; Values align with
// the statement's Periods and hold NaN where the account was not
// reported for that period.
type StatementRow struct {
	Code   string
	Name   string
	Values []float64
}

// Statement is a financial statement pivoted to one column per period,
// rows sorted by account code.
type Statement struct {
	Kind    StatementKind
	Periods []Period
	Rows    []StatementRow
}

// Report builds the selected financial statement for the company.
// Values are divided by the selected unit (per-share accounts
// excepted). Income and cash-flow statements carry a trailing
// twelve-months column when the company's last quarterly report is
// newer than its last annual one.
func (c *Company) Report(kind StatementKind, opts ReportOptions) (*Statement, error) {
	prefixes, ok := statementPrefixes[kind]
	if !ok {
		return nil, fmt.Errorf("invalid report kind %q", kind)
	}
	if l := opts.AccountLevel; l != 0 && (l < 2 || l > 4) {
		return nil, fmt.Errorf("invalid account level %d: want 0, 2, 3 or 4", l)
	}

	entries := c.selectEntries(prefixes, opts.AccountLevel)
	statement := c.pivot(kind, entries)
	trimPeriods(statement, opts.NumPeriods)
	return statement, nil
}

// CustomReport builds a statement from an explicit list of account
// codes, drawn from the union of the four base statements.
func (c *Company) CustomReport(codes []string, opts ReportOptions) (*Statement, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("no account codes given")
	}
	want := make(map[string]bool, len(codes))
	for _, code := range codes {
		want[code] = true
	}

	var merged *Statement
	for _, kind := range []StatementKind{Assets, LiabilitiesAndEquity, Income, CashFlow} {
		statement, err := c.Report(kind, ReportOptions{})
		if err != nil {
			return nil, err
		}
		part := &Statement{Kind: "custom", Periods: statement.Periods}
		for _, row := range statement.Rows {
			if want[row.Code] {
				part.Rows = append(part.Rows, row)
			}
		}
		merged = mergeStatements(merged, part)
	}
	trimPeriods(merged, opts.NumPeriods)
	return merged, nil
}

// selectEntries filters the company entries for the method, the kind
// prefixes and the account level, scaling values by the unit.
func (c *Company) selectEntries(prefixes []string, level int) []AccountingEntry {
	maxLen := 0
	if level > 0 {
		maxLen = level*3 - 2 // "X.YY.ZZ.WW" dotted levels to code length
	}
	var selected []AccountingEntry
	for _, e := range c.methodEntries() {
		if maxLen > 0 && len(e.AccCode) > maxLen {
			continue
		}
		if !hasAnyPrefix(e.AccCode, prefixes) {
			continue
		}
		if !e.isPerShare() {
			e.Value /= c.unit
		}
		selected = append(selected, e)
	}
	return selected
}

func hasAnyPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// pivot lays the selected entries out as one column per period. Only
// annual periods are kept, plus the last quarterly period when it is
// newer than the last annual one: as a point-in-time snapshot for
// balance-sheet accounts, or adjusted to trailing twelve months for
// flow accounts.
func (c *Company) pivot(kind StatementKind, entries []AccountingEntry) *Statement {
	showQuarterly := !c.lastQuarterly.IsZero() && c.lastQuarterly.After(c.lastAnnual)

	var kept []AccountingEntry
	var quarterTTM bool
	for _, e := range entries {
		switch {
		case e.IsAnnual:
			kept = append(kept, e)
		case showQuarterly && e.PeriodEnd == c.lastQuarterly && !e.isFlow():
			kept = append(kept, e)
		}
	}
	if showQuarterly {
		ttm := c.trailingTwelveMonths(entries)
		quarterTTM = len(ttm) > 0
		kept = append(kept, ttm...)
	}

	// Columns: distinct period ends, ascending.
	endSet := make(map[date.Date]bool)
	for _, e := range kept {
		endSet[e.PeriodEnd] = true
	}
	ends := make([]date.Date, 0, len(endSet))
	for end := range endSet {
		ends = append(ends, end)
	}
	sort.Slice(ends, func(i, j int) bool { return ends[i].Before(ends[j]) })

	statement := &Statement{Kind: kind}
	column := make(map[date.Date]int, len(ends))
	for i, end := range ends {
		column[end] = i
		statement.Periods = append(statement.Periods, Period{
			End: end,
			TTM: quarterTTM && end == c.lastQuarterly,
		})
	}

	// Rows: one per account code, keeping the latest published name.
	rowIdx := make(map[string]int)
	for _, e := range kept {
		i, ok := rowIdx[e.AccCode]
		if !ok {
			i = len(statement.Rows)
			rowIdx[e.AccCode] = i
			values := make([]float64, len(ends))
			for j := range values {
				values[j] = math.NaN()
			}
			statement.Rows = append(statement.Rows, StatementRow{Code: e.AccCode, Name: e.AccName, Values: values})
		}
		statement.Rows[i].Values[column[e.PeriodEnd]] = e.Value
		statement.Rows[i].Name = e.AccName
	}
	sort.Slice(statement.Rows, func(i, j int) bool { return statement.Rows[i].Code < statement.Rows[j].Code })
	return statement
}

// trailingTwelveMonths adjusts the flow entries of the last quarterly
// report to a twelve-months window:
//
//	TTM = current quarter + (last annual − year-ago quarter)
//
// Quarterly flow values are published accumulated since the start of
// the fiscal year, so the year-ago accumulated quarter cancels the
// months counted twice. Example for Q3 2023:
//
//	TTM = 9M2023 + (A2022 − 9M2022)
func (c *Company) trailingTwelveMonths(entries []AccountingEntry) []AccountingEntry {
	yearAgo := c.lastQuarterly.AddYears(-1)

	current := make(map[string]AccountingEntry)
	sums := make(map[string]float64)
	hasAnnual := make(map[string]bool)
	hasYearAgo := make(map[string]bool)
	for _, e := range entries {
		if !e.isFlow() {
			continue
		}
		switch {
		case !e.IsAnnual && e.PeriodEnd == c.lastQuarterly:
			current[e.AccCode] = e
			sums[e.AccCode] += e.Value
		case e.IsAnnual && e.PeriodEnd == c.lastAnnual:
			hasAnnual[e.AccCode] = true
			sums[e.AccCode] += e.Value
		case !e.IsAnnual && e.PeriodEnd == yearAgo:
			hasYearAgo[e.AccCode] = true
			sums[e.AccCode] -= e.Value
		}
	}

	ttm := make([]AccountingEntry, 0, len(current))
	for code, e := range current {
		// Without the year-ago quarter the annual part would count nine
		// months twice; such accounts get no adjusted value.
		if hasAnnual[code] && !hasYearAgo[code] {
			continue
		}
		e.Value = sums[code]
		e.PeriodBegin = yearAgo
		ttm = append(ttm, e)
	}
	sort.Slice(ttm, func(i, j int) bool { return ttm[i].AccCode < ttm[j].AccCode })
	return ttm
}

// mergeStatements merges two statements sharing a company, aligning
// columns by period end.
func mergeStatements(a, b *Statement) *Statement {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	endSet := make(map[date.Date]Period)
	for _, p := range append(append([]Period{}, a.Periods...), b.Periods...) {
		if cur, ok := endSet[p.End]; !ok || (!cur.TTM && p.TTM) {
			endSet[p.End] = p
		}
	}
	ends := make([]date.Date, 0, len(endSet))
	for end := range endSet {
		ends = append(ends, end)
	}
	sort.Slice(ends, func(i, j int) bool { return ends[i].Before(ends[j]) })

	merged := &Statement{Kind: a.Kind}
	column := make(map[date.Date]int, len(ends))
	for i, end := range ends {
		column[end] = i
		merged.Periods = append(merged.Periods, endSet[end])
	}

	realign := func(s *Statement) {
		for _, row := range s.Rows {
			values := make([]float64, len(ends))
			for j := range values {
				values[j] = math.NaN()
			}
			for j, p := range s.Periods {
				values[column[p.End]] = row.Values[j]
			}
			merged.Rows = append(merged.Rows, StatementRow{Code: row.Code, Name: row.Name, Values: values})
		}
	}
	realign(a)
	realign(b)
	sort.Slice(merged.Rows, func(i, j int) bool { return merged.Rows[i].Code < merged.Rows[j].Code })
	return merged
}

// trimPeriods keeps only the latest n columns of the statement.
func trimPeriods(s *Statement, n int) {
	if s == nil || n <= 0 || n >= len(s.Periods) {
		return
	}
	drop := len(s.Periods) - n
	s.Periods = s.Periods[drop:]
	for i := range s.Rows {
		s.Rows[i].Values = s.Rows[i].Values[drop:]
	}
}
