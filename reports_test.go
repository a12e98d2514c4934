package finlogic

import (
	"math"
	"testing"
)

// rowValues returns the values of the statement row with the given code.
func rowValues(t *testing.T, s *Statement, code string) []float64 {
	t.Helper()
	for _, row := range s.Rows {
		if row.Code == code {
			return row.Values
		}
	}
	t.Fatalf("statement has no row %q (rows: %v)", code, len(s.Rows))
	return nil
}

func TestReportAssets(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)

	statement, err := c.Report(Assets, ReportOptions{})
	if err != nil {
		t.Fatalf("Report(Assets) failed: %v", err)
	}

	// Two annual columns plus the last quarterly snapshot; balance
	// sheets are point in time so the quarterly column is not TTM.
	if len(statement.Periods) != 3 {
		t.Fatalf("got %d periods, want 3", len(statement.Periods))
	}
	wantEnds := []struct {
		end Period
	}{{Period{End: a21}}, {Period{End: a22}}, {Period{End: q923}}}
	for i, want := range wantEnds {
		if statement.Periods[i] != want.end {
			t.Errorf("period %d = %+v, want %+v", i, statement.Periods[i], want.end)
		}
	}

	if got, want := rowValues(t, statement, "1"), []float64{900e6, 1000e6, 1100e6}; !equalValues(got, want) {
		t.Errorf("total assets = %v, want %v", got, want)
	}

	// The 2022-09-30 quarterly snapshot is not the last one and must
	// not leak into the report.
	for _, p := range statement.Periods {
		if p.End == q922 {
			t.Errorf("stale quarterly period %v should have been dropped", q922)
		}
	}
}

func TestReportIncomeTTM(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)

	statement, err := c.Report(Income, ReportOptions{})
	if err != nil {
		t.Fatalf("Report(Income) failed: %v", err)
	}

	if len(statement.Periods) != 3 {
		t.Fatalf("got %d periods, want 3", len(statement.Periods))
	}
	last := statement.Periods[2]
	if last.End != q923 || !last.TTM {
		t.Fatalf("got last period %+v, want %v flagged ttm", last, q923)
	}
	if got, want := last.Label(), "2023-09-30 (ttm)"; got != want {
		t.Errorf("got label %q, want %q", got, want)
	}

	// TTM = current quarter + (last annual - year-ago quarter).
	testCases := []struct {
		code string
		want float64
	}{
		{"3.01", 850e6},  // 650 + (800 - 600)
		{"3.03", 340e6},  // 260 + (320 - 240)
		{"3.05", 170e6},  // 130 + (160 - 120)
		{"3.11", 112e6},  // 84 + (105 - 77)
		{"3.08", -48e6},  // -36 + (-45 + 33)
		{"3.99.01.01", 2.7}, // eps follows the same adjustment
	}
	for _, tc := range testCases {
		values := rowValues(t, statement, tc.code)
		if got := values[2]; math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("ttm %s = %v, want %v", tc.code, got, tc.want)
		}
	}

	// Annual columns are passed through untouched.
	if got := rowValues(t, statement, "3.01"); got[0] != 700e6 || got[1] != 800e6 {
		t.Errorf("annual revenues = %v, want 7e8 and 8e8", got)
	}
}

func TestReportCashFlowTTM(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)

	statement, err := c.Report(CashFlow, ReportOptions{})
	if err != nil {
		t.Fatalf("Report(CashFlow) failed: %v", err)
	}
	values := rowValues(t, statement, "6.01")
	// 140 + (180 - 130)
	if got := values[len(values)-1]; got != 190e6 {
		t.Errorf("ttm operating cash flow = %v, want 1.9e8", got)
	}
}

func TestReportAccountLevel(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)

	statement, err := c.Report(Assets, ReportOptions{AccountLevel: 2})
	if err != nil {
		t.Fatalf("Report(Assets, level 2) failed: %v", err)
	}
	for _, row := range statement.Rows {
		if len(row.Code) > 4 {
			t.Errorf("row %q too deep for account level 2", row.Code)
		}
	}
	if len(statement.Rows) != 3 { // 1, 1.01, 1.02
		t.Errorf("got %d rows, want 3", len(statement.Rows))
	}

	if _, err := c.Report(Assets, ReportOptions{AccountLevel: 5}); err == nil {
		t.Errorf("Report(level 5) expected an error")
	}
	if _, err := c.Report(Assets, ReportOptions{AccountLevel: 1}); err == nil {
		t.Errorf("Report(level 1) expected an error")
	}
}

func TestReportNumPeriods(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)

	statement, err := c.Report(Income, ReportOptions{NumPeriods: 1})
	if err != nil {
		t.Fatalf("Report(Income, 1 period) failed: %v", err)
	}
	if len(statement.Periods) != 1 || !statement.Periods[0].TTM {
		t.Fatalf("got periods %+v, want only the ttm column", statement.Periods)
	}
	if got := rowValues(t, statement, "3.01"); len(got) != 1 || got[0] != 850e6 {
		t.Errorf("got revenues %v, want [8.5e8]", got)
	}
}

func TestReportUnknownKind(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)
	if _, err := c.Report(StatementKind("balance"), ReportOptions{}); err == nil {
		t.Errorf("Report(balance) expected an error")
	}
}

func TestReportPerShareNotScaled(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)
	if err := c.SetUnit(1e6); err != nil {
		t.Fatalf("SetUnit failed: %v", err)
	}
	statement, err := c.Report(EarningsPerShare, ReportOptions{})
	if err != nil {
		t.Fatalf("Report(EarningsPerShare) failed: %v", err)
	}
	values := rowValues(t, statement, "3.99.01.01")
	if values[0] != 2.1 || values[1] != 2.5 {
		t.Errorf("eps = %v, want unscaled 2.1 and 2.5", values)
	}
}

func TestCustomReport(t *testing.T) {
	ds := testDataset(t)
	c := petroCompany(t, ds)

	statement, err := c.CustomReport([]string{"1", "3.01", "6.01"}, ReportOptions{})
	if err != nil {
		t.Fatalf("CustomReport() failed: %v", err)
	}
	if len(statement.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(statement.Rows))
	}
	// Columns merge by period end; the quarterly column carries the ttm
	// flag from the flow statements.
	if len(statement.Periods) != 3 {
		t.Fatalf("got %d periods, want 3", len(statement.Periods))
	}
	if last := statement.Periods[2]; last.End != q923 || !last.TTM {
		t.Errorf("got last period %+v, want ttm %v", last, q923)
	}
	// The balance row has a plain snapshot in the merged ttm column.
	if got := rowValues(t, statement, "1"); got[2] != 1100e6 {
		t.Errorf("total assets in merged column = %v, want 1.1e9", got[2])
	}
	if got := rowValues(t, statement, "3.01"); got[2] != 850e6 {
		t.Errorf("revenues in merged column = %v, want 8.5e8", got[2])
	}

	if _, err := c.CustomReport(nil, ReportOptions{}); err == nil {
		t.Errorf("CustomReport(nil) expected an error")
	}
}

func TestStatementKinds(t *testing.T) {
	kinds := StatementKinds()
	if len(kinds) != 16 {
		t.Fatalf("got %d kinds, want 16", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Errorf("kinds not sorted: %v before %v", kinds[i-1], kinds[i])
		}
	}
}

func equalValues(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.IsNaN(want[i]) != math.IsNaN(got[i]) {
			return false
		}
		if !math.IsNaN(want[i]) && math.Abs(got[i]-want[i]) > 1e-6 {
			return false
		}
	}
	return true
}
