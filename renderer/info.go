package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/brfin/finlogic"
	md "github.com/nao1215/markdown"
)

// InfoMarkdown renders the dataset summary.
func InfoMarkdown(info finlogic.DatasetInfo) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dataset")
	doc.Table(md.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", info.SourceURL},
			{"Accounting entries", strconv.Itoa(info.AccountingEntries)},
			{"Financial statements", strconv.Itoa(info.Reports)},
			{"Companies", strconv.Itoa(info.Companies)},
			{"First statement", info.FirstReport.String()},
			{"Last statement", info.LastReport.String()},
			{"Memory usage", memoryLabel(info.MemoryUsage)},
		},
	})
	return doc.String()
}

// CompanyInfoMarkdown renders a company summary.
func CompanyInfoMarkdown(info finlogic.CompanyInfo) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(info.Name)
	doc.Table(md.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"CVM ID", strconv.FormatUint(uint64(info.CVMID), 10)},
			{"Tax ID", info.TaxID},
			{"Segment", info.Segment},
			{"Most traded stock", info.MostTradedStock},
			{"Accounting entries", strconv.Itoa(info.AccountingEntries)},
			{"Accounting method", string(info.Method)},
			{"Unit", unitLabel(info.Unit)},
			{"Tax rate", ratio(info.TaxRate)},
			{"First annual report", info.FirstAnnual.String()},
			{"Last annual report", info.LastAnnual.String()},
			{"Last quarterly report", info.LastQuarterly.String()},
		},
	})
	return doc.String()
}

// memoryLabel prints an approximate byte count in a human unit.
func memoryLabel(bytes int64) string {
	const mb = 1 << 20
	if bytes >= mb {
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	}
	return fmt.Sprintf("%.1f kB", float64(bytes)/(1<<10))
}
