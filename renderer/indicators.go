package renderer

import (
	"bytes"
	"fmt"

	"github.com/brfin/finlogic"
	md "github.com/nao1215/markdown"
)

// IndicatorsMarkdown renders a company's indicators table, one row per
// indicator and one column per period. Currency rows are expressed in
// the company's unit, ratios as percentages.
func IndicatorsMarkdown(info finlogic.CompanyInfo, report *finlogic.IndicatorReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s - Indicators", info.Name))
	doc.PlainText(fmt.Sprintf("Currency amounts in %s.", unitLabel(info.Unit)))

	header := []string{"Indicator"}
	for _, p := range report.Periods {
		header = append(header, p.Label())
	}

	rows := make([][]string, 0, len(report.Rows))
	for _, line := range report.Rows {
		cells := []string{line.Name}
		for _, v := range line.Values {
			cells = append(cells, indicatorCell(line, v))
		}
		rows = append(rows, cells)
	}
	doc.Table(md.TableSet{Header: header, Rows: rows})

	return doc.String()
}

func indicatorCell(line finlogic.IndicatorLine, v float64) string {
	switch {
	case line.Currency:
		return amount(v)
	case line.Name == "eps":
		return plain(v)
	default:
		return ratio(v)
	}
}
