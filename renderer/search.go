package renderer

import (
	"bytes"
	"strconv"

	"github.com/brfin/finlogic"
	md "github.com/nao1215/markdown"
)

// SearchMarkdown renders company search results.
func SearchMarkdown(matches []finlogic.CompanyMatch) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Companies")
	if len(matches) == 0 {
		doc.PlainText("No company matched.")
		return doc.String()
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			m.Name,
			strconv.FormatUint(uint64(m.CVMID), 10),
			m.TaxID,
			m.Segment,
			m.MostTradedStock,
			yesNo(m.IsRestructuring),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "CVM ID", "Tax ID", "Segment", "Stock", "Restructuring"},
		Rows:   rows,
	})
	return doc.String()
}

// SegmentsMarkdown renders the list of listing segments.
func SegmentsMarkdown(segments []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Segments")
	doc.BulletList(segments...)
	return doc.String()
}

// RankMarkdown renders a company ranking by indicator value.
func RankMarkdown(ranked []finlogic.RankedCompany) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ranking")
	if len(ranked) == 0 {
		doc.PlainText("No company to rank.")
		return doc.String()
	}

	indicator := ranked[0].Indicator
	value := func(v float64) string {
		if finlogic.IsCurrencyIndicator(indicator) {
			return amount(v)
		}
		if indicator == "eps" {
			return plain(v)
		}
		return ratio(v)
	}

	rows := make([][]string, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Name,
			r.Segment,
			r.PeriodEnd.String(),
			value(r.Value),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"#", "Name", "Segment", "Period", indicator},
		Rows:   rows,
	})
	return doc.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
