package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/brfin/finlogic"
	md "github.com/nao1215/markdown"
)

// StatementMarkdown renders one financial statement of a company.
func StatementMarkdown(info finlogic.CompanyInfo, s *finlogic.Statement) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	method := string(info.Method)
	doc.H1(fmt.Sprintf("%s - %s", info.Name, statementTitle(s.Kind)))
	doc.PlainText(fmt.Sprintf("%s figures, in %s.", strings.ToUpper(method[:1])+method[1:], unitLabel(info.Unit)))

	header := []string{"Code", "Account"}
	for _, p := range s.Periods {
		header = append(header, p.Label())
	}

	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		cells := []string{row.Code, row.Name}
		perShare := strings.HasPrefix(row.Code, "3.99")
		for _, v := range row.Values {
			if perShare {
				cells = append(cells, plain(v))
			} else {
				cells = append(cells, amount(v))
			}
		}
		rows = append(rows, cells)
	}
	doc.Table(md.TableSet{Header: header, Rows: rows})

	return doc.String()
}

// statementTitle turns a statement kind into a readable heading.
func statementTitle(kind finlogic.StatementKind) string {
	words := strings.Split(string(kind), "_")
	for i, w := range words {
		if w == "and" || w == "per" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
