// Package renderer formats companies, statements and search results as
// markdown, ready for the terminal or any markdown consumer.
package renderer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/brfin/finlogic"
)

// amount formats a BRL amount with the brazilian locale separators.
// Missing values (NaN) render as a dash.
func amount(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return finlogic.BRL(v).String()
}

// ratio formats a ratio as a percentage, dashing missing values.
func ratio(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return finlogic.Percent(v).String()
}

// plain formats an unscaled value such as earnings per share.
func plain(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// unitLabel names the accounting unit in table captions.
func unitLabel(unit float64) string {
	switch unit {
	case 1:
		return "R$"
	case 1_000:
		return "thousands of R$"
	case 1_000_000:
		return "millions of R$"
	case 1_000_000_000:
		return "billions of R$"
	default:
		return fmt.Sprintf("R$ / %g", unit)
	}
}
