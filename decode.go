package finlogic

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brfin/finlogic/date"
)

// This file decodes the published CSV tables into their in-memory form.
// Each table carries a header row; columns are resolved by name so the
// pipeline is free to append new columns without breaking old readers.

// header maps column names to their position in the CSV records.
type header map[string]int

func readHeader(r *csv.Reader, required ...string) (header, error) {
	record, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	h := make(header, len(record))
	for i, name := range record {
		h[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("missing column %q in csv header", name)
		}
	}
	return h, nil
}

func (h header) get(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (h header) getUint32(record []string, col string) (uint32, error) {
	v, err := strconv.ParseUint(h.get(record, col), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return uint32(v), nil
}

func (h header) getFloat(record []string, col string) (float64, error) {
	s := h.get(record, col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

func (h header) getBool(record []string, col string) (bool, error) {
	v, err := strconv.ParseBool(strings.ToLower(h.get(record, col)))
	if err != nil {
		return false, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

func (h header) getDate(record []string, col string) (date.Date, error) {
	s := h.get(record, col)
	if s == "" {
		return date.Date{}, nil
	}
	// The pipeline writes timestamps as "2023-12-31" or "2023-12-31 00:00:00".
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("column %q: %w", col, err)
	}
	return d, nil
}

// decodeFinancials parses the accounting entries table.
func decodeFinancials(r io.Reader) ([]AccountingEntry, error) {
	cr := csv.NewReader(r)
	h, err := readHeader(cr,
		"cvm_id", "name_id", "tax_id", "is_annual", "is_consolidated",
		"acc_code", "acc_name", "period_end", "acc_value")
	if err != nil {
		return nil, err
	}

	var entries []AccountingEntry
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("financials row %d: %w", row, err)
		}
		var e AccountingEntry
		if e.CVMID, err = h.getUint32(record, "cvm_id"); err == nil {
			e.Name = strings.ToUpper(h.get(record, "name_id"))
			e.TaxID = h.get(record, "tax_id")
			e.AccCode = h.get(record, "acc_code")
			e.AccName = h.get(record, "acc_name")
		}
		if err == nil {
			e.IsAnnual, err = h.getBool(record, "is_annual")
		}
		if err == nil {
			e.IsConsolidated, err = h.getBool(record, "is_consolidated")
		}
		if err == nil {
			e.PeriodBegin, err = h.getDate(record, "period_begin")
		}
		if err == nil {
			e.PeriodEnd, err = h.getDate(record, "period_end")
		}
		if err == nil {
			e.Value, err = h.getFloat(record, "acc_value")
		}
		if err != nil {
			return nil, fmt.Errorf("financials row %d: %w", row, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// decodeTrades parses the trading profile table.
func decodeTrades(r io.Reader) ([]TradingProfile, error) {
	cr := csv.NewReader(r)
	h, err := readHeader(cr, "cvm_id", "segment", "volume")
	if err != nil {
		return nil, err
	}

	var profiles []TradingProfile
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("trades row %d: %w", row, err)
		}
		var p TradingProfile
		if p.CVMID, err = h.getUint32(record, "cvm_id"); err == nil {
			p.Segment = h.get(record, "segment")
			p.MostTradedStock = h.get(record, "most_traded_stock")
		}
		if err == nil && h.get(record, "is_restructuring") != "" {
			p.IsRestructuring, err = h.getBool(record, "is_restructuring")
		}
		if err == nil {
			p.Volume, err = h.getFloat(record, "volume")
		}
		if err != nil {
			return nil, fmt.Errorf("trades row %d: %w", row, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// decodeTranslations parses the pt→en account-name table.
func decodeTranslations(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	h, err := readHeader(cr, "pt", "en")
	if err != nil {
		return nil, err
	}

	translations := make(map[string]string)
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("translations row %d: %w", row, err)
		}
		pt, en := h.get(record, "pt"), h.get(record, "en")
		if pt != "" && en != "" {
			translations[pt] = en
		}
	}
	return translations, nil
}
