package finlogic

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/brfin/finlogic/date"
)

// ErrCompanyNotFound is returned when an identifier matches no company
// in the dataset.
var ErrCompanyNotFound = errors.New("company identifier not found in dataset")

// AccountingMethod selects how investments in subsidiaries are
// registered in the statements.
type AccountingMethod string

const (
	Consolidated AccountingMethod = "consolidated"
	Separate     AccountingMethod = "separate"
)

// Company is a read-only view over one company's accounting entries,
// adjusted by the selected accounting method, unit and tax rate.
type Company struct {
	ds *Dataset

	cvmID uint32
	taxID string
	name  string

	method  AccountingMethod
	unit    float64
	taxRate float64

	entries       []AccountingEntry // sorted by account code
	firstAnnual   date.Date
	lastAnnual    date.Date
	lastQuarterly date.Date
}

// Company resolves an identifier into a company view. The identifier
// is either a CVM id (digits) or a tax id in "XX.XXX.XXX/XXXX-XX"
// format. Defaults: consolidated method, unit 1, tax rate 0.34.
func (ds *Dataset) Company(identifier string) (*Company, error) {
	if id, err := strconv.ParseUint(identifier, 10, 32); err == nil {
		return ds.CompanyByCVMID(uint32(id))
	}
	// Fall back to a tax id lookup.
	for cvmID := range ds.companyIdx {
		if ds.taxID(cvmID) == identifier {
			return ds.CompanyByCVMID(cvmID)
		}
	}
	return nil, fmt.Errorf("%q: %w", identifier, ErrCompanyNotFound)
}

// CompanyByCVMID resolves a CVM id into a company view.
func (ds *Dataset) CompanyByCVMID(cvmID uint32) (*Company, error) {
	entries := ds.companyEntries(cvmID)
	if len(entries) == 0 {
		return nil, fmt.Errorf("cvm_id %d: %w", cvmID, ErrCompanyNotFound)
	}
	c := &Company{
		ds:      ds,
		cvmID:   cvmID,
		taxID:   entries[0].TaxID,
		name:    entries[0].Name,
		method:  Consolidated,
		unit:    1,
		taxRate: taxRate,
		entries: entries,
	}
	for _, e := range entries {
		if e.IsAnnual {
			if c.firstAnnual.IsZero() || e.PeriodEnd.Before(c.firstAnnual) {
				c.firstAnnual = e.PeriodEnd
			}
			if e.PeriodEnd.After(c.lastAnnual) {
				c.lastAnnual = e.PeriodEnd
			}
		} else if e.PeriodEnd.After(c.lastQuarterly) {
			c.lastQuarterly = e.PeriodEnd
		}
	}
	return c, nil
}

// Name returns the company name as stored in the dataset (uppercase).
func (c *Company) Name() string { return c.name }

// CVMID returns the company's regulator id.
func (c *Company) CVMID() uint32 { return c.cvmID }

// TaxID returns the company's CNPJ.
func (c *Company) TaxID() string { return c.taxID }

// SetMethod selects the accounting method used by reports and indicators.
func (c *Company) SetMethod(m AccountingMethod) error {
	if m != Consolidated && m != Separate {
		return fmt.Errorf("invalid accounting method %q: want %q or %q", m, Consolidated, Separate)
	}
	c.method = m
	return nil
}

// SetUnit sets the constant dividing account values in reports.
// Per-share accounts are never divided.
func (c *Company) SetUnit(unit float64) error {
	if unit <= 0 {
		return fmt.Errorf("invalid unit %v: want a positive number", unit)
	}
	c.unit = unit
	return nil
}

// ParseUnit converts a unit spelled on the command line into its
// divisor: "thousand", "million", "billion", or a positive number.
func ParseUnit(s string) (float64, error) {
	switch s {
	case "", "1":
		return 1, nil
	case "thousand":
		return 1_000, nil
	case "million":
		return 1_000_000, nil
	case "billion":
		return 1_000_000_000, nil
	}
	unit, err := strconv.ParseFloat(s, 64)
	if err != nil || unit <= 0 {
		return 0, fmt.Errorf("invalid unit %q: want a positive number, thousand, million or billion", s)
	}
	return unit, nil
}

// SetTaxRate sets the marginal tax rate in [0,1] used by the company
// return ratios.
func (c *Company) SetTaxRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("invalid tax rate %v: want a value between 0 and 1", rate)
	}
	c.taxRate = rate
	return nil
}

// CompanyInfo summarizes a company and its selected report options.
type CompanyInfo struct {
	Name              string
	CVMID             uint32
	TaxID             string
	Segment           string
	MostTradedStock   string
	AccountingEntries int
	Method            AccountingMethod
	Unit              float64
	TaxRate           float64
	FirstAnnual       date.Date
	LastAnnual        date.Date
	LastQuarterly     date.Date
}

// Info returns the company summary.
func (c *Company) Info() CompanyInfo {
	profile := c.ds.profiles[c.cvmID]
	return CompanyInfo{
		Name:              c.name,
		CVMID:             c.cvmID,
		TaxID:             c.taxID,
		Segment:           profile.Segment,
		MostTradedStock:   profile.MostTradedStock,
		AccountingEntries: len(c.entries),
		Method:            c.method,
		Unit:              c.unit,
		TaxRate:           c.taxRate,
		FirstAnnual:       c.firstAnnual,
		LastAnnual:        c.lastAnnual,
		LastQuarterly:     c.lastQuarterly,
	}
}

// methodEntries returns the company entries matching the selected
// accounting method.
func (c *Company) methodEntries() []AccountingEntry {
	wantConsolidated := c.method == Consolidated
	var entries []AccountingEntry
	for _, e := range c.entries {
		if e.IsConsolidated == wantConsolidated {
			entries = append(entries, e)
		}
	}
	return entries
}
