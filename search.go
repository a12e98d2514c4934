package finlogic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SearchBy selects the column a company search matches against.
type SearchBy string

const (
	SearchByName    SearchBy = "name"
	SearchByCVMID   SearchBy = "cvm_id"
	SearchByTaxID   SearchBy = "tax_id"
	SearchBySegment SearchBy = "segment"
)

// CompanyMatch is one company in a search result, joined with its
// trading profile.
type CompanyMatch struct {
	Name            string
	CVMID           uint32
	TaxID           string
	Segment         string
	IsRestructuring bool
	MostTradedStock string
}

// SearchCompany searches the dataset for companies matching value in
// the given column. Name and segment match by case-insensitive
// substring; cvm_id and tax_id match exactly. The result holds one row
// per company, sorted by name.
func (ds *Dataset) SearchCompany(value string, by SearchBy) ([]CompanyMatch, error) {
	match, err := ds.matcher(value, by)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint32]bool)
	var matches []CompanyMatch
	for _, e := range ds.entries {
		if seen[e.CVMID] {
			continue
		}
		seen[e.CVMID] = true
		profile := ds.profiles[e.CVMID]
		m := CompanyMatch{
			Name:            e.Name,
			CVMID:           e.CVMID,
			TaxID:           e.TaxID,
			Segment:         profile.Segment,
			IsRestructuring: profile.IsRestructuring,
			MostTradedStock: profile.MostTradedStock,
		}
		if match(m) {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}

// matcher builds the predicate for one search column.
func (ds *Dataset) matcher(value string, by SearchBy) (func(CompanyMatch) bool, error) {
	switch by {
	case SearchByName:
		// Company names are stored uppercase in the dataset.
		want := strings.ToUpper(value)
		return func(m CompanyMatch) bool { return strings.Contains(m.Name, want) }, nil
	case SearchByCVMID:
		id, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid cvm_id %q: %w", value, err)
		}
		return func(m CompanyMatch) bool { return m.CVMID == uint32(id) }, nil
	case SearchByTaxID:
		return func(m CompanyMatch) bool { return m.TaxID == value }, nil
	case SearchBySegment:
		want := strings.ToLower(value)
		return func(m CompanyMatch) bool { return strings.Contains(strings.ToLower(m.Segment), want) }, nil
	default:
		return nil, fmt.Errorf("invalid search column %q: want one of name, cvm_id, tax_id, segment", by)
	}
}

// SearchSegment returns the distinct market segments containing value,
// sorted alphabetically.
func (ds *Dataset) SearchSegment(value string) []string {
	want := strings.ToLower(value)
	seen := make(map[string]bool)
	var segments []string
	for _, p := range ds.profiles {
		if p.Segment == "" || seen[p.Segment] {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Segment), want) {
			continue
		}
		seen[p.Segment] = true
		segments = append(segments, p.Segment)
	}
	sort.Strings(segments)
	return segments
}
